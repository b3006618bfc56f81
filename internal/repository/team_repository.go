package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"twistlist/internal/model"
)

type TeamRepository struct {
	db *gorm.DB
}

type TeamRepositoryInterface interface {
	CreateWithCreator(ctx context.Context, team *model.Team, creatorID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	GetAll(ctx context.Context) ([]model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id uuid.UUID) error
	AssignMember(ctx context.Context, userID, teamID uuid.UUID) error
}

var _ TeamRepositoryInterface = (*TeamRepository)(nil)

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// CreateWithCreator inserts the team and moves its creator onto the roster in
// a single transaction; either both happen or neither does.
func (r *TeamRepository) CreateWithCreator(ctx context.Context, team *model.Team, creatorID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", creatorID).
			Update("team_id", team.ID).Error
	})
}

// GetByID loads a team with its roster.
func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetAll returns every team with roster and pending join requests. Visible to
// all authenticated users, requester identity included.
func (r *TeamRepository) GetAll(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.WithContext(ctx).
		Preload("Members").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *model.Team) error {
	result := r.db.WithContext(ctx).Save(team)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// Delete removes the team. Roster linkage and join requests go with it via
// the schema's cascade rules.
func (r *TeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// AssignMember sets the user's team, for direct adds that bypass the request
// flow.
func (r *TeamRepository) AssignMember(ctx context.Context, userID, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("team_id", teamID).Error
}
