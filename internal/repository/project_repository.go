package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"twistlist/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

type ProjectRepositoryInterface interface {
	CreateWithTeam(ctx context.Context, project *model.Project, teamID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Project, error)
	IsLinkedToTeam(ctx context.Context, projectID, teamID uuid.UUID) (bool, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var _ ProjectRepositoryInterface = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateWithTeam inserts the project and its team link in one transaction. A
// project insert with no link must not survive a failed link step.
func (r *ProjectRepository) CreateWithTeam(ctx context.Context, project *model.Project, teamID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		link := &model.ProjectTeam{
			ProjectID: project.ID,
			TeamID:    teamID,
		}
		return tx.Create(link).Error
	})
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListByTeam returns the projects linked to the given team and no others.
func (r *ProjectRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_teams ON project_teams.project_id = projects.id").
		Where("project_teams.team_id = ?", teamID).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// IsLinkedToTeam checks the project-team linkage that project visibility
// rests on.
func (r *ProjectRepository) IsLinkedToTeam(ctx context.Context, projectID, teamID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProjectTeam{}).
		Where("project_id = ? AND team_id = ?", projectID, teamID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	result := r.db.WithContext(ctx).Save(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
