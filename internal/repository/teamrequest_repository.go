package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"twistlist/internal/model"
)

type TeamRequestRepository struct {
	db *gorm.DB
}

type TeamRequestRepositoryInterface interface {
	Create(ctx context.Context, request *model.TeamRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TeamRequest, error)
	GetByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamRequest, error)
	ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]model.TeamRequest, error)
	ListAllPending(ctx context.Context) ([]model.TeamRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Approve(ctx context.Context, request *model.TeamRequest) error
}

var _ TeamRequestRepositoryInterface = (*TeamRequestRepository)(nil)

func NewTeamRequestRepository(db *gorm.DB) *TeamRequestRepository {
	return &TeamRequestRepository{db: db}
}

func (r *TeamRequestRepository) Create(ctx context.Context, request *model.TeamRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *TeamRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TeamRequest, error) {
	var request model.TeamRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// GetByTeamAndUser looks up the single request row for a (team, user) pair.
func (r *TeamRequestRepository) GetByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamRequest, error) {
	var request model.TeamRequest
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *TeamRequestRepository) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]model.TeamRequest, error) {
	var requests []model.TeamRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ? AND status = ?", teamID, model.RequestPending).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListAllPending returns every pending request with the requesting user
// loaded, for the team listing.
func (r *TeamRequestRepository) ListAllPending(ctx context.Context) ([]model.TeamRequest, error) {
	var requests []model.TeamRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", model.RequestPending).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus moves a request to the given status. Used for rejection and
// for re-opening a rejected request back to PENDING.
func (r *TeamRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := r.db.WithContext(ctx).Model(&model.TeamRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}

// Approve grants membership and marks the request APPROVED in one
// transaction. A membership change without the status flip, or the reverse,
// would violate the request-state invariant, so partial application is never
// allowed to land.
func (r *TeamRequestRepository) Approve(ctx context.Context, request *model.TeamRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).
			Where("id = ?", request.UserID).
			Update("team_id", request.TeamID).Error; err != nil {
			return err
		}
		return tx.Model(&model.TeamRequest{}).
			Where("id = ?", request.ID).
			Update("status", model.RequestApproved).Error
	})
}
