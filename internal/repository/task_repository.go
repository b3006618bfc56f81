package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"twistlist/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

// PositionUpdate is one entry of a bulk reorder.
type PositionUpdate struct {
	ID       uuid.UUID
	Position int
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListForUser(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePositions(ctx context.Context, userID uuid.UUID, updates []PositionUpdate) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListForUser returns tasks where the user is author or assignee, optionally
// filtered by project. Even within an accessible project, other people's
// tasks stay out of the list.
func (r *TaskRepository) ListForUser(ctx context.Context, userID uuid.UUID, projectID *uuid.UUID) ([]model.Task, error) {
	query := r.db.WithContext(ctx).
		Where("author_user_id = ? OR assigned_user_id = ?", userID, userID)
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var tasks []model.Task
	result := query.Order("position").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Update updates an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// UpdatePositions applies a bulk reorder in one transaction. Each write is
// scoped to tasks the user may update (author or assignee); entries for
// tasks outside that set simply do not match and are skipped.
func (r *TaskRepository) UpdatePositions(ctx context.Context, userID uuid.UUID, updates []PositionUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := tx.Model(&model.Task{}).
				Where("id = ? AND (author_user_id = ? OR assigned_user_id = ?)", u.ID, userID, userID).
				Update("position", u.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
