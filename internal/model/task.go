package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title          string    `gorm:"not null"`
	Description    string
	Status         string `gorm:"not null;default:'PENDING';check:status IN ('PENDING', 'IN_PROGRESS', 'COMPLETED')"`
	Priority       string
	Tags           string
	StartDate      *time.Time
	DueDate        *time.Time
	Points         *int
	Position       *int
	ProjectID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AuthorUserID   uuid.UUID  `gorm:"type:uuid;not null"`
	AssignedUserID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time

	Project  Project `gorm:"foreignKey:ProjectID"`
	Author   User    `gorm:"foreignKey:AuthorUserID"`
	Assignee *User   `gorm:"foreignKey:AssignedUserID"`
}

// Task statuses
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskCompleted  = "COMPLETED"
)
