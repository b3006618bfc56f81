package model

import (
	"time"

	"github.com/google/uuid"
)

// TeamRequest tracks a user's request to join a team. The (team_id, user_id)
// pair is unique: a rejected request is re-opened in place, never duplicated.
type TeamRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_requests_team_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_requests_team_user"`
	Status    string    `gorm:"not null;default:'PENDING';check:status IN ('PENDING', 'APPROVED', 'REJECTED')"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Team Team `gorm:"foreignKey:TeamID"`
	User User `gorm:"foreignKey:UserID"`
}

// Join request statuses
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)
