package model

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamName             string     `gorm:"not null"`
	ProductOwnerUserID   *uuid.UUID `gorm:"type:uuid"`
	ProjectManagerUserID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time  `gorm:"autoCreateTime"`

	// Roster: users whose team_id points here.
	Members []User `gorm:"foreignKey:TeamID"`
}
