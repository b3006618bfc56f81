package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username          string     `gorm:"uniqueIndex;not null"`
	Email             string     `gorm:"uniqueIndex;not null"`
	HashedPassword    string     `gorm:"not null"`
	ProfilePictureURL string
	TeamID            *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time  `gorm:"autoCreateTime"`

	Team *Team `gorm:"foreignKey:TeamID"`
}
