package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectTeam links a project to a team. Many-to-many in the schema, though
// project creation always attaches exactly one team.
type ProjectTeam struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_teams_project_team"`
	TeamID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_teams_project_team"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Project Project `gorm:"foreignKey:ProjectID"`
	Team    Team    `gorm:"foreignKey:TeamID"`
}
