package client

import "time"

// User mirrors the API user identity object.
type User struct {
	ID                string  `json:"userId"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	ProfilePictureURL string  `json:"profilePictureUrl,omitempty"`
	TeamID            *string `json:"teamId"`
}

type Team struct {
	ID                   string        `json:"id"`
	TeamName             string        `json:"teamName"`
	ProductOwnerUserID   *string       `json:"productOwnerUserId"`
	ProjectManagerUserID *string       `json:"projectManagerUserId"`
	Members              []User        `json:"members"`
	PendingRequests      []TeamRequest `json:"pendingRequests"`
}

type TeamRequest struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	User      *User     `json:"user,omitempty"`
}

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority,omitempty"`
	Tags           string     `json:"tags,omitempty"`
	StartDate      *time.Time `json:"startDate"`
	DueDate        *time.Time `json:"dueDate"`
	Points         *int       `json:"points"`
	Position       *int       `json:"position"`
	ProjectID      string     `json:"projectId"`
	AuthorUserID   string     `json:"authorUserId"`
	AssignedUserID *string    `json:"assignedUserId"`
}

// TaskPatch carries a partial task update. Nil fields are left alone.
type TaskPatch struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Status         *string    `json:"status,omitempty"`
	Priority       *string    `json:"priority,omitempty"`
	Tags           *string    `json:"tags,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Points         *int       `json:"points,omitempty"`
	Position       *int       `json:"position,omitempty"`
	AssignedUserID *string    `json:"assignedUserId,omitempty"`
}

// apply copies the non-nil patch fields onto a task.
func (p TaskPatch) apply(task *Task) {
	if p.Title != nil {
		task.Title = *p.Title
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.Tags != nil {
		task.Tags = *p.Tags
	}
	if p.StartDate != nil {
		task.StartDate = p.StartDate
	}
	if p.DueDate != nil {
		task.DueDate = p.DueDate
	}
	if p.Points != nil {
		task.Points = p.Points
	}
	if p.Position != nil {
		task.Position = p.Position
	}
	if p.AssignedUserID != nil {
		task.AssignedUserID = p.AssignedUserID
	}
}

// PositionUpdate is one entry of a bulk reorder.
type PositionUpdate struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type TaskFilter struct {
	ProjectID string
}
