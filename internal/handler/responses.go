package handler

import (
	"time"

	"github.com/google/uuid"

	"twistlist/internal/model"
)

// UserResponse is the minimal user identity exposed by the API. The password
// hash never leaves the server.
type UserResponse struct {
	ID                string  `json:"userId"`
	Username          string  `json:"username"`
	Email             string  `json:"email"`
	ProfilePictureURL string  `json:"profilePictureUrl,omitempty"`
	TeamID            *string `json:"teamId"`
}

type TeamRequestResponse struct {
	ID        string        `json:"id"`
	TeamID    string        `json:"teamId"`
	UserID    string        `json:"userId"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	User      *UserResponse `json:"user,omitempty"`
}

type TeamResponse struct {
	ID                   string                `json:"id"`
	TeamName             string                `json:"teamName"`
	ProductOwnerUserID   *string               `json:"productOwnerUserId"`
	ProjectManagerUserID *string               `json:"projectManagerUserId"`
	Members              []UserResponse        `json:"members"`
	PendingRequests      []TeamRequestResponse `json:"pendingRequests"`
}

type ProjectResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type TaskResponse struct {
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

func toUserResponse(user *model.User) UserResponse {
	resp := UserResponse{
		ID:                user.ID.String(),
		Username:          user.Username,
		Email:             user.Email,
		ProfilePictureURL: user.ProfilePictureURL,
	}
	if user.TeamID != nil {
		id := user.TeamID.String()
		resp.TeamID = &id
	}
	return resp
}

func toTeamRequestResponse(request *model.TeamRequest) TeamRequestResponse {
	resp := TeamRequestResponse{
		ID:        request.ID.String(),
		TeamID:    request.TeamID.String(),
		UserID:    request.UserID.String(),
		Status:    request.Status,
		CreatedAt: request.CreatedAt,
	}
	if request.User.ID != uuid.Nil {
		user := toUserResponse(&request.User)
		resp.User = &user
	}
	return resp
}

func toTeamResponse(team *model.Team, pending []model.TeamRequest) TeamResponse {
	resp := TeamResponse{
		ID:              team.ID.String(),
		TeamName:        team.TeamName,
		Members:         make([]UserResponse, 0, len(team.Members)),
		PendingRequests: make([]TeamRequestResponse, 0, len(pending)),
	}
	if team.ProductOwnerUserID != nil {
		id := team.ProductOwnerUserID.String()
		resp.ProductOwnerUserID = &id
	}
	if team.ProjectManagerUserID != nil {
		id := team.ProjectManagerUserID.String()
		resp.ProjectManagerUserID = &id
	}
	for i := range team.Members {
		resp.Members = append(resp.Members, toUserResponse(&team.Members[i]))
	}
	for i := range pending {
		resp.PendingRequests = append(resp.PendingRequests, toTeamRequestResponse(&pending[i]))
	}
	return resp
}

func toProjectResponse(project *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID.String(),
		Name:        project.Name,
		Description: project.Description,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
	}
}

func toTaskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:           task.ID.String(),
		Title:        task.Title,
		Description:  task.Description,
		Status:       task.Status,
		Priority:     task.Priority,
		Tags:         task.Tags,
		StartDate:    task.StartDate,
		DueDate:      task.DueDate,
		Points:       task.Points,
		Position:     task.Position,
		ProjectID:    task.ProjectID.String(),
		AuthorUserID: task.AuthorUserID.String(),
	}
	if task.AssignedUserID != nil {
		id := task.AssignedUserID.String()
		resp.AssignedUserID = &id
	}
	return resp
}
