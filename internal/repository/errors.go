package repository

import "errors"

// Common repository errors
var (
	// ErrTeamNotFound is returned when a team is not found
	ErrTeamNotFound = errors.New("team not found")

	// ErrProjectNotFound is returned when a project is not found
	ErrProjectNotFound = errors.New("project not found")

	// ErrTaskNotFound is returned when a task is not found
	ErrTaskNotFound = errors.New("task not found")

	// ErrRequestNotFound is returned when a join request is not found
	ErrRequestNotFound = errors.New("join request not found")
)
