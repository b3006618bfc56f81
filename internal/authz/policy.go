// Package authz holds the pure authorization rules shared by the handlers.
// Every team member has equal administrative power: there is no owner or role
// hierarchy, and the productOwner/projectManager references on a team are
// labels only.
package authz

import (
	"github.com/google/uuid"

	"twistlist/internal/model"
)

// IsTeamMember reports whether the user currently belongs to the given team.
// Exact team match: membership in some other team counts for nothing.
func IsTeamMember(user *model.User, teamID uuid.UUID) bool {
	return user != nil && user.TeamID != nil && *user.TeamID == teamID
}

// CanViewTask reports whether the user may read the task: author or assignee.
func CanViewTask(userID uuid.UUID, task *model.Task) bool {
	if task == nil {
		return false
	}
	if task.AuthorUserID == userID {
		return true
	}
	return task.AssignedUserID != nil && *task.AssignedUserID == userID
}

// CanUpdateTask mirrors CanViewTask: author or assignee may update.
func CanUpdateTask(userID uuid.UUID, task *model.Task) bool {
	return CanViewTask(userID, task)
}

// CanDeleteTask is author-only.
func CanDeleteTask(userID uuid.UUID, task *model.Task) bool {
	return task != nil && task.AuthorUserID == userID
}
