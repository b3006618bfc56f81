package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"twistlist/internal/authz"
	"twistlist/internal/middleware"
	"twistlist/internal/model"
	"twistlist/internal/repository"
)

type ProjectHandler struct {
	projectRepo repository.ProjectRepositoryInterface
	teamRepo    repository.TeamRepositoryInterface
}

func NewProjectHandler(
	projectRepo repository.ProjectRepositoryInterface,
	teamRepo repository.TeamRepositoryInterface,
) *ProjectHandler {
	return &ProjectHandler{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
	}
}

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	TeamID      *string    `json:"teamId"`
}

type UpdateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// requireProjectAccess loads the project and verifies the caller's team is
// linked to it, writing the error response on failure.
func (h *ProjectHandler) requireProjectAccess(c *gin.Context, user *model.User) *model.Project {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return nil
	}

	project, err := h.projectRepo.GetByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return nil
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return nil
	}

	if user.TeamID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this project"})
		return nil
	}

	linked, err := h.projectRepo.IsLinkedToTeam(c.Request.Context(), project.ID, *user.TeamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check project access"})
		return nil
	}
	if !linked {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this project"})
		return nil
	}

	return project
}

// Create inserts a project and links it to a team in one transaction. The
// team defaults to the caller's own.
// @Summary Create a new project
// @Tags Projects
// @Router /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var teamID uuid.UUID
	if req.TeamID != nil {
		id, err := uuid.Parse(*req.TeamID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID format"})
			return
		}
		team, err := h.teamRepo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrTeamNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Team not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
			return
		}
		if !authz.IsTeamMember(user, team.ID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not a member of this team"})
			return
		}
		teamID = team.ID
	} else {
		if user.TeamID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You must belong to a team to create a project"})
			return
		}
		teamID = *user.TeamID
	}

	project := &model.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := h.projectRepo.CreateWithTeam(c.Request.Context(), project, teamID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// GetAll lists the projects linked to the caller's team
// @Summary List projects
// @Tags Projects
// @Router /projects [get]
func (h *ProjectHandler) GetAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	// No team, no projects.
	if user.TeamID == nil {
		c.JSON(http.StatusOK, []ProjectResponse{})
		return
	}

	projects, err := h.projectRepo.ListByTeam(c.Request.Context(), *user.TeamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]ProjectResponse, len(projects))
	for i := range projects {
		response[i] = toProjectResponse(&projects[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns one project, team-scoped
// @Summary Get a project
// @Tags Projects
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	project := h.requireProjectAccess(c, user)
	if project == nil {
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Update mutates a project, team-scoped
// @Summary Update a project
// @Tags Projects
// @Router /projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	project := h.requireProjectAccess(c, user)
	if project == nil {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := h.projectRepo.Update(c.Request.Context(), project); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete removes a project, team-scoped. Tasks and team links cascade.
// @Summary Delete a project
// @Tags Projects
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	project := h.requireProjectAccess(c, user)
	if project == nil {
		return
	}

	if err := h.projectRepo.Delete(c.Request.Context(), project.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
