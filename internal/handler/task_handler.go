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

type TaskHandler struct {
	taskRepo    repository.TaskRepositoryInterface
	projectRepo repository.ProjectRepositoryInterface
	userRepo    repository.UserRepositoryInterface
}

func NewTaskHandler(
	taskRepo repository.TaskRepositoryInterface,
	projectRepo repository.ProjectRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
) *TaskHandler {
	return &TaskHandler{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

type CreateTaskRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Status         string     `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority       string     `json:"priority"`
	Tags           string     `json:"tags"`
	StartDate      *time.Time `json:"startDate"`
	DueDate        *time.Time `json:"dueDate"`
	Points         *int       `json:"points"`
	Position       *int       `json:"position"`
	ProjectID      string     `json:"projectId" binding:"required"`
	AssignedUserID *string    `json:"assignedUserId"`
}

type UpdateTaskRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Status         *string    `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED"`
	Priority       *string    `json:"priority"`
	Tags           *string    `json:"tags"`
	StartDate      *time.Time `json:"startDate"`
	DueDate        *time.Time `json:"dueDate"`
	Points         *int       `json:"points"`
	Position       *int       `json:"position"`
	AssignedUserID *string    `json:"assignedUserId"`
}

type ReorderEntry struct {
	ID       string `json:"id" binding:"required"`
	Position int    `json:"position"`
}

// Create creates a task authored by the caller
// @Summary Create a new task
// @Tags Tasks
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
		return
	}

	if _, err := h.projectRepo.GetByID(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	task := &model.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       model.TaskPending,
		Priority:     req.Priority,
		Tags:         req.Tags,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Points:       req.Points,
		Position:     req.Position,
		ProjectID:    projectID,
		AuthorUserID: user.ID,
	}
	if req.Status != "" {
		task.Status = req.Status
	}

	if req.AssignedUserID != nil {
		assigneeID, err := uuid.Parse(*req.AssignedUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		assignee, err := h.userRepo.GetByID(c.Request.Context(), assigneeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find assignee"})
			return
		}
		if assignee == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
			return
		}
		task.AssignedUserID = &assigneeID
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetAll lists the caller's tasks, optionally filtered by project
// @Summary List tasks
// @Tags Tasks
// @Router /tasks [get]
func (h *TaskHandler) GetAll(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var projectID *uuid.UUID
	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID format"})
			return
		}
		projectID = &id
	}

	tasks, err := h.taskRepo.ListForUser(c.Request.Context(), user.ID, projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns one task, author or assignee only
// @Summary Get a task
// @Tags Tasks
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	if !authz.CanViewTask(user.ID, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to view this task"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update mutates a task, author or assignee only. The author never changes.
// @Summary Update a task
// @Tags Tasks
// @Router /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	if !authz.CanUpdateTask(user.ID, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to update this task"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.StartDate != nil {
		task.StartDate = req.StartDate
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Points != nil {
		task.Points = req.Points
	}
	if req.Position != nil {
		task.Position = req.Position
	}
	if req.AssignedUserID != nil {
		assigneeID, err := uuid.Parse(*req.AssignedUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		if task.AssignedUserID == nil || *task.AssignedUserID != assigneeID {
			assignee, err := h.userRepo.GetByID(c.Request.Context(), assigneeID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find assignee"})
				return
			}
			if assignee == nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user not found"})
				return
			}
		}
		task.AssignedUserID = &assigneeID
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete removes a task. Author only; the assignee may not delete.
// @Summary Delete a task
// @Tags Tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		return
	}

	if !authz.CanDeleteTask(user.ID, task) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to delete this task. Only the author can delete."})
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), task.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Reorder applies a bulk position update for drag-and-drop. Entries the
// caller may not update are skipped rather than failing the batch.
// @Summary Reorder tasks
// @Tags Tasks
// @Router /tasks/reorder [patch]
func (h *TaskHandler) Reorder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var entries []ReorderEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updates := make([]repository.PositionUpdate, 0, len(entries))
	for _, entry := range entries {
		id, err := uuid.Parse(entry.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
			return
		}
		updates = append(updates, repository.PositionUpdate{ID: id, Position: entry.Position})
	}

	if err := h.taskRepo.UpdatePositions(c.Request.Context(), user.ID, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tasks reordered successfully"})
}
