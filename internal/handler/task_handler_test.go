package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"twistlist/internal/handler"
	"twistlist/internal/model"
	"twistlist/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type taskTestEnv struct {
	router      *gin.Engine
	taskRepo    *MockTaskRepository
	projectRepo *MockProjectRepository
	userRepo    *MockUserRepository
}

func setupTaskTest(user *model.User) *taskTestEnv {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	env := &taskTestEnv{
		router:      r,
		taskRepo:    new(MockTaskRepository),
		projectRepo: new(MockProjectRepository),
		userRepo:    new(MockUserRepository),
	}
	taskHandler := handler.NewTaskHandler(env.taskRepo, env.projectRepo, env.userRepo)

	authed := r.Group("/")
	authed.Use(asUser(user))
	authed.POST("/tasks", taskHandler.Create)
	authed.PATCH("/tasks/reorder", taskHandler.Reorder)
	authed.GET("/tasks/:id", taskHandler.GetByID)
	authed.PATCH("/tasks/:id", taskHandler.Update)
	authed.DELETE("/tasks/:id", taskHandler.Delete)

	return env
}

func TestCreateTask_Success(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "author", Email: "author@example.com"}
	env := setupTaskTest(caller)

	projectID := uuid.New()
	env.projectRepo.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID, Name: "Launch"}, nil)
	env.taskRepo.On("Create", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
		return task.AuthorUserID == caller.ID && task.ProjectID == projectID && task.Status == model.TaskPending
	})).Return(nil)

	reqBody := handler.CreateTaskRequest{
		Title:     "Write release notes",
		ProjectID: projectID.String(),
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var response handler.TaskResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Write release notes", response.Title)
	assert.Equal(t, caller.ID.String(), response.AuthorUserID)

	env.taskRepo.AssertExpectations(t)
}

func TestCreateTask_ProjectNotFound(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "author", Email: "author@example.com"}
	env := setupTaskTest(caller)

	projectID := uuid.New()
	env.projectRepo.On("GetByID", mock.Anything, projectID).Return(nil, repository.ErrProjectNotFound)

	reqBody := handler.CreateTaskRequest{
		Title:     "Write release notes",
		ProjectID: projectID.String(),
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Project not found")
	env.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTask_UnknownAssignee(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "author", Email: "author@example.com"}
	env := setupTaskTest(caller)

	projectID := uuid.New()
	assigneeID := uuid.New()
	env.projectRepo.On("GetByID", mock.Anything, projectID).Return(&model.Project{ID: projectID, Name: "Launch"}, nil)
	env.userRepo.On("GetByID", mock.Anything, assigneeID).Return(nil, nil)

	assignee := assigneeID.String()
	reqBody := handler.CreateTaskRequest{
		Title:          "Write release notes",
		ProjectID:      projectID.String(),
		AssignedUserID: &assignee,
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("POST", "/tasks", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Assigned user not found")
	env.taskRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetTask_StrangerForbidden(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "stranger", Email: "stranger@example.com"}
	env := setupTaskTest(caller)

	task := &model.Task{
		ID:           uuid.New(),
		Title:        "Private task",
		Status:       model.TaskPending,
		ProjectID:    uuid.New(),
		AuthorUserID: uuid.New(),
	}
	env.taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/tasks/%s", task.ID), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "You do not have permission to view this task")
}

func TestUpdateTask_AssigneeAllowed(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "assignee", Email: "assignee@example.com"}
	env := setupTaskTest(caller)

	task := &model.Task{
		ID:             uuid.New(),
		Title:          "Ship it",
		Status:         model.TaskPending,
		ProjectID:      uuid.New(),
		AuthorUserID:   uuid.New(),
		AssignedUserID: &caller.ID,
	}
	env.taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	env.taskRepo.On("Update", mock.Anything, mock.MatchedBy(func(updated *model.Task) bool {
		return updated.Status == model.TaskCompleted && updated.AuthorUserID == task.AuthorUserID
	})).Return(nil)

	status := model.TaskCompleted
	reqBody := handler.UpdateTaskRequest{Status: &status}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/tasks/%s", task.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.TaskResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, model.TaskCompleted, response.Status)

	env.taskRepo.AssertExpectations(t)
}

func TestUpdateTask_StrangerForbidden(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "stranger", Email: "stranger@example.com"}
	env := setupTaskTest(caller)

	task := &model.Task{
		ID:           uuid.New(),
		Title:        "Ship it",
		Status:       model.TaskPending,
		ProjectID:    uuid.New(),
		AuthorUserID: uuid.New(),
	}
	env.taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)

	status := model.TaskCompleted
	reqBody := handler.UpdateTaskRequest{Status: &status}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PATCH", fmt.Sprintf("/tasks/%s", task.ID), bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	env.taskRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteTask_AuthorAllowed(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "author", Email: "author@example.com"}
	env := setupTaskTest(caller)

	task := &model.Task{
		ID:           uuid.New(),
		Title:        "Ship it",
		Status:       model.TaskPending,
		ProjectID:    uuid.New(),
		AuthorUserID: caller.ID,
	}
	env.taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	env.taskRepo.On("Delete", mock.Anything, task.ID).Return(nil)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/tasks/%s", task.ID), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task deleted successfully")
	env.taskRepo.AssertExpectations(t)
}

func TestDeleteTask_AssigneeForbidden(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "assignee", Email: "assignee@example.com"}
	env := setupTaskTest(caller)

	task := &model.Task{
		ID:             uuid.New(),
		Title:          "Ship it",
		Status:         model.TaskPending,
		ProjectID:      uuid.New(),
		AuthorUserID:   uuid.New(),
		AssignedUserID: &caller.ID,
	}
	env.taskRepo.On("GetByID", mock.Anything, task.ID).Return(task, nil)

	req, _ := http.NewRequest("DELETE", fmt.Sprintf("/tasks/%s", task.ID), nil)

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Only the author can delete")
	env.taskRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReorderTasks_Success(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "author", Email: "author@example.com"}
	env := setupTaskTest(caller)

	first := uuid.New()
	second := uuid.New()
	env.taskRepo.On("UpdatePositions", mock.Anything, caller.ID, []repository.PositionUpdate{
		{ID: first, Position: 1},
		{ID: second, Position: 0},
	}).Return(nil)

	entries := []handler.ReorderEntry{
		{ID: first.String(), Position: 1},
		{ID: second.String(), Position: 0},
	}
	jsonBody, _ := json.Marshal(entries)
	req, _ := http.NewRequest("PATCH", "/tasks/reorder", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Tasks reordered successfully")
	env.taskRepo.AssertExpectations(t)
}

func TestReorderTasks_BadID(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "author", Email: "author@example.com"}
	env := setupTaskTest(caller)

	entries := []handler.ReorderEntry{{ID: "not-a-uuid", Position: 0}}
	jsonBody, _ := json.Marshal(entries)
	req, _ := http.NewRequest("PATCH", "/tasks/reorder", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	env.router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	env.taskRepo.AssertNotCalled(t, "UpdatePositions", mock.Anything, mock.Anything, mock.Anything)
}
