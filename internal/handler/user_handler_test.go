package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"twistlist/internal/handler"
	"twistlist/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupUserTest(user *model.User) (*gin.Engine, *MockUserRepository) {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	mockRepo := new(MockUserRepository)
	userHandler := handler.NewUserHandler(mockRepo)

	authed := r.Group("/")
	authed.Use(asUser(user))
	authed.GET("/users/profile", userHandler.GetProfile)
	authed.PATCH("/users/profile", userHandler.UpdateProfile)
	authed.DELETE("/users/account", userHandler.DeleteAccount)
	authed.GET("/users/search", userHandler.Search)

	return r, mockRepo
}

func TestGetProfile_ReturnsCaller(t *testing.T) {
	// Arrange
	teamID := uuid.New()
	caller := &model.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		TeamID:   &teamID,
	}
	router, _ := setupUserTest(caller)

	req, _ := http.NewRequest("GET", "/users/profile", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.UserResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, caller.ID.String(), response.ID)
	assert.Equal(t, "alice", response.Username)
	assert.NotNil(t, response.TeamID)
	assert.Equal(t, teamID.String(), *response.TeamID)
}

func TestUpdateProfile_UsernameTaken(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	router, mockRepo := setupUserTest(caller)

	other := &model.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com"}
	mockRepo.On("FindByUsername", mock.Anything, "bob").Return(other, nil)

	reqBody := handler.UpdateProfileRequest{Username: "bob"}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PATCH", "/users/profile", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Contains(t, resp.Body.String(), "Email or username already taken")
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateProfile_Success(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	router, mockRepo := setupUserTest(caller)

	mockRepo.On("FindByUsername", mock.Anything, "alice2").Return(nil, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == caller.ID && u.Username == "alice2" && u.ProfilePictureURL == "https://cdn.example.com/a.png"
	})).Return(nil)

	reqBody := handler.UpdateProfileRequest{
		Username:          "alice2",
		ProfilePictureURL: "https://cdn.example.com/a.png",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req, _ := http.NewRequest("PATCH", "/users/profile", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.UserResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "alice2", response.Username)

	mockRepo.AssertExpectations(t)
}

func TestDeleteAccount_Success(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	router, mockRepo := setupUserTest(caller)

	mockRepo.On("Delete", mock.Anything, caller.ID).Return(nil)

	req, _ := http.NewRequest("DELETE", "/users/account", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Account deleted successfully")
	mockRepo.AssertExpectations(t)
}

func TestSearchUsers_EmptyQuery(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	router, mockRepo := setupUserTest(caller)

	req, _ := http.NewRequest("GET", "/users/search", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "[]", resp.Body.String())
	mockRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchUsers_ReturnsMatches(t *testing.T) {
	// Arrange
	caller := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	router, mockRepo := setupUserTest(caller)

	matches := []model.User{
		{ID: uuid.New(), Username: "bob", Email: "bob@example.com"},
		{ID: uuid.New(), Username: "bobby", Email: "bobby@example.com"},
	}
	mockRepo.On("Search", mock.Anything, "bob", 10).Return(matches, nil)

	req, _ := http.NewRequest("GET", "/users/search?q=bob", nil)

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response []handler.UserResponse
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "bob", response[0].Username)

	mockRepo.AssertExpectations(t)
}
