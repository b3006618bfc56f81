package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"twistlist/internal/auth"
	"twistlist/internal/middleware"
	"twistlist/internal/repository"
)

const searchResultLimit = 10

type UserHandler struct {
	userRepo repository.UserRepositoryInterface
}

func NewUserHandler(userRepo repository.UserRepositoryInterface) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

type UpdateProfileRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email" binding:"omitempty,email"`
	Password          string `json:"password" binding:"omitempty,min=6"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// GetProfile returns the authenticated user
// @Summary Get current user profile
// @Tags Users
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateProfile mutates the authenticated user's own record
// @Summary Update current user profile
// @Tags Users
// @Router /users/profile [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := h.userRepo.FindByUsername(c.Request.Context(), req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
			return
		}
		if taken != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email or username already taken"})
			return
		}
		user.Username = req.Username
	}

	if req.Email != "" && !strings.EqualFold(req.Email, user.Email) {
		email := strings.ToLower(req.Email)
		taken, err := h.userRepo.FindByEmail(c.Request.Context(), email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
			return
		}
		if taken != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email or username already taken"})
			return
		}
		user.Email = email
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Hash error"})
			return
		}
		user.HashedPassword = hash
	}

	if req.ProfilePictureURL != "" {
		user.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteAccount removes the authenticated user. Owned tasks cascade per the
// schema.
// @Summary Delete current user account
// @Tags Users
// @Router /users/account [delete]
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// Search performs the typeahead lookup over username and email
// @Summary Search users
// @Tags Users
// @Router /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []UserResponse{})
		return
	}

	users, err := h.userRepo.Search(c.Request.Context(), query, searchResultLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	response := make([]UserResponse, len(users))
	for i := range users {
		response[i] = toUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, response)
}
