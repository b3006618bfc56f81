package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"twistlist/internal/auth"
	"twistlist/internal/middleware"
	"twistlist/internal/model"
	"twistlist/internal/repository"
)

type AuthHandler struct {
	userRepo repository.UserRepositoryInterface
}

func NewAuthHandler(userRepo repository.UserRepositoryInterface) *AuthHandler {
	return &AuthHandler{userRepo: userRepo}
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignInRequest struct {
	EmailOrUsername string `json:"emailOrUsername" binding:"required"`
	Password        string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// setAuthCookie installs the cross-site session cookie. Max-age tracks the
// token lifetime.
func setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AuthTokenCookie, token, auth.ExpiryMinutes()*60, "/", "", true, true)
}

// Signup registers a new user and opens a session
// @Summary Register a new user
// @Tags Authentication
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.userRepo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	if existing == nil {
		existing, err = h.userRepo.FindByUsername(c.Request.Context(), req.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
			return
		}
	}
	if existing != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Email or username already taken"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hash error"})
		return
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hash,
	}

	if err := h.userRepo.Create(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token error"})
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

// Signin opens a session for an existing user
// @Summary Sign in an existing user
// @Tags Authentication
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := h.userRepo.FindByEmailOrUsername(c.Request.Context(), req.EmailOrUsername)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Credentials incorrect"})
		return
	}

	ok, err := auth.VerifyPassword(user.HashedPassword, req.Password)
	if err != nil || !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Credentials incorrect"})
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token error"})
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, AuthResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

// Logout clears the session cookie
// @Summary Logout
// @Tags Authentication
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Attributes must match the original cookie for browsers to drop it.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AuthTokenCookie, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
