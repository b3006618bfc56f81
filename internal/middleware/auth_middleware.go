package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"twistlist/internal/auth"
	"twistlist/internal/model"
)

// Context keys set by the auth middleware
const (
	UserIDKey      = "userID"
	CurrentUserKey = "currentUser"
)

// AuthTokenCookie is the session cookie carrying the JWT.
const AuthTokenCookie = "auth_token"

type UserFetcher interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// JWTAuthMiddleware validates the session and injects the current user into
// the request context. The token is read from the auth_token cookie first,
// falling back to an Authorization bearer header for non-browser clients.
func JWTAuthMiddleware(users UserFetcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(AuthTokenCookie)
		if err != nil || tokenStr == "" {
			header := c.GetHeader("Authorization")
			if header == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
				return
			}
			tokenStr = parts[1]
		}

		userID, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// The token alone is not enough: the account may have been deleted
		// since it was issued.
		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the gin context.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
