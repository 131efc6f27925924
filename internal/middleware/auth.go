package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/meduzzen/company-directory-api/internal/apierrors"
	"github.com/meduzzen/company-directory-api/internal/constants"
	"github.com/meduzzen/company-directory-api/internal/models"
	"github.com/meduzzen/company-directory-api/internal/services"
)

const contextKeyUser = "current_user"

// RequireAuth resolves the acting user from the bearer token and stores it in
// the request context. Any decode failure or unknown user yields 401.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "Missing bearer token")
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := authService.ResolveUser(token)
		if err != nil {
			apierrors.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	return id, ok
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(contextKeyUser)
	if !exists {
		return nil, false
	}

	user, ok := value.(*models.User)
	return user, ok
}

// SetCurrentUser places a user in the request context (used for testing)
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(contextKeyUser, user)
}
