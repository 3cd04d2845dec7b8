package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentalhub/rentalhub-api/internal/apierrors"
	"github.com/rentalhub/rentalhub-api/internal/auth"
	"github.com/rentalhub/rentalhub-api/internal/database"
	"github.com/rentalhub/rentalhub-api/internal/models"
)

const contextKeyUser = "currentUser"

// RequireAuth verifies the bearer token and loads the user into the context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		username, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().Where("username = ?", username).First(&user).Error; err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(contextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	return user, ok
}

// SetCurrentUser stashes a user in the context (used for testing)
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(contextKeyUser, user)
}
