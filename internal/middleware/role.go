package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tamaki/restaurant-ops-api/internal/constants"
	"github.com/tamaki/restaurant-ops-api/internal/database"
	apierrors "github.com/tamaki/restaurant-ops-api/internal/errors"
	"github.com/tamaki/restaurant-ops-api/internal/models"
)

// RequireRole loads the authenticated user and checks their staff role
// against the allowed set. The loaded user is stored in context so handlers
// don't query again.
func RequireRole(roles ...models.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			apierrors.Unauthorized(c, "Unknown user")
			c.Abort()
			return
		}

		allowed := len(roles) == 0
		for _, role := range roles {
			if user.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCurrentUser, user)
		c.Next()
	}
}

// GetUser retrieves the user loaded by RequireRole from context.
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(models.User)
	if !ok {
		return nil, false
	}
	return &user, true
}
