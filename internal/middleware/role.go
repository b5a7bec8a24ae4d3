package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return requireRole("Admin access required", models.RoleAdmin)
}

// RequireTaskTracker admits ADMIN and TASK_TRACKER callers.
func RequireTaskTracker() gin.HandlerFunc {
	return requireRole("Forbidden", models.RoleAdmin, models.RoleTaskTracker)
}

func requireRole(message string, allowed ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.MessageResponse{Message: "User not authenticated"})
			return
		}

		for _, role := range allowed {
			if identity.Role == role {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, types.MessageResponse{Message: message})
	}
}
