package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

type TokenVerifier interface {
	VerifyJWT(token string) (auth.Identity, error)
}

// Authenticate requires an "Authorization: Bearer <token>" header. A missing
// or malformed header is 401; a token that fails verification is 403.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.MessageResponse{Message: "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, types.MessageResponse{Message: "Authorization header format must be Bearer {token}"})
			return
		}

		identity, err := verifier.VerifyJWT(strings.TrimSpace(parts[1]))

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, types.MessageResponse{Message: "Invalid or expired token"})
			return
		}

		utils.SetCurrentUser(ctx, identity)
		ctx.Next()
	}
}
