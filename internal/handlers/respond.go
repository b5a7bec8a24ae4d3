package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
	"github.com/taskflow-dev/taskflow/internal/utils"
)

func respondErr(ctx *gin.Context, err error) {
	status := services.HTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": ctx.Request.Method,
			"path":   ctx.FullPath(),
		}).WithError(err).Error("request failed")
	}

	ctx.JSON(status, types.MessageResponse{Message: services.PublicMessage(err)})
}

func respondMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, types.MessageResponse{Message: message})
}

// decodeJSON binds the request body and applies its binding tags. Optional
// fields keep track of presence through their UnmarshalJSON.
func decodeJSON(ctx *gin.Context, v interface{}) bool {
	if err := ctx.ShouldBindJSON(v); err != nil {
		log.WithError(err).Debug("invalid request body")
		respondErr(ctx, services.ValidationFailure(v, err))
		return false
	}

	return true
}

func currentUser(ctx *gin.Context) (auth.Identity, bool) {
	identity, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondMessage(ctx, http.StatusUnauthorized, "User not authenticated")
		return auth.Identity{}, false
	}

	return identity, true
}

func resourceID(ctx *gin.Context) (string, bool) {
	id, err := utils.GetResourceID(ctx)

	if err != nil {
		respondMessage(ctx, http.StatusBadRequest, err.Error())
		return "", false
	}

	return id, true
}

func emailParam(ctx *gin.Context) (string, bool) {
	email, err := utils.GetEmailParam(ctx)

	if err != nil {
		respondMessage(ctx, http.StatusBadRequest, err.Error())
		return "", false
	}

	return email, true
}
