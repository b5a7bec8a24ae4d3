package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/internal/services"
	"github.com/taskflow-dev/taskflow/internal/types"
)

func (h *Handler) Register(ctx *gin.Context) {
	var body services.RegisterInput

	if !decodeJSON(ctx, &body) {
		return
	}

	user, err := h.Auth.Register(ctx.Request.Context(), body)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	log.WithFields(log.Fields{"user": user.ID, "role": user.Role}).Info("user registered")
	respondMessage(ctx, http.StatusCreated, "Registered successfully")
}

func (h *Handler) Login(ctx *gin.Context) {
	var body services.LoginInput

	if !decodeJSON(ctx, &body) {
		return
	}

	token, err := h.Auth.Login(ctx.Request.Context(), body.Email, body.Password)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.TokenResponse{Token: token})
}

func (h *Handler) Me(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": identity})
}
