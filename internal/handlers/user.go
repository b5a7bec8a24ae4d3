package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	users, err := h.Users.List(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}
