package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/taskflow-dev/taskflow/internal/services"
)

func (h *Handler) ListRoles(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	roles, err := h.Roles.List(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}

func (h *Handler) CreateRole(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	var body services.RoleInput

	if !decodeJSON(ctx, &body) {
		return
	}

	role, err := h.Roles.Create(ctx.Request.Context(), identity, body)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	log.WithFields(log.Fields{"email": role.Email, "role": role.Role, "by": identity.ID}).Info("authorization created")
	ctx.JSON(http.StatusCreated, role)
}

func (h *Handler) UpdateRole(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	email, ok := emailParam(ctx)

	if !ok {
		return
	}

	var body services.RoleInput

	if !decodeJSON(ctx, &body) {
		return
	}

	role, err := h.Roles.Update(ctx.Request.Context(), identity, email, body)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, role)
}

func (h *Handler) DeleteRole(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	email, ok := emailParam(ctx)

	if !ok {
		return
	}

	if err := h.Roles.Delete(ctx.Request.Context(), identity, email); err != nil {
		respondErr(ctx, err)
		return
	}

	log.WithFields(log.Fields{"email": email, "by": identity.ID}).Info("authorization deleted")
	respondMessage(ctx, http.StatusOK, "Role and user deleted")
}
