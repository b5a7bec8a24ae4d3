package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/services"
)

type DeleteProjectResponse struct {
	Message      string             `json:"message"`
	Project      models.ProjectView `json:"project"`
	DeletedTasks int64              `json:"deletedTasks"`
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	projects, err := h.Projects.List(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *Handler) ListMyProjects(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	projects, err := h.Projects.ListOwn(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	var body services.ProjectInput

	if !decodeJSON(ctx, &body) {
		return
	}

	project, err := h.Projects.Create(ctx.Request.Context(), identity, body)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	id, ok := resourceID(ctx)

	if !ok {
		return
	}

	var body models.ProjectPatch

	if !decodeJSON(ctx, &body) {
		return
	}

	project, err := h.Projects.Update(ctx.Request.Context(), identity, id, body)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	id, ok := resourceID(ctx)

	if !ok {
		return
	}

	project, deleted, err := h.Projects.Delete(ctx.Request.Context(), identity, id)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, DeleteProjectResponse{
		Message:      "Project and associated tasks deleted",
		Project:      *project,
		DeletedTasks: deleted,
	})
}
