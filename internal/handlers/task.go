package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/services"
)

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=NEW NOT_STARTED IN_PROGRESS BLOCKED COMPLETED"`
}

type DeleteTaskResponse struct {
	Message string          `json:"message"`
	Task    models.TaskView `json:"task"`
}

func (h *Handler) ListTasks(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	tasks, err := h.Tasks.List(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

// ListMyTasks backs both the kanban board and the "my tasks" listing.
func (h *Handler) ListMyTasks(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	tasks, err := h.Tasks.ListOwn(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *Handler) CreateTask(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	var body services.TaskInput

	if !decodeJSON(ctx, &body) {
		return
	}

	task, err := h.Tasks.Create(ctx.Request.Context(), identity, body)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	id, ok := resourceID(ctx)

	if !ok {
		return
	}

	var body models.TaskPatch

	if !decodeJSON(ctx, &body) {
		return
	}

	task, err := h.Tasks.Update(ctx.Request.Context(), identity, id, body)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTaskStatus(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	id, ok := resourceID(ctx)

	if !ok {
		return
	}

	var body UpdateTaskStatusRequest

	if !decodeJSON(ctx, &body) {
		return
	}

	task, err := h.Tasks.UpdateStatus(ctx.Request.Context(), identity, id, body.Status)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	id, ok := resourceID(ctx)

	if !ok {
		return
	}

	task, err := h.Tasks.Delete(ctx.Request.Context(), identity, id)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, DeleteTaskResponse{Message: "Task deleted", Task: *task})
}
