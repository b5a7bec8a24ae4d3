package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow-dev/taskflow/internal/dashboard"
	"github.com/taskflow-dev/taskflow/internal/models"
)

// GetDashboard serves the overview for the caller's own tasks and projects.
// The optional date query (YYYY-MM-DD) sets "today"; it defaults to the
// current UTC date.
func (h *Handler) GetDashboard(ctx *gin.Context) {
	identity, ok := currentUser(ctx)

	if !ok {
		return
	}

	today := time.Now().UTC()

	if raw := ctx.Query("date"); raw != "" {
		parsed, err := models.ParseDate(raw)
		if err != nil {
			respondMessage(ctx, http.StatusBadRequest, "Invalid date")
			return
		}
		today = *parsed
	}

	tasks, err := h.Tasks.ListOwn(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	projects, err := h.Projects.ListOwn(ctx.Request.Context(), identity)

	if err != nil {
		respondErr(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dashboard.Build(tasks, projects, today))
}
