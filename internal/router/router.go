package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/handlers"
	"github.com/taskflow-dev/taskflow/internal/middleware"
)

func NewRouter(h *handlers.Handler, verifier middleware.TokenVerifier, allowedOrigins []string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authenticated := middleware.Authenticate(verifier)
	tracker := middleware.RequireTaskTracker()

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", h.Login)
			auth.GET("/me", authenticated, h.Me)
		}

		admin := api.Group("/admin", authenticated, middleware.RequireAdmin())
		{
			admin.GET("/roles", h.ListRoles)
			admin.POST("/roles", h.CreateRole)
			admin.PUT("/roles/:email", h.UpdateRole)
			admin.DELETE("/roles/:email", h.DeleteRole)
		}

		kanban := api.Group("/kanban", authenticated)
		{
			kanban.GET("/tasks", h.ListMyTasks)
			kanban.PUT("/tasks/:id/status", h.UpdateTaskStatus)
		}

		creator := api.Group("/task-creator", authenticated)
		{
			creator.GET("/users", tracker, h.ListUsers)

			creator.GET("/projects", tracker, h.ListProjects)
			creator.GET("/projects/my", h.ListMyProjects)
			creator.POST("/projects", tracker, h.CreateProject)
			creator.PUT("/projects/:id", tracker, h.UpdateProject)
			creator.DELETE("/projects/:id", tracker, h.DeleteProject)

			creator.GET("/tasks", tracker, h.ListTasks)
			creator.GET("/tasks/my", h.ListMyTasks)
			creator.POST("/tasks", tracker, h.CreateTask)
			creator.PUT("/tasks/:id", tracker, h.UpdateTask)
			creator.DELETE("/tasks/:id", tracker, h.DeleteTask)
		}

		api.GET("/dashboard", authenticated, h.GetDashboard)
	}

	return r
}
