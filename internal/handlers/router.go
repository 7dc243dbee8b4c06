package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/victor-romero-martinez/api-agendapp/internal/middleware"
	"github.com/victor-romero-martinez/api-agendapp/internal/services"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Users      *services.UserService
	Dashboards *services.DashboardService
	Tasks      *services.TaskService
	Teams      *services.TeamService
	Tokens     middleware.TokenVerifier
}

// RegisterRoutes mounts the health check and the /api/<version> routes on r.
func RegisterRoutes(r *gin.Engine, svc Services, apiVersion string) {
	authHandler := NewAuthHandler(svc.Users)
	userHandler := NewUserHandler(svc.Users)
	dashboardHandler := NewDashboardHandler(svc.Dashboards)
	taskHandler := NewTaskHandler(svc.Tasks)
	teamHandler := NewTeamHandler(svc.Teams)

	requireAuth := middleware.RequireAuth(svc.Tokens)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Agendapp API is running",
		})
	})

	api := r.Group("/api/" + apiVersion)
	{
		// Auth routes (public)
		api.POST("/register", authHandler.Register)
		api.POST("/signin", authHandler.Signin)
		api.POST("/signing", authHandler.Signin) // path used by existing clients
		api.GET("/signout", authHandler.Signout)
		api.GET("/verify", authHandler.Verify)

		api.GET("/user", userHandler.List)
		api.POST("/user", userHandler.FindByEmail)
		api.PATCH("/user", requireAuth, userHandler.UpdateProfile)
		api.DELETE("/user", requireAuth, userHandler.Deactivate)

		api.GET("/task", taskHandler.ListTasks)
		api.GET("/task/:id", middleware.LoadTask(svc.Tasks), taskHandler.GetTask)
		api.POST("/task", requireAuth, taskHandler.CreateTask)
		api.PATCH("/task", requireAuth, taskHandler.UpdateTask)
		api.DELETE("/task", requireAuth, taskHandler.DeleteTask)
		api.POST("/task/suggest", requireAuth, taskHandler.SuggestTasks)

		// Dashboard routes (protected)
		dashboards := api.Group("/dashboard", requireAuth)
		{
			dashboards.GET("", dashboardHandler.List)
			dashboards.PUT("", dashboardHandler.Create)
			dashboards.PATCH("", dashboardHandler.Update)
			dashboards.DELETE("", dashboardHandler.Delete)
		}

		// Team routes (protected)
		teams := api.Group("/team", requireAuth)
		{
			teams.GET("", teamHandler.List)
			teams.POST("", teamHandler.Create)
			teams.PATCH("", teamHandler.Update)
			teams.DELETE("", teamHandler.Delete)
		}
	}
}
