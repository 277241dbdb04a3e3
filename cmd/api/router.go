package api

import (
	"net/http"

	analysisDelivery "mailpilot-backend/internal/analysis/delivery"
	settingsDelivery "mailpilot-backend/internal/settings/delivery"
	taskDelivery "mailpilot-backend/internal/task/delivery"
	usageDelivery "mailpilot-backend/internal/usage/delivery"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the engine
func SetupRoutes(
	r *gin.Engine,
	analysisHandler *analysisDelivery.AnalysisHandler,
	taskHandler *taskDelivery.TaskHandler,
	settingsHandler *settingsDelivery.SettingsHandler,
	usageHandler *usageDelivery.UsageHandler,
) {
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Analysis routes
		api.POST("/messages/:id/analyze", analysisHandler.StartAnalysis)
		api.GET("/messages/:id/analysis", analysisHandler.GetLatestAnalysis)
		api.GET("/analyses/:id", analysisHandler.GetAnalysis)

		// Task routes
		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTaskByID)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("", settingsHandler.UpdateSetting)
			settings.GET("/providers", settingsHandler.GetProviders)
			settings.PUT("/providers", settingsHandler.UpsertProvider)
			settings.GET("/profile", settingsHandler.GetProfile)
			settings.PUT("/profile", settingsHandler.SaveProfile)
		}

		// Usage routes
		api.GET("/usage/stats", usageHandler.GetStats)
	}
}
