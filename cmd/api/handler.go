package api

import (
	analysisDelivery "mailpilot-backend/internal/analysis/delivery"
	settingsDelivery "mailpilot-backend/internal/settings/delivery"
	taskDelivery "mailpilot-backend/internal/task/delivery"
	usageDelivery "mailpilot-backend/internal/usage/delivery"

	"github.com/gin-gonic/gin"
)

// Handler wraps the Gin engine with all routes registered
type Handler struct {
	engine *gin.Engine
}

// NewHandler creates the HTTP handler with all routes wired
func NewHandler(
	analysisHandler *analysisDelivery.AnalysisHandler,
	taskHandler *taskDelivery.TaskHandler,
	settingsHandler *settingsDelivery.SettingsHandler,
	usageHandler *usageDelivery.UsageHandler,
) *Handler {
	engine := gin.Default()
	SetupRoutes(engine, analysisHandler, taskHandler, settingsHandler, usageHandler)
	return &Handler{engine: engine}
}

// Start runs the HTTP server on the given address
func (h *Handler) Start(addr string) error {
	return h.engine.Run(addr)
}
