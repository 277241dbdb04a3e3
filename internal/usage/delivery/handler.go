package delivery

import (
	"net/http"

	"mailpilot-backend/internal/usage/repository"

	"github.com/gin-gonic/gin"
)

// UsageHandler exposes usage statistics
type UsageHandler struct {
	usageRepo repository.UsageRepository
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageRepo repository.UsageRepository) *UsageHandler {
	return &UsageHandler{usageRepo: usageRepo}
}

// GetStats returns aggregate usage against the premium baseline
// GET /api/usage/stats
func (h *UsageHandler) GetStats(c *gin.Context) {
	stats, err := h.usageRepo.Stats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}
