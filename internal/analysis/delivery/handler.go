package delivery

import (
	"net/http"

	"mailpilot-backend/internal/analysis/repository"
	"mailpilot-backend/internal/analysis/usecase"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	analysisUsecase *usecase.AnalysisUsecase
	analysisRepo    repository.AnalysisRepository
	workerPool      *usecase.AnalysisWorkerPool
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisUsecase *usecase.AnalysisUsecase, analysisRepo repository.AnalysisRepository, workerPool *usecase.AnalysisWorkerPool) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUsecase: analysisUsecase,
		analysisRepo:    analysisRepo,
		workerPool:      workerPool,
	}
}

// StartAnalysisRequest carries optional correction instructions
type StartAnalysisRequest struct {
	Instructions string `json:"instructions"`
}

// StartAnalysis creates the placeholder record and queues the run.
// POST /api/messages/:id/analyze
func (h *AnalysisHandler) StartAnalysis(c *gin.Context) {
	messageID := c.Param("id")

	var req StartAnalysisRequest
	_ = c.ShouldBindJSON(&req)

	analysis, err := h.analysisUsecase.StartAnalysis(messageID, req.Instructions)
	if err != nil {
		if err.Error() == "message not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	queued := h.workerPool.QueueJob(usecase.AnalysisJob{
		MessageID:    messageID,
		AnalysisID:   analysis.ID,
		Instructions: req.Instructions,
	})
	if !queued {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis queue is full, try again later"})
		return
	}

	c.JSON(http.StatusAccepted, analysis)
}

// GetAnalysis returns one analysis attempt.
// GET /api/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.analysisRepo.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// GetLatestAnalysis returns the newest analysis for a message.
// GET /api/messages/:id/analysis
func (h *AnalysisHandler) GetLatestAnalysis(c *gin.Context) {
	analysis, err := h.analysisRepo.FindLatestByMessageID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No analysis for this message"})
		return
	}
	c.JSON(http.StatusOK, analysis)
}
