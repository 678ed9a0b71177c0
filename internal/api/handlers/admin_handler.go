package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wearly/supportbot/internal/services"
)

type AdminHandler struct {
	training services.TrainingService
}

func NewAdminHandler(training services.TrainingService) *AdminHandler {
	return &AdminHandler{training: training}
}

// Train fits a fresh model, persists the artifact and returns the evaluation
// report. The running classifier keeps its current model; the new artifact is
// picked up on restart.
func (h *AdminHandler) Train(c *gin.Context) {
	_, report, err := h.training.Run(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accuracy":        report.Accuracy,
		"per_class":       report.PerClass,
		"train_size":      report.TrainSize,
		"test_size":       report.TestSize,
		"vocabulary_size": report.VocabularySize,
	})
}

func (h *AdminHandler) TrainingRuns(c *gin.Context) {
	runs, err := h.training.RecentRuns(c.Request.Context(), queryLimit(c, 10))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}
