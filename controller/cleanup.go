package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FaizanInstinct/bytebuddy-chat/logger"
	"github.com/FaizanInstinct/bytebuddy-chat/logic"
)

// CleanupController triggers the retention sweep over HTTP
type CleanupController struct {
	cleanupLogic *logic.CleanupLogic
}

func NewCleanupController(cleanupLogic *logic.CleanupLogic) *CleanupController {
	return &CleanupController{cleanupLogic: cleanupLogic}
}

// Cleanup handles GET /cleanup
func (c *CleanupController) Cleanup(ctx *gin.Context) {
	deleted, err := c.cleanupLogic.SweepExpired()
	if err != nil {
		logger.L.Error("retention sweep failed", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete old conversations"})
		return
	}

	logger.L.Info("retention sweep completed", "count", deleted)
	ctx.JSON(http.StatusOK, gin.H{"message": "Old conversations deleted successfully"})
}
