package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FaizanInstinct/bytebuddy-chat/logic"
)

// respondError maps the logic error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and is not echoed to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
	case errors.Is(err, logic.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	case errors.Is(err, logic.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized access to conversation"})
	case errors.Is(err, logic.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
