package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FaizanInstinct/bytebuddy-chat/logic"
	"github.com/FaizanInstinct/bytebuddy-chat/middleware"
)

// ConversationController handles conversation management HTTP requests
type ConversationController struct {
	convoLogic *logic.ConversationLogic
}

func NewConversationController(convoLogic *logic.ConversationLogic) *ConversationController {
	return &ConversationController{convoLogic: convoLogic}
}

// ListConversations handles GET /conversations
func (c *ConversationController) ListConversations(ctx *gin.Context) {
	convos, err := c.convoLogic.ListConversations(middleware.UserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"conversations": convos})
}

// CreateConversation handles POST /conversations
func (c *ConversationController) CreateConversation(ctx *gin.Context) {
	type Request struct {
		Title *string `json:"title"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	convo, err := c.convoLogic.CreateConversation(middleware.UserID(ctx), req.Title)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"conversation": convo})
}

// DeleteConversation handles DELETE /conversations?id=
func (c *ConversationController) DeleteConversation(ctx *gin.Context) {
	rawID := ctx.Query("id")
	if rawID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Conversation ID is required"})
		return
	}
	convoID, err := uuid.Parse(rawID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	if err := c.convoLogic.DeleteConversation(middleware.UserID(ctx), convoID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearConversations handles DELETE /conversations/clear. Routed behind
// RequireIdentity; anonymous callers never reach it.
func (c *ConversationController) ClearConversations(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	if userID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := c.convoLogic.ClearConversations(*userID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ExportConversations handles GET /conversations/export
func (c *ConversationController) ExportConversations(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	if userID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	export, err := c.convoLogic.ExportConversations(*userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, export)
}
