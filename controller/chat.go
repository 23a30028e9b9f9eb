package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/FaizanInstinct/bytebuddy-chat/logger"
	"github.com/FaizanInstinct/bytebuddy-chat/logic"
	"github.com/FaizanInstinct/bytebuddy-chat/middleware"
)

// ChatController handles the chat HTTP surface
type ChatController struct {
	chatLogic  *logic.ChatLogic
	convoLogic *logic.ConversationLogic
}

func NewChatController(chatLogic *logic.ChatLogic, convoLogic *logic.ConversationLogic) *ChatController {
	return &ChatController{chatLogic: chatLogic, convoLogic: convoLogic}
}

// SubmitMessage handles POST /chat
func (c *ChatController) SubmitMessage(ctx *gin.Context) {
	type Request struct {
		Message        string  `json:"message"`
		ConversationID *string `json:"conversationId"`
		ImageURL       *string `json:"imageUrl"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := logic.SubmitInput{
		Message:  req.Message,
		ImageURL: req.ImageURL,
	}
	if req.ConversationID != nil {
		convoID, err := uuid.Parse(*req.ConversationID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
			return
		}
		in.ConversationID = &convoID
	}

	userID := middleware.UserID(ctx)
	result, err := c.chatLogic.SubmitMessage(ctx.Request.Context(), userID, in)
	if err != nil {
		logger.L.Error("chat request failed", "error", err)
		respondError(ctx, err)
		return
	}

	if result.ConversationID == nil {
		ctx.JSON(http.StatusOK, gin.H{
			"response":    result.Response,
			"intent":      result.Intent,
			"isAnonymous": true,
		})
		return
	}

	body := gin.H{
		"response":       result.Response,
		"conversationId": result.ConversationID,
		"intent":         result.Intent,
	}
	if result.Title != nil {
		body["title"] = *result.Title
	}
	ctx.JSON(http.StatusOK, body)
}

// GetConversation handles GET /chat?conversationId=
func (c *ChatController) GetConversation(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	if userID == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	rawID := ctx.Query("conversationId")
	if rawID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Conversation ID is required"})
		return
	}
	convoID, err := uuid.Parse(rawID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	convo, err := c.convoLogic.GetConversationWithMessages(userID, convoID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"conversation": convo,
		"messages":     convo.Messages,
	})
}
