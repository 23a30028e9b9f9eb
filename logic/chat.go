package logic

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FaizanInstinct/bytebuddy-chat/dao"
	"github.com/FaizanInstinct/bytebuddy-chat/llm"
	"github.com/FaizanInstinct/bytebuddy-chat/logger"
	"github.com/FaizanInstinct/bytebuddy-chat/models"
)

// ChatLogic orchestrates the submit-message flow: resolve the conversation,
// persist the user's turn, call the generator, persist the reply, and
// opportunistically title new conversations.
type ChatLogic struct {
	userDAO    *dao.UserDAO
	convoDAO   *dao.ConversationDAO
	messageDAO *dao.MessageDAO
	generator  llm.Generator
}

func NewChatLogic(
	userDAO *dao.UserDAO,
	convoDAO *dao.ConversationDAO,
	messageDAO *dao.MessageDAO,
	generator llm.Generator,
) *ChatLogic {
	return &ChatLogic{
		userDAO:    userDAO,
		convoDAO:   convoDAO,
		messageDAO: messageDAO,
		generator:  generator,
	}
}

// SubmitInput is one inbound chat turn. Message may be empty when ImageURL is
// set; ConversationID is nil on the first turn of a new chat.
type SubmitInput struct {
	Message        string
	ConversationID *uuid.UUID
	ImageURL       *string
}

// SubmitResult carries the reply plus the identifiers the client needs to
// continue the conversation. ConversationID and Title are nil for anonymous
// turns and untitled conversations respectively.
type SubmitResult struct {
	Response       string
	ConversationID *uuid.UUID
	Intent         string
	Title          *string
}

// SubmitMessage handles one chat turn. Authenticated turns are persisted and
// replayed with full history; anonymous turns are answered from the current
// message alone and leave no rows behind. Side effects are strictly additive:
// at most one new conversation, two new messages and one title update.
func (l *ChatLogic) SubmitMessage(ctx context.Context, userID *string, in SubmitInput) (*SubmitResult, error) {
	if in.Message == "" && in.ImageURL == nil {
		return nil, ErrEmptyMessage
	}

	var convo *models.Conversation
	var history []llm.ContextMessage

	persist := userID != nil
	if persist {
		if _, err := l.userDAO.Upsert(*userID); err != nil {
			return nil, err
		}
	}

	// Resolve the target conversation and verify ownership. A conversation
	// with a non-null owner is reachable only by that owner.
	if in.ConversationID != nil {
		var err error
		convo, err = l.convoDAO.GetConversationByID(*in.ConversationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !canAccess(convo, userID) {
			return nil, ErrForbidden
		}
	} else if persist {
		var err error
		convo, err = l.convoDAO.CreateConversation(userID, nil)
		if err != nil {
			return nil, err
		}
	}

	if persist {
		if _, err := l.messageDAO.CreateMessage(convo.ID, models.RoleUser, in.Message, in.ImageURL); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		stored, err := l.messageDAO.GetMessagesByConversationID(convo.ID)
		if err != nil {
			return nil, err
		}
		history = make([]llm.ContextMessage, 0, len(stored))
		for _, msg := range stored {
			history = append(history, llm.ContextMessage{
				Role:     msg.Role,
				Content:  msg.Content,
				ImageURL: msg.ImageURL,
			})
		}
	} else {
		history = []llm.ContextMessage{{
			Role:     models.RoleUser,
			Content:  in.Message,
			ImageURL: in.ImageURL,
		}}
	}

	// Intent analysis is independent of reply generation; run them in parallel.
	intentSeed := in.Message
	if intentSeed == "" {
		intentSeed = "analyze image"
	}
	intentCh := make(chan string, 1)
	go func() {
		intentCh <- l.generator.ClassifyIntent(ctx, intentSeed)
	}()

	reply, err := l.generator.GenerateReply(ctx, history)
	if err != nil {
		logger.L.Error("reply generation failed", "error", err)
		return nil, err
	}

	result := &SubmitResult{
		Response: reply,
		Intent:   <-intentCh,
	}

	if persist {
		if _, err := l.messageDAO.CreateMessage(convo.ID, models.RoleAssistant, reply, nil); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		result.ConversationID = &convo.ID

		// Title new conversations once, after the first exchange. Best-effort:
		// the generator falls back to a fixed title rather than erroring.
		if convo.Title == nil && len(history) <= 2 {
			seed := in.Message
			if seed == "" {
				seed = "Image analysis request"
			}
			title := l.generator.GenerateTitle(ctx, seed)
			if err := l.convoDAO.UpdateTitle(convo.ID, title); err != nil {
				logger.L.Error("failed to persist conversation title", "error", err, "conversation_id", convo.ID)
			} else {
				result.Title = &title
			}
		} else {
			result.Title = convo.Title
		}
	}

	return result, nil
}

// canAccess reports whether the caller may read or mutate the conversation.
// Ownerless conversations are open to all callers.
func canAccess(convo *models.Conversation, userID *string) bool {
	if convo.UserID == nil {
		return true
	}
	return userID != nil && *convo.UserID == *userID
}
