package logic

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FaizanInstinct/bytebuddy-chat/dao"
	"github.com/FaizanInstinct/bytebuddy-chat/models"
)

// ConversationLogic handles conversation-related business logic
type ConversationLogic struct {
	convoDAO *dao.ConversationDAO
}

func NewConversationLogic(convoDAO *dao.ConversationDAO) *ConversationLogic {
	return &ConversationLogic{convoDAO: convoDAO}
}

// CreateConversation creates a conversation for the caller; both the owner and
// the title may be absent.
func (l *ConversationLogic) CreateConversation(userID *string, title *string) (*models.Conversation, error) {
	return l.convoDAO.CreateConversation(userID, title)
}

// ListConversations returns the caller's conversations newest-first, each with
// its most recent message. Anonymous callers own nothing and get an empty list.
func (l *ConversationLogic) ListConversations(userID *string) ([]models.Conversation, error) {
	if userID == nil {
		return []models.Conversation{}, nil
	}
	return l.convoDAO.GetUserConversations(*userID)
}

// GetConversationWithMessages loads a conversation and its messages in
// creation order, enforcing ownership.
func (l *ConversationLogic) GetConversationWithMessages(userID *string, id uuid.UUID) (*models.Conversation, error) {
	convo, err := l.convoDAO.GetConversationWithMessages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canAccess(convo, userID) {
		return nil, ErrForbidden
	}
	return convo, nil
}

// DeleteConversation deletes one conversation and its messages, enforcing
// ownership.
func (l *ConversationLogic) DeleteConversation(userID *string, id uuid.UUID) error {
	convo, err := l.convoDAO.GetConversationByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !canAccess(convo, userID) {
		return ErrForbidden
	}
	return l.convoDAO.DeleteConversation(id)
}

// ClearConversations deletes all of a user's conversations
func (l *ConversationLogic) ClearConversations(userID string) error {
	return l.convoDAO.DeleteUserConversations(userID)
}

// ExportedConversation is the flattened export shape: every conversation with
// its full message bodies.
type ExportedConversation struct {
	ID        uuid.UUID         `json:"id"`
	Title     *string           `json:"title"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Messages  []ExportedMessage `json:"messages"`
}

type ExportedMessage struct {
	ID        uint64    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportConversations dumps all of a user's conversations with full message
// bodies, newest conversation first, messages in creation order.
func (l *ConversationLogic) ExportConversations(userID string) ([]ExportedConversation, error) {
	convos, err := l.convoDAO.GetUserConversationsWithMessages(userID)
	if err != nil {
		return nil, err
	}
	export := make([]ExportedConversation, 0, len(convos))
	for _, convo := range convos {
		messages := make([]ExportedMessage, 0, len(convo.Messages))
		for _, msg := range convo.Messages {
			messages = append(messages, ExportedMessage{
				ID:        msg.ID,
				Role:      msg.Role,
				Content:   msg.Content,
				CreatedAt: msg.CreatedAt,
			})
		}
		export = append(export, ExportedConversation{
			ID:        convo.ID,
			Title:     convo.Title,
			CreatedAt: convo.CreatedAt,
			UpdatedAt: convo.UpdatedAt,
			Messages:  messages,
		})
	}
	return export, nil
}
