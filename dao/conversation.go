package dao

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FaizanInstinct/bytebuddy-chat/models"
)

// ConversationDAO handles conversation-related database operations
type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{db: db}
}

// CreateConversation creates a new conversation. userID and title may be nil
// (anonymous conversation, untitled until the first exchange).
func (d *ConversationDAO) CreateConversation(userID *string, title *string) (*models.Conversation, error) {
	convo := &models.Conversation{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}
	if err := d.db.Create(convo).Error; err != nil {
		return nil, err
	}
	return convo, nil
}

// GetConversationByID retrieves a conversation without its messages
func (d *ConversationDAO) GetConversationByID(id uuid.UUID) (*models.Conversation, error) {
	var convo models.Conversation
	if err := d.db.First(&convo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &convo, nil
}

// GetConversationWithMessages retrieves a conversation and its messages in
// creation order (id breaks ties when timestamps collide).
func (d *ConversationDAO) GetConversationWithMessages(id uuid.UUID) (*models.Conversation, error) {
	var convo models.Conversation
	err := d.db.
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		First(&convo, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &convo, nil
}

// GetUserConversations retrieves a user's conversations newest-first, each with
// only its most recent message preloaded for history previews.
func (d *ConversationDAO) GetUserConversations(userID string) ([]models.Conversation, error) {
	var convos []models.Conversation
	err := d.db.
		Preload("Messages", "id IN (?)",
			d.db.Model(&models.Message{}).Select("MAX(id)").Group("conversation_id")).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&convos).Error
	if err != nil {
		return nil, err
	}
	return convos, nil
}

// GetUserConversationsWithMessages retrieves a user's conversations with full
// message bodies, for export.
func (d *ConversationDAO) GetUserConversationsWithMessages(userID string) ([]models.Conversation, error) {
	var convos []models.Conversation
	err := d.db.
		Preload("Messages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC, id ASC")
		}).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&convos).Error
	if err != nil {
		return nil, err
	}
	return convos, nil
}

// UpdateTitle sets the conversation title. The title is written once,
// opportunistically, after the first exchange.
func (d *ConversationDAO) UpdateTitle(id uuid.UUID, title string) error {
	return d.db.Model(&models.Conversation{}).
		Where("id = ?", id).
		Update("title", title).Error
}

// DeleteConversation deletes a conversation and all of its messages. Messages
// are removed explicitly in the same transaction so the cascade holds on
// stores where foreign-key enforcement is off (the sqlite test driver).
func (d *ConversationDAO) DeleteConversation(id uuid.UUID) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Conversation{}).Error
	})
}

// DeleteUserConversations deletes all of a user's conversations and their messages
func (d *ConversationDAO) DeleteUserConversations(userID string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Conversation{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("conversation_id IN (?)", sub).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Conversation{}).Error
	})
}

// DeleteExpiredConversations deletes every conversation whose last update is
// older than the cutoff, with its messages. Idempotent; safe to run
// concurrently with live requests and with itself.
func (d *ConversationDAO) DeleteExpiredConversations(before time.Time) (int64, error) {
	var deleted int64
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Conversation{}).Select("id").Where("updated_at < ?", before)
		if err := tx.Where("conversation_id IN (?)", sub).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		res := tx.Where("updated_at < ?", before).Delete(&models.Conversation{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
