package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation represents a chat conversation. UserID is nil for anonymous
// conversations; Title stays nil until generated after the first exchange.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    *string   `gorm:"index" json:"user_id,omitempty"`
	Title     *string   `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `gorm:"constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}
