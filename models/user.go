package models

import "time"

// User mirrors an identity issued by the external auth provider. The ID is the
// provider's opaque subject; no profile data is stored locally.
type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
