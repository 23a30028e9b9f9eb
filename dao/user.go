package dao

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/FaizanInstinct/bytebuddy-chat/models"
)

// UserDAO handles user-related database operations
type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{db: db}
}

// Upsert creates the user row for an external subject if it does not exist yet.
// Idempotent; called on every authenticated chat request.
func (d *UserDAO) Upsert(id string) (*models.User, error) {
	user := &models.User{ID: id}
	if err := d.db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error; err != nil {
		return nil, err
	}
	if err := d.db.First(user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return user, nil
}
