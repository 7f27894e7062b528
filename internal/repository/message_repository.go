package repository

import (
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create persists one message
func (r *GormMessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// ListForUser retrieves every message touching the user, newest first
func (r *GormMessageRepository) ListForUser(userID uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("SenderUser").
		Preload("RecipientUser").
		Where("sender_user_id = ? OR recipient_user_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListConversation retrieves all messages between two users, oldest first
func (r *GormMessageRepository) ListConversation(userIDA, userIDB uint64) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("SenderUser").
		Preload("RecipientUser").
		Where("(sender_user_id = ? AND recipient_user_id = ?) OR (sender_user_id = ? AND recipient_user_id = ?)",
			userIDA, userIDB, userIDB, userIDA).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
