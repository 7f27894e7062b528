package models

import "time"

// Message is a direct message between two users. There is no conversation
// table; conversation identity is derived from the sorted pair of user ids.
type Message struct {
	ID              uint64    `gorm:"primarykey" json:"id"`
	SenderUserID    uint64    `gorm:"not null" json:"sender_user_id"`
	RecipientUserID uint64    `gorm:"not null" json:"recipient_user_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	CreatedAt       time.Time `json:"created_at"`

	// Relations
	SenderUser    User `gorm:"foreignKey:SenderUserID" json:"sender_user,omitempty"`
	RecipientUser User `gorm:"foreignKey:RecipientUserID" json:"recipient_user,omitempty"`
}
