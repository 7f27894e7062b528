package dto

import "time"

// ConversationDTO describes one derived conversation in the listing.
type ConversationDTO struct {
	ID               string    `json:"id"`
	ParticipantIDs   []uint64  `json:"participantIds"`
	ParticipantNames []string  `json:"participantNames"`
	ParticipantRoles []string  `json:"participantRoles"`
	LastMessage      string    `json:"lastMessage"`
	LastMessageAt    time.Time `json:"lastMessageAt"`
}

// MessageDTO is one message on the wire. The id carries a "msg-" prefix, the
// conversation id the derived "conv-{min}-{max}" form.
type MessageDTO struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       uint64    `json:"senderId"`
	SenderName     string    `json:"senderName"`
	SenderRole     string    `json:"senderRole"`
	RecipientID    uint64    `json:"recipientId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
