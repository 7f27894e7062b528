package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/cache"
	"github.com/internos/internos-api/internal/dto"
	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
)

var (
	ErrInvalidConversationID = errors.New("invalid conversation id")
	ErrNotParticipant        = errors.New("not a participant of this conversation")
	ErrInvalidRecipient      = errors.New("invalid recipient user id")
	ErrEmptyMessage          = errors.New("message content is required")
	ErrSelfMessage           = errors.New("cannot send a message to yourself")
)

// BuildConversationID derives the canonical conversation id for two users.
// The id is symmetric: the smaller user id always comes first.
func BuildConversationID(userIDA, userIDB uint64) string {
	if userIDA > userIDB {
		userIDA, userIDB = userIDB, userIDA
	}
	return fmt.Sprintf("conv-%d-%d", userIDA, userIDB)
}

// ParseConversationID inverts BuildConversationID. Anything that is not
// exactly "conv-<id>-<id>" fails validation.
func ParseConversationID(conversationID string) (uint64, uint64, error) {
	parts := strings.Split(conversationID, "-")
	if len(parts) != 3 || !strings.EqualFold(parts[0], "conv") {
		return 0, 0, ErrInvalidConversationID
	}

	userIDA, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, 0, ErrInvalidConversationID
	}
	userIDB, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return 0, 0, ErrInvalidConversationID
	}

	return userIDA, userIDB, nil
}

// MessageService handles direct messages and the derived conversation views.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	convCache   cache.ConversationCache
}

// NewMessageService creates a new MessageService. convCache may be nil, in
// which case conversation listing has no fallback when the store fails.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, convCache cache.ConversationCache) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		convCache:   convCache,
	}
}

// SendMessage validates and persists one direct message.
func (s *MessageService) SendMessage(senderID, recipientID uint64, content string) (*dto.MessageDTO, error) {
	if recipientID == 0 {
		return nil, ErrInvalidRecipient
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}

	sender, err := s.findUser(senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findUser(recipientID); err != nil {
		return nil, err
	}

	message := &models.Message{
		SenderUserID:    senderID,
		RecipientUserID: recipientID,
		Content:         content,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.messageRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return &dto.MessageDTO{
		ID:             fmt.Sprintf("msg-%d", message.ID),
		ConversationID: BuildConversationID(senderID, recipientID),
		SenderID:       senderID,
		SenderName:     sender.FullName,
		SenderRole:     string(sender.Role),
		RecipientID:    recipientID,
		Content:        message.Content,
		CreatedAt:      message.CreatedAt,
	}, nil
}

// ListConversations groups the caller's messages into derived conversations,
// latest message per group, sorted by that message's time descending. When
// the store fails and a cached snapshot exists, the snapshot is served.
func (s *MessageService) ListConversations(ctx context.Context, userID uint64) ([]dto.ConversationDTO, error) {
	current, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListForUser(userID)
	if err != nil {
		if cached := s.loadSnapshot(ctx, userID); cached != nil {
			log.Warn().Err(err).Uint64("user_id", userID).Msg("serving conversations from cache snapshot")
			return cached, nil
		}
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	// Messages arrive newest first, so the first message seen per group is
	// the conversation's latest.
	latest := make(map[string]models.Message)
	order := make([]string, 0)
	for _, m := range messages {
		convID := BuildConversationID(m.SenderUserID, m.RecipientUserID)
		if _, seen := latest[convID]; !seen {
			latest[convID] = m
			order = append(order, convID)
		}
	}

	conversations := make([]dto.ConversationDTO, 0, len(order))
	for _, convID := range order {
		m := latest[convID]
		partner := m.RecipientUser
		if m.SenderUserID != userID {
			partner = m.SenderUser
		}

		conversations = append(conversations, dto.ConversationDTO{
			ID:               convID,
			ParticipantIDs:   []uint64{userID, partner.ID},
			ParticipantNames: []string{current.FullName, partner.FullName},
			ParticipantRoles: []string{string(current.Role), string(partner.Role)},
			LastMessage:      m.Content,
			LastMessageAt:    m.CreatedAt,
		})
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})

	s.storeSnapshot(ctx, userID, conversations)

	return conversations, nil
}

// StartConversation validates the pair and returns the derived conversation
// descriptor. Nothing is persisted until the first message is sent.
func (s *MessageService) StartConversation(callerID, participantID uint64) (*dto.ConversationDTO, error) {
	if participantID == 0 {
		return nil, ErrInvalidRecipient
	}
	if callerID == participantID {
		return nil, ErrSelfMessage
	}

	caller, err := s.findUser(callerID)
	if err != nil {
		return nil, err
	}
	partner, err := s.findUser(participantID)
	if err != nil {
		return nil, err
	}

	return &dto.ConversationDTO{
		ID:               BuildConversationID(callerID, participantID),
		ParticipantIDs:   []uint64{callerID, participantID},
		ParticipantNames: []string{caller.FullName, partner.FullName},
		ParticipantRoles: []string{string(caller.Role), string(partner.Role)},
		LastMessage:      "Conversation started",
		LastMessageAt:    time.Now().UTC(),
	}, nil
}

// ConversationMessages returns a conversation's messages oldest first. The
// caller must be one of the two derived participants.
func (s *MessageService) ConversationMessages(conversationID string, callerID uint64) ([]dto.MessageDTO, error) {
	userIDA, userIDB, err := ParseConversationID(conversationID)
	if err != nil {
		return nil, err
	}
	if callerID != userIDA && callerID != userIDB {
		return nil, ErrNotParticipant
	}

	messages, err := s.messageRepo.ListConversation(userIDA, userIDB)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}

	out := make([]dto.MessageDTO, len(messages))
	for i, m := range messages {
		out[i] = dto.MessageDTO{
			ID:             fmt.Sprintf("msg-%d", m.ID),
			ConversationID: BuildConversationID(m.SenderUserID, m.RecipientUserID),
			SenderID:       m.SenderUserID,
			SenderName:     m.SenderUser.FullName,
			SenderRole:     string(m.SenderUser.Role),
			RecipientID:    m.RecipientUserID,
			Content:        m.Content,
			CreatedAt:      m.CreatedAt,
		}
	}
	return out, nil
}

func (s *MessageService) findUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *MessageService) loadSnapshot(ctx context.Context, userID uint64) []dto.ConversationDTO {
	if s.convCache == nil {
		return nil
	}
	cached, err := s.convCache.Load(ctx, userID)
	if err != nil {
		return nil
	}
	return cached
}

func (s *MessageService) storeSnapshot(ctx context.Context, userID uint64, conversations []dto.ConversationDTO) {
	if s.convCache == nil {
		return
	}
	if err := s.convCache.Store(ctx, userID, conversations); err != nil {
		log.Warn().Err(err).Uint64("user_id", userID).Msg("failed to refresh conversation snapshot")
	}
}
