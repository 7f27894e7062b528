package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
)

func TestBuildConversationID(t *testing.T) {
	require.Equal(t, "conv-3-7", BuildConversationID(3, 7))
	require.Equal(t, "conv-3-7", BuildConversationID(7, 3))
	require.Equal(t, "conv-5-5", BuildConversationID(5, 5))
}

func TestParseConversationID(t *testing.T) {
	a, b, err := ParseConversationID("conv-3-7")
	require.NoError(t, err)
	require.Equal(t, uint64(3), a)
	require.Equal(t, uint64(7), b)

	for _, malformed := range []string{"", "abc", "conv-3", "conv-a-b", "chat-3-7", "conv-3-7-9"} {
		_, _, err := ParseConversationID(malformed)
		require.ErrorIs(t, err, ErrInvalidConversationID, "input %q", malformed)
	}
}

func setupMessageService(t *testing.T) (*MessageService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Message{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	messageRepo := repository.NewMessageRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewMessageService(messageRepo, userRepo, nil), db
}

func createMessageUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		FullName:     name,
		Email:        name + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestMessageService_SendMessage(t *testing.T) {
	svc, db := setupMessageService(t)
	alice := createMessageUser(t, db, "alice", models.RoleMentor)
	bob := createMessageUser(t, db, "bob", models.RoleIntern)

	message, err := svc.SendMessage(alice.ID, bob.ID, "  hello bob  ")
	require.NoError(t, err)
	require.Equal(t, "hello bob", message.Content)
	require.Equal(t, BuildConversationID(alice.ID, bob.ID), message.ConversationID)
	require.Equal(t, "msg-1", message.ID)
	require.Equal(t, alice.FullName, message.SenderName)
}

func TestMessageService_SendMessage_Validation(t *testing.T) {
	svc, db := setupMessageService(t)
	alice := createMessageUser(t, db, "alice", models.RoleMentor)
	bob := createMessageUser(t, db, "bob", models.RoleIntern)

	_, err := svc.SendMessage(alice.ID, 0, "hi")
	require.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = svc.SendMessage(alice.ID, bob.ID, "   ")
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.SendMessage(alice.ID, alice.ID, "hi")
	require.ErrorIs(t, err, ErrSelfMessage)

	_, err = svc.SendMessage(alice.ID, 999, "hi")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestMessageService_ConversationMessages_Ordering(t *testing.T) {
	svc, db := setupMessageService(t)
	alice := createMessageUser(t, db, "alice", models.RoleMentor)
	bob := createMessageUser(t, db, "bob", models.RoleIntern)

	base := time.Now().UTC().Add(-time.Hour)
	for i, m := range []struct {
		from, to uint64
		content  string
	}{
		{alice.ID, bob.ID, "first"},
		{bob.ID, alice.ID, "second"},
		{alice.ID, bob.ID, "third"},
	} {
		require.NoError(t, db.Create(&models.Message{
			SenderUserID:    m.from,
			RecipientUserID: m.to,
			Content:         m.content,
			CreatedAt:       base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	convID := BuildConversationID(alice.ID, bob.ID)
	messages, err := svc.ConversationMessages(convID, bob.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, "first", messages[0].Content)
	require.Equal(t, "third", messages[2].Content)
	require.Equal(t, alice.FullName, messages[0].SenderName)
}

func TestMessageService_ConversationMessages_NotParticipant(t *testing.T) {
	svc, db := setupMessageService(t)
	alice := createMessageUser(t, db, "alice", models.RoleMentor)
	bob := createMessageUser(t, db, "bob", models.RoleIntern)
	eve := createMessageUser(t, db, "eve", models.RoleIntern)

	convID := BuildConversationID(alice.ID, bob.ID)
	_, err := svc.ConversationMessages(convID, eve.ID)
	require.ErrorIs(t, err, ErrNotParticipant)
}

func TestMessageService_ListConversations(t *testing.T) {
	svc, db := setupMessageService(t)
	alice := createMessageUser(t, db, "alice", models.RoleMentor)
	bob := createMessageUser(t, db, "bob", models.RoleIntern)
	carol := createMessageUser(t, db, "carol", models.RoleIntern)

	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Create(&models.Message{
		SenderUserID: alice.ID, RecipientUserID: bob.ID,
		Content: "old bob message", CreatedAt: base,
	}).Error)
	require.NoError(t, db.Create(&models.Message{
		SenderUserID: bob.ID, RecipientUserID: alice.ID,
		Content: "latest bob message", CreatedAt: base.Add(10 * time.Minute),
	}).Error)
	require.NoError(t, db.Create(&models.Message{
		SenderUserID: carol.ID, RecipientUserID: alice.ID,
		Content: "carol says hi", CreatedAt: base.Add(20 * time.Minute),
	}).Error)

	conversations, err := svc.ListConversations(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Most recent conversation first, each with its latest message.
	require.Equal(t, BuildConversationID(alice.ID, carol.ID), conversations[0].ID)
	require.Equal(t, "carol says hi", conversations[0].LastMessage)
	require.Equal(t, BuildConversationID(alice.ID, bob.ID), conversations[1].ID)
	require.Equal(t, "latest bob message", conversations[1].LastMessage)
	require.Contains(t, conversations[1].ParticipantNames, "bob")
}

func TestMessageService_StartConversation(t *testing.T) {
	svc, db := setupMessageService(t)
	alice := createMessageUser(t, db, "alice", models.RoleMentor)
	bob := createMessageUser(t, db, "bob", models.RoleIntern)

	conversation, err := svc.StartConversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, BuildConversationID(alice.ID, bob.ID), conversation.ID)
	require.Equal(t, []uint64{alice.ID, bob.ID}, conversation.ParticipantIDs)

	// Nothing persisted until the first message.
	var count int64
	db.Model(&models.Message{}).Count(&count)
	require.Equal(t, int64(0), count)

	_, err = svc.StartConversation(alice.ID, alice.ID)
	require.ErrorIs(t, err, ErrSelfMessage)
}
