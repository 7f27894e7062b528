package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/middleware"
	"github.com/internos/internos-api/internal/services"
)

// MessageHandler serves direct messaging and the derived conversation views.
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Send persists one direct message from the caller.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type SendMessageRequest struct {
		RecipientID uint64 `json:"recipientUserId" binding:"required"`
		Content     string `json:"content" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.messageService.SendMessage(userID, req.RecipientID, req.Content)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// ListConversations returns the caller's conversations, most recent first.
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	conversations, err := h.messageService.ListConversations(c.Request.Context(), userID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversations)
}

// StartConversation returns the derived conversation descriptor for the
// caller and another user.
func (h *MessageHandler) StartConversation(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type StartConversationRequest struct {
		ParticipantID uint64 `json:"participantUserId" binding:"required"`
	}

	var req StartConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	conversation, err := h.messageService.StartConversation(userID, req.ParticipantID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversation)
}

// ConversationMessages returns a conversation's messages oldest first.
func (h *MessageHandler) ConversationMessages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	messages, err := h.messageService.ConversationMessages(c.Param("conversationId"), userID)
	if err != nil {
		respondMessageError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func respondMessageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidConversationID),
		errors.Is(err, services.ErrInvalidRecipient),
		errors.Is(err, services.ErrEmptyMessage),
		errors.Is(err, services.ErrSelfMessage):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotParticipant):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		apierrors.InternalError(c, "")
	}
}
