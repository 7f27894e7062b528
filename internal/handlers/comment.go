package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/internos/internos-api/internal/dto"
	apierrors "github.com/internos/internos-api/internal/errors"
	"github.com/internos/internos-api/internal/middleware"
	"github.com/internos/internos-api/internal/services"
)

// CommentHandler serves per-task comment threads.
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// AddComment appends a comment authored by the caller. Task id and content
// arrive as query parameters.
func (h *CommentHandler) AddComment(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, err := strconv.ParseUint(c.Query("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid taskId")
		return
	}

	if err := h.commentService.AddComment(taskID, userID, c.Query("content")); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTaskID),
			errors.Is(err, services.ErrEmptyComment):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to add comment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment added!"})
}

// ListByTask returns a task's comments oldest first.
func (h *CommentHandler) ListByTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	comments, err := h.commentService.ListByTask(taskID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}
