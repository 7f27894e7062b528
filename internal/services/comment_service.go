package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/internos/internos-api/internal/models"
	"github.com/internos/internos-api/internal/repository"
)

var (
	ErrInvalidTaskID = errors.New("invalid taskId")
	ErrEmptyComment  = errors.New("comment content is required")
)

// CommentService handles the per-task comment thread. Any authenticated user
// may comment on any task; there is no membership check by contract.
type CommentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// AddComment appends one comment authored by the caller.
func (s *CommentService) AddComment(taskID uint64, authorID uint64, content string) error {
	if taskID == 0 {
		return ErrInvalidTaskID
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyComment
	}

	comment := &models.Comment{
		TaskID:    taskID,
		UserID:    authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByTask returns a task's comments oldest first with authors loaded.
func (s *CommentService) ListByTask(taskID uint64) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByTask(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
