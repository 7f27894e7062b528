package dto

import (
	"time"

	"github.com/internos/internos-api/internal/models"
)

// CommentDTO is one comment with its author's name denormalized.
type CommentDTO struct {
	ID         uint64    `json:"id"`
	TaskID     uint64    `json:"taskId"`
	UserID     uint64    `json:"userId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCommentDTO converts a comment with its author preloaded.
func ToCommentDTO(comment models.Comment) CommentDTO {
	out := CommentDTO{
		ID:         comment.ID,
		TaskID:     comment.TaskID,
		UserID:     comment.UserID,
		AuthorName: "Unknown",
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}

	if comment.User.ID != 0 {
		out.AuthorName = comment.User.FullName
	}

	return out
}

// ToCommentDTOs converts a slice of comments.
func ToCommentDTOs(comments []models.Comment) []CommentDTO {
	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = ToCommentDTO(c)
	}
	return out
}
