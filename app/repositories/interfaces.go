package repositories

import (
	"context"
	"errors"

	"commentsapi/app/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// PrependComment atomically puts commentID at the front of the post's
	// comment list.
	PrependComment(ctx context.Context, postID, commentID string) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	UpdateText(ctx context.Context, id, text string) error
}
