package repositories

import (
	"context"
	"fmt"

	"commentsapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post
func (r *BadgerPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	return update(ctx, r.db, func(txn *badger.Txn) error {
		return setEntity(txn, postKey(post.ID), post)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return getEntity(txn, postKey(id), &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// PrependComment reads and rewrites the post inside one transaction, so
// concurrent prepends to the same post conflict and retry instead of
// overwriting each other.
func (r *BadgerPostRepository) PrependComment(ctx context.Context, postID, commentID string) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		var post models.Post
		if err := getEntity(txn, postKey(postID), &post); err != nil {
			return err
		}
		if err := post.PrependComment(commentID); err != nil {
			return fmt.Errorf("prepend comment: %w", err)
		}
		return setEntity(txn, postKey(postID), &post)
	})
}
