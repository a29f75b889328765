package repositories

import (
	"context"

	"commentsapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()
	return update(ctx, r.db, func(txn *badger.Txn) error {
		return setEntity(txn, commentKey(comment.ID), comment)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := view(ctx, r.db, func(txn *badger.Txn) error {
		return getEntity(txn, commentKey(id), &comment)
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateText replaces the text of an existing comment
func (r *BadgerCommentRepository) UpdateText(ctx context.Context, id, text string) error {
	return update(ctx, r.db, func(txn *badger.Txn) error {
		var comment models.Comment
		if err := getEntity(txn, commentKey(id), &comment); err != nil {
			return err
		}
		comment.Text = text
		return setEntity(txn, commentKey(id), &comment)
	})
}
