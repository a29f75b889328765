package services

import (
	"context"
	"errors"
	"fmt"

	"commentsapi/app/metrics"
	"commentsapi/app/models"
	"commentsapi/app/repositories"

	"github.com/sirupsen/logrus"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	log         logrus.FieldLogger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, log logrus.FieldLogger) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		log:         log,
	}
}

// CreateComment stores a comment written by user on postID and puts it at
// the front of the post's comment list.
//
// The comment insert and the post update are separate writes. If the second
// one fails the comment stays stored but unreferenced.
func (s *CommentService) CreateComment(ctx context.Context, user models.User, text, postID string) (*models.Comment, error) {
	if text == "" || postID == "" {
		return nil, ErrValidation
	}

	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text: text,
		User: user.ID,
	}
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	metrics.CommentWrites.WithLabelValues("create").Inc()

	if err := s.postRepo.PrependComment(ctx, post.ID, comment.ID); err != nil {
		metrics.OrphanedComments.Inc()
		s.log.WithFields(logrus.Fields{
			"comment_id": comment.ID,
			"post_id":    post.ID,
		}).WithError(err).Warn("comment stored but not linked to post")
		return nil, fmt.Errorf("link comment to post: %w", err)
	}

	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	return s.findComment(ctx, id)
}

// UpdateComment replaces the text of a comment when user is its author.
func (s *CommentService) UpdateComment(ctx context.Context, user models.User, id, text string) (*models.Comment, error) {
	comment, err := s.findComment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !comment.IsAuthor(user) {
		return nil, ErrUnauthorized
	}

	if err := s.commentRepo.UpdateText(ctx, comment.ID, text); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	metrics.CommentWrites.WithLabelValues("update").Inc()

	comment.Text = text
	return comment, nil
}

func (s *CommentService) findComment(ctx context.Context, id string) (*models.Comment, error) {
	if !models.IsID(id) {
		return nil, ErrCommentNotFound
	}
	comment, err := s.commentRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) findPost(ctx context.Context, id string) (*models.Post, error) {
	if !models.IsID(id) {
		return nil, ErrPostNotFound
	}
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}
