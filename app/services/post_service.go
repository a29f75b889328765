package services

import (
	"context"
	"errors"
	"fmt"

	"commentsapi/app/models"
	"commentsapi/app/repositories"
)

// PostService handles business logic for posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost stores a new post written by user
func (s *PostService) CreatePost(ctx context.Context, user models.User, text string) (*models.Post, error) {
	if text == "" {
		return nil, ErrValidation
	}

	post := &models.Post{
		User: user.ID,
		Text: text,
	}
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
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
