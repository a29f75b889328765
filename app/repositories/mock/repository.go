package mock

import (
	"context"
	"errors"
	"sync"

	"commentsapi/app/models"
	"commentsapi/app/repositories"
)

type PostRepository struct {
	posts map[string]models.Post
	mutex sync.RWMutex
	// Err, when set, is returned by every call.
	Err error
	// PrependErr, when set, is returned by PrependComment only.
	PrependErr error
}

type CommentRepository struct {
	comments map[string]models.Comment
	mutex    sync.RWMutex
	Err      error
	Writes   int
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]models.Post)}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]models.Comment)}
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	post.BeforeCreate()
	m.posts[post.ID] = clonePost(*post)
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	post = clonePost(post)
	return &post, nil
}

func (m *PostRepository) PrependComment(ctx context.Context, postID, commentID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if m.PrependErr != nil {
		return m.PrependErr
	}

	post, exists := m.posts[postID]
	if !exists {
		return repositories.ErrNotFound
	}
	if err := post.PrependComment(commentID); err != nil {
		return err
	}
	m.posts[postID] = post
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	comment.BeforeCreate()
	if _, exists := m.comments[comment.ID]; exists {
		return errors.New("duplicate comment id")
	}
	m.comments[comment.ID] = *comment
	m.Writes++
	return nil
}

func (m *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if m.Err != nil {
		return nil, m.Err
	}

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return &comment, nil
}

func (m *CommentRepository) UpdateText(ctx context.Context, id, text string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.Err != nil {
		return m.Err
	}

	comment, exists := m.comments[id]
	if !exists {
		return repositories.ErrNotFound
	}
	comment.Text = text
	m.comments[id] = comment
	m.Writes++
	return nil
}

// Len returns the number of stored comments.
func (m *CommentRepository) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.comments)
}

func clonePost(p models.Post) models.Post {
	p.Comments = append([]string{}, p.Comments...)
	return p
}
