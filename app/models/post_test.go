package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name: "valid post",
			post: &Post{
				ID:       NewID(),
				User:     "user-1",
				Text:     "Valid text",
				Comments: []string{NewID()},
				Date:     time.Now(),
			},
			wantErr: false,
		},
		{
			name: "missing text",
			post: &Post{
				ID:   NewID(),
				User: "user-1",
				Date: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "malformed comment reference",
			post: &Post{
				ID:       NewID(),
				User:     "user-1",
				Text:     "Valid text",
				Comments: []string{"bad"},
				Date:     time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero date",
			post: &Post{
				ID:   NewID(),
				User: "user-1",
				Text: "Valid text",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := &Post{User: "user-1", Text: "Test Post"}

	post.BeforeCreate()
	assert.False(t, post.Date.IsZero())
	assert.True(t, IsID(post.ID))
	assert.NotNil(t, post.Comments)
	assert.Empty(t, post.Comments)
}

func TestPostCommentManagement(t *testing.T) {
	post := &Post{ID: NewID(), Text: "Test Post"}
	first, second := NewID(), NewID()

	t.Run("prepend keeps newest first", func(t *testing.T) {
		assert.NoError(t, post.PrependComment(first))
		assert.NoError(t, post.PrependComment(second))
		assert.Equal(t, []string{second, first}, post.Comments)
		assert.True(t, post.HasComment(first))
	})

	t.Run("prepend empty id", func(t *testing.T) {
		assert.Error(t, post.PrependComment(""))
		assert.Len(t, post.Comments, 2)
	})

	t.Run("unknown comment", func(t *testing.T) {
		assert.False(t, post.HasComment(NewID()))
	})
}
