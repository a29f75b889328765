package repositories

import (
	"context"
	"sync"
	"testing"

	"commentsapi/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBadgerPostRepository(setupTestDB(t))

	t.Run("create and get post", func(t *testing.T) {
		post := &models.Post{User: "user-1", Text: "Test Post"}

		require.NoError(t, repo.Create(ctx, post))
		assert.True(t, models.IsID(post.ID))

		retrieved, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post.Text, retrieved.Text)
		assert.Equal(t, post.User, retrieved.User)
		assert.Empty(t, retrieved.Comments)
	})

	t.Run("get non-existent post", func(t *testing.T) {
		_, err := repo.GetByID(ctx, models.NewID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("prepend comments newest first", func(t *testing.T) {
		post := &models.Post{User: "user-1", Text: "Ordered"}
		require.NoError(t, repo.Create(ctx, post))

		first, second := models.NewID(), models.NewID()
		require.NoError(t, repo.PrependComment(ctx, post.ID, first))
		require.NoError(t, repo.PrependComment(ctx, post.ID, second))

		retrieved, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{second, first}, retrieved.Comments)
	})

	t.Run("prepend to non-existent post", func(t *testing.T) {
		err := repo.PrependComment(ctx, models.NewID(), models.NewID())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("concurrent prepends keep every id", func(t *testing.T) {
		post := &models.Post{User: "user-1", Text: "Busy"}
		require.NoError(t, repo.Create(ctx, post))

		const writers = 150
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.PrependComment(ctx, post.ID, models.NewID())
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			assert.NoError(t, err)
		}

		retrieved, err := repo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Len(t, retrieved.Comments, writers)

		seen := make(map[string]bool, writers)
		for _, id := range retrieved.Comments {
			seen[id] = true
		}
		assert.Len(t, seen, writers)
	})
}
