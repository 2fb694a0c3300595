package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

// runRepositoryContract exercises behaviour every backend must share. The
// repository handed in must be empty.
func runRepositoryContract(t *testing.T, r TaskRepository) {
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		tasks, err := r.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	var created model.Task
	t.Run("create", func(t *testing.T) {
		before := time.Now().Add(-time.Millisecond)

		var err error
		created, err = r.Create(ctx, model.Task{Text: "Buy milk"})
		require.NoError(t, err)

		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Buy milk", created.Text)
		assert.False(t, created.Completed)
		assert.False(t, created.CreatedAt.Before(before), "createdAt %v before %v", created.CreatedAt, before)

		tasks, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, created.ID, tasks[0].ID)
		assert.True(t, created.CreatedAt.Equal(tasks[0].CreatedAt))
	})

	t.Run("create ignores completed and id", func(t *testing.T) {
		task, err := r.Create(ctx, model.Task{ID: "client-id", Text: "Walk dog", Completed: true})
		require.NoError(t, err)
		assert.NotEqual(t, "client-id", task.ID)
		assert.False(t, task.Completed)
	})

	t.Run("list is newest first", func(t *testing.T) {
		for _, text := range []string{"one", "two", "three"} {
			_, err := r.Create(ctx, model.Task{Text: text})
			require.NoError(t, err)
			time.Sleep(2 * time.Millisecond)
		}

		tasks, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 5)
		assert.Equal(t, "three", tasks[0].Text)
		for i := 1; i < len(tasks); i++ {
			assert.False(t, tasks[i-1].CreatedAt.Before(tasks[i].CreatedAt),
				"task %d is older than task %d", i-1, i)
		}
	})

	t.Run("set completed", func(t *testing.T) {
		updated, err := r.SetCompleted(ctx, created.ID, true)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.Text, updated.Text)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

		tasks, err := r.List(ctx)
		require.NoError(t, err)
		for _, task := range tasks {
			if task.ID == created.ID {
				assert.True(t, task.Completed)
			}
		}

		updated, err = r.SetCompleted(ctx, created.ID, false)
		require.NoError(t, err)
		assert.False(t, updated.Completed)
	})

	t.Run("set completed on unknown id", func(t *testing.T) {
		_, err := r.SetCompleted(ctx, unknownID(created.ID), true)
		assert.ErrorIs(t, err, ErrorNotFound)

		_, err = r.SetCompleted(ctx, "not-an-id", true)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, r.Delete(ctx, created.ID))

		tasks, err := r.List(ctx)
		require.NoError(t, err)
		for _, task := range tasks {
			assert.NotEqual(t, created.ID, task.ID)
		}

		assert.ErrorIs(t, r.Delete(ctx, created.ID), ErrorNotFound)
		_, err = r.SetCompleted(ctx, created.ID, true)
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("delete malformed id", func(t *testing.T) {
		assert.ErrorIs(t, r.Delete(ctx, "not-an-id"), ErrorNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, r.Ping(ctx))
	})
}

// unknownID returns a well-formed id of the same shape as id that no backend
// has handed out.
func unknownID(id string) string {
	if len(id) == 24 {
		return "000000000000000000000000"
	}
	return "00000000-0000-0000-0000-000000000000"
}
