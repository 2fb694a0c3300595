package repo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

func TestMemoryRepo_Contract(t *testing.T) {
	runRepositoryContract(t, NewMemoryRepo())
}

func TestMemoryRepo_Bootstrap(t *testing.T) {
	r := NewMemoryRepo()

	created, err := r.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = r.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.False(t, created, "second bootstrap must report existing storage")
}

func TestMemoryRepo_SameTimestampKeepsInsertionOrder(t *testing.T) {
	r := NewMemoryRepo()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, model.Task{Text: fmt.Sprintf("Task %d", i)})
		require.NoError(t, err)
	}

	tasks, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Task 2", tasks[0].Text)
	assert.Equal(t, "Task 0", tasks[2].Text)
}

func TestMemoryRepo_PingHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewMemoryRepo().Ping(ctx), context.Canceled)
}

func TestMemoryRepo_ConcurrentCreateAndList(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	const creators = 5
	const readers = 5

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_, err := r.Create(ctx, model.Task{Text: fmt.Sprintf("Task %d-%d", idx, j)})
				assert.NoError(t, err)
			}
		}(i)
	}

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := r.List(ctx)
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()

	tasks, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, creators*5)
}
