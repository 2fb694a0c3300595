package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

var _ Store = (*MemoryRepo)(nil)

type memoryEntry struct {
	task model.Task
	seq  uint64
}

// MemoryRepo keeps tasks in a map guarded by a mutex. Nothing survives a
// restart; it backs memory:// URLs and unit tests.
type MemoryRepo struct {
	mu           sync.RWMutex
	tasks        map[string]memoryEntry
	seq          uint64
	bootstrapped bool
	now          func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		tasks: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (r *MemoryRepo) Bootstrap(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := !r.bootstrapped
	r.bootstrapped = true
	return created, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.tasks))
	for _, e := range r.tasks {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	// newest first; insertion order breaks timestamp ties
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]model.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.task
	}
	return tasks, nil
}

func (r *MemoryRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	created := model.Task{
		ID:        uuid.NewString(),
		Text:      t.Text,
		Completed: false,
		CreatedAt: r.now().UTC(),
	}
	r.tasks[created.ID] = memoryEntry{task: created, seq: r.seq}
	return created, nil
}

func (r *MemoryRepo) SetCompleted(ctx context.Context, id string, completed bool) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	e.task.Completed = completed
	r.tasks[id] = e
	return e.task, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrorNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepo) Close() {}
