package repo

import (
	"context"

	"github.com/BuzzLyutic/todo-app/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, t model.Task) (model.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (model.Task, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Store is a TaskRepository that owns its connection.
type Store interface {
	TaskRepository

	// Bootstrap makes sure the todos table or collection exists. created
	// reports whether this call had to create it.
	Bootstrap(ctx context.Context) (created bool, err error)
	Close()
}
