package service

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/todo-app/internal/model"
	"github.com/BuzzLyutic/todo-app/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")

	ErrTextRequired      = &ValidationError{Message: "Text is required"}
	ErrCompletedRequired = &ValidationError{Message: "Completed status is required"}
)

// ExampleTaskText is the text of the task SeedExample inserts.
const ExampleTaskText = "Example task"

// ValidationError carries the message returned to the client. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

// Create stores a new task. A nil text means the field was absent from the
// request.
func (s *TaskService) Create(ctx context.Context, text *string) (model.Task, error) {
	if text == nil || *text == "" {
		return model.Task{}, ErrTextRequired
	}
	return s.repo.Create(ctx, model.Task{Text: *text})
}

// SetCompleted validates before looking the task up, so a request without a
// completed flag is a validation error even for an unknown id.
func (s *TaskService) SetCompleted(ctx context.Context, id string, completed *bool) (model.Task, error) {
	if completed == nil {
		return model.Task{}, ErrCompletedRequired
	}
	return s.repo.SetCompleted(ctx, id, *completed)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// SeedExample inserts one example task.
func (s *TaskService) SeedExample(ctx context.Context) (model.Task, error) {
	return s.repo.Create(ctx, model.Task{Text: ExampleTaskText})
}
