package model

import "time"

type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateTaskRequest is the body of POST /api/todos. Text is a pointer so a
// missing field can be told apart from a present one.
type CreateTaskRequest struct {
	Text *string `json:"text"`
}

type UpdateTaskRequest struct {
	Completed *bool `json:"completed"`
}
