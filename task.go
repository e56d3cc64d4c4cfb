package greeenboii

import (
	"context"
	"strings"
	"time"
)

// Task represents an entry in the local to-do list.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the task contains invalid fields.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return Errorf(EINVALID, "task title required")
	}
	return nil
}

// TaskService represents a service for managing tasks.
type TaskService interface {
	// CreateTask creates a new task.
	CreateTask(ctx context.Context, task *Task) error

	// FindTaskByID retrieves a task by ID.
	// Returns ENOTFOUND if task does not exist.
	FindTaskByID(ctx context.Context, id string) (*Task, error)

	// FindTasks retrieves tasks matching the filter, newest first.
	FindTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)

	// UpdateTask updates an existing task.
	// Returns ENOTFOUND if task does not exist.
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error)

	// DeleteTask permanently removes a task.
	// Returns ENOTFOUND if task does not exist.
	DeleteTask(ctx context.Context, id string) error
}

// TaskFilter represents a filter for FindTasks.
type TaskFilter struct {
	ID   *string `json:"id"`
	Done *bool   `json:"done"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TaskUpdate represents fields that can be updated on a task.
type TaskUpdate struct {
	Title *string `json:"title"`
	Done  *bool   `json:"done"`
}
