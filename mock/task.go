package mock

import (
	"context"

	"github.com/greeenboii/greeenboii"
)

var _ greeenboii.TaskService = (*TaskService)(nil)

// TaskService is a mock implementation of greeenboii.TaskService.
type TaskService struct {
	CreateTaskFn   func(ctx context.Context, task *greeenboii.Task) error
	FindTaskByIDFn func(ctx context.Context, id string) (*greeenboii.Task, error)
	FindTasksFn    func(ctx context.Context, filter greeenboii.TaskFilter) ([]*greeenboii.Task, error)
	UpdateTaskFn   func(ctx context.Context, id string, upd greeenboii.TaskUpdate) (*greeenboii.Task, error)
	DeleteTaskFn   func(ctx context.Context, id string) error
}

func (s *TaskService) CreateTask(ctx context.Context, task *greeenboii.Task) error {
	return s.CreateTaskFn(ctx, task)
}

func (s *TaskService) FindTaskByID(ctx context.Context, id string) (*greeenboii.Task, error) {
	return s.FindTaskByIDFn(ctx, id)
}

func (s *TaskService) FindTasks(ctx context.Context, filter greeenboii.TaskFilter) ([]*greeenboii.Task, error) {
	return s.FindTasksFn(ctx, filter)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, upd greeenboii.TaskUpdate) (*greeenboii.Task, error) {
	return s.UpdateTaskFn(ctx, id, upd)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.DeleteTaskFn(ctx, id)
}
