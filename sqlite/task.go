package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/greeenboii/greeenboii"
)

// Compile-time interface verification.
var _ greeenboii.TaskService = (*TaskService)(nil)

// TaskService implements greeenboii.TaskService using SQLite.
type TaskService struct {
	db *DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask creates a new task.
func (s *TaskService) CreateTask(ctx context.Context, task *greeenboii.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	task.ID = uuid.New().String()
	task.Title = strings.TrimSpace(task.Title)
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, title, done, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, task.ID, task.Title, task.Done, formatTime(task.CreatedAt), formatTime(task.UpdatedAt))

	return err
}

// FindTaskByID retrieves a task by ID.
func (s *TaskService) FindTaskByID(ctx context.Context, id string) (*greeenboii.Task, error) {
	task, err := scanTask(s.db.QueryRowContext(ctx, `
		SELECT id, title, done, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, greeenboii.Errorf(greeenboii.ENOTFOUND, "task not found")
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// FindTasks retrieves tasks matching the filter, newest first.
func (s *TaskService) FindTasks(ctx context.Context, filter greeenboii.TaskFilter) ([]*greeenboii.Task, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, done, created_at, updated_at FROM tasks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Done != nil {
		query.WriteString(" AND done = ?")
		args = append(args, *filter.Done)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*greeenboii.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// UpdateTask updates an existing task.
func (s *TaskService) UpdateTask(ctx context.Context, id string, upd greeenboii.TaskUpdate) (*greeenboii.Task, error) {
	task, err := s.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		task.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Done != nil {
		task.Done = *upd.Done
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	task.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, done = ?, updated_at = ?
		WHERE id = ?
	`, task.Title, task.Done, formatTime(task.UpdatedAt), id)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// DeleteTask permanently removes a task.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return greeenboii.Errorf(greeenboii.ENOTFOUND, "task not found")
	}

	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*greeenboii.Task, error) {
	var task greeenboii.Task
	var createdAt, updatedAt string

	if err := row.Scan(&task.ID, &task.Title, &task.Done, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if task.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &task, nil
}
