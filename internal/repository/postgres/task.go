package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leoisqualified/pomodoro-timer/internal/apperrors"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

type TaskRepo struct {
	DB DBTX
}

const createTask = `-- name: CreateTask
INSERT INTO tasks (id, user_id, created_at, updated_at, title, description)
VALUES ($1, $2, $3, $3, $4, $5)
RETURNING id, user_id, created_at, updated_at, title, description, is_completed
`

func (r *TaskRepo) CreateTask(ctx context.Context, userID uuid.UUID, title string, description string) (models.Task, error) {
	rows, _ := r.DB.Query(ctx, createTask, uuid.New(), userID, time.Now(), title, description)
	task, err := pgx.CollectOneRow(rows, rowToTask)
	if err != nil {
		return task, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

const listTasks = `-- name: ListTasks
SELECT id, user_id, created_at, updated_at, title, description, is_completed
FROM tasks
WHERE user_id = $1
ORDER BY created_at DESC
`

func (r *TaskRepo) ListTasks(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	rows, _ := r.DB.Query(ctx, listTasks, userID)
	tasks, err := pgx.CollectRows(rows, rowToTask)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tasks, nil
}

const getTask = `-- name: GetTask
SELECT id, user_id, created_at, updated_at, title, description, is_completed
FROM tasks
WHERE id = $1 AND user_id = $2
`

// Get task scoped by its owner
// Someone else's task is reported as not found, not as forbidden
func (r *TaskRepo) GetTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (models.Task, error) {
	rows, _ := r.DB.Query(ctx, getTask, taskID, userID)
	task, err := pgx.CollectOneRow(rows, rowToTask)

	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, pgx.ErrNoRows):
		return task, apperrors.ErrTaskNotFound
	default:
		return task, fmt.Errorf("db error: %w", err)
	}
}

const updateTask = `-- name: UpdateTask
UPDATE tasks
SET title = COALESCE($3, title),
    description = COALESCE($4, description),
    is_completed = COALESCE($5, is_completed),
    updated_at = $6
WHERE id = $1 AND user_id = $2
RETURNING id, user_id, created_at, updated_at, title, description, is_completed
`

func (r *TaskRepo) UpdateTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	rows, _ := r.DB.Query(ctx, updateTask, taskID, userID, update.Title, update.Description, update.IsCompleted, time.Now())
	task, err := pgx.CollectOneRow(rows, rowToTask)

	switch {
	case err == nil:
		return task, nil
	case errors.Is(err, pgx.ErrNoRows):
		return task, apperrors.ErrTaskNotFound
	default:
		return task, fmt.Errorf("db error: %w", err)
	}
}

const deleteTask = `-- name: DeleteTask
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`

func (r *TaskRepo) DeleteTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteTask, taskID, userID)

	switch {
	case err != nil:
		return fmt.Errorf("db error: %w", err)
	case tag.RowsAffected() == 0:
		return apperrors.ErrTaskNotFound
	default:
		return nil
	}
}

func rowToTask(row pgx.CollectableRow) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.UserID, &t.CreatedAt, &t.UpdatedAt, &t.Title, &t.Description, &t.IsCompleted)
	return t, err
}
