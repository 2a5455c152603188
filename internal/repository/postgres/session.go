package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

type SessionRepo struct {
	DB DBTX
}

const createSession = `-- name: CreateSession
INSERT INTO sessions (id, user_id, task_id, created_at, started_at, ended_at, duration_minutes, kind)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, user_id, task_id, created_at, started_at, ended_at, duration_minutes, kind
`

func (r *SessionRepo) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	rows, _ := r.DB.Query(ctx, createSession,
		session.ID, session.UserID, session.TaskID, session.CreatedAt,
		session.StartedAt, session.EndedAt, session.Duration, session.Kind,
	)
	saved, err := pgx.CollectOneRow(rows, rowToSession)
	if err != nil {
		return saved, fmt.Errorf("db error: %w", err)
	}

	return saved, nil
}

const listSessions = `-- name: ListSessions
SELECT id, user_id, task_id, created_at, started_at, ended_at, duration_minutes, kind
FROM sessions
WHERE user_id = $1
ORDER BY created_at DESC
`

func (r *SessionRepo) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	rows, _ := r.DB.Query(ctx, listSessions, userID)
	sessions, err := pgx.CollectRows(rows, rowToSession)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return sessions, nil
}

func rowToSession(row pgx.CollectableRow) (models.Session, error) {
	var s models.Session
	err := row.Scan(&s.ID, &s.UserID, &s.TaskID, &s.CreatedAt, &s.StartedAt, &s.EndedAt, &s.Duration, &s.Kind)
	return s, err
}
