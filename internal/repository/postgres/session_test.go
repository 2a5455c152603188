package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/leoisqualified/pomodoro-timer/internal/models"
	"github.com/leoisqualified/pomodoro-timer/internal/testutil"
)

func buildSession(userID uuid.UUID, taskID *uuid.UUID) models.Session {
	started := time.Now().Add(-25 * time.Minute).Truncate(time.Microsecond)
	return models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TaskID:    taskID,
		CreatedAt: time.Now().Truncate(time.Microsecond),
		StartedAt: started,
		EndedAt:   started.Add(25 * time.Minute),
		Duration:  25,
		Kind:      models.SessionKindFocus,
	}
}

func TestSessionRepo(t *testing.T) {
	container := testutil.StartPostgresContainer(t)
	defer container.Terminate()

	t.Run("create session without task", func(t *testing.T) {
		testutil.WithTx(container.Pool, t, func(tx pgx.Tx) {
			repo := &SessionRepo{DB: tx}
			alice := createTestUser(t, tx, "alice")
			session := buildSession(alice.ID, nil)

			saved, err := repo.CreateSession(t.Context(), session)

			require.NoError(t, err)
			require.Equal(t, session.ID, saved.ID)
			require.Equal(t, alice.ID, saved.UserID)
			require.Nil(t, saved.TaskID)
			require.Equal(t, 25, saved.Duration)
			require.Equal(t, models.SessionKindFocus, saved.Kind)
			require.True(t, session.StartedAt.Equal(saved.StartedAt), "started_at should round-trip")
			require.True(t, session.EndedAt.Equal(saved.EndedAt), "ended_at should round-trip")
		})
	})

	t.Run("create session bound to task", func(t *testing.T) {
		testutil.WithTx(container.Pool, t, func(tx pgx.Tx) {
			repo := &SessionRepo{DB: tx}
			alice := createTestUser(t, tx, "alice")
			task, err := (&TaskRepo{DB: tx}).CreateTask(t.Context(), alice.ID, "Write report", "")
			require.NoError(t, err)

			saved, err := repo.CreateSession(t.Context(), buildSession(alice.ID, &task.ID))

			require.NoError(t, err)
			require.NotNil(t, saved.TaskID)
			require.Equal(t, task.ID, *saved.TaskID)
		})
	})

	t.Run("session survives task deletion", func(t *testing.T) {
		testutil.WithTx(container.Pool, t, func(tx pgx.Tx) {
			repo := &SessionRepo{DB: tx}
			taskRepo := &TaskRepo{DB: tx}
			alice := createTestUser(t, tx, "alice")
			task, err := taskRepo.CreateTask(t.Context(), alice.ID, "Write report", "")
			require.NoError(t, err)
			saved, err := repo.CreateSession(t.Context(), buildSession(alice.ID, &task.ID))
			require.NoError(t, err)

			err = taskRepo.DeleteTask(t.Context(), alice.ID, task.ID)
			require.NoError(t, err)

			sessions, err := repo.ListSessions(t.Context(), alice.ID)
			require.NoError(t, err)
			require.Len(t, sessions, 1)
			require.Equal(t, saved.ID, sessions[0].ID)
			require.Nil(t, sessions[0].TaskID, "task reference should be detached, not cascade the session")
		})
	})

	t.Run("list sessions", func(t *testing.T) {
		testutil.WithTx(container.Pool, t, func(tx pgx.Tx) {
			repo := &SessionRepo{DB: tx}
			alice := createTestUser(t, tx, "alice")
			bob := createTestUser(t, tx, "bob")

			first := buildSession(alice.ID, nil)
			second := buildSession(alice.ID, nil)
			second.CreatedAt = first.CreatedAt.Add(time.Minute)
			second.Kind = models.SessionKindBreak

			for _, s := range []models.Session{first, second, buildSession(bob.ID, nil)} {
				_, err := repo.CreateSession(t.Context(), s)
				require.NoError(t, err)
			}

			sessions, err := repo.ListSessions(t.Context(), alice.ID)

			require.NoError(t, err)
			require.Len(t, sessions, 2, "should list only alice's sessions")
			require.Equal(t, second.ID, sessions[0].ID, "newest session should go first")
			require.Equal(t, first.ID, sessions[1].ID)
		})
	})

	t.Run("list sessions empty", func(t *testing.T) {
		testutil.WithTx(container.Pool, t, func(tx pgx.Tx) {
			repo := &SessionRepo{DB: tx}
			alice := createTestUser(t, tx, "alice")

			sessions, err := repo.ListSessions(t.Context(), alice.ID)

			require.NoError(t, err)
			require.Empty(t, sessions)
		})
	})
}
