package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stretchr/testify/require"

	"github.com/leoisqualified/pomodoro-timer/internal/handlers"
	"github.com/leoisqualified/pomodoro-timer/internal/logger"
	"github.com/leoisqualified/pomodoro-timer/internal/repository/postgres"
	"github.com/leoisqualified/pomodoro-timer/internal/service/auth"
	"github.com/leoisqualified/pomodoro-timer/internal/service/auth/tokenmanager"
	"github.com/leoisqualified/pomodoro-timer/internal/service/session"
	"github.com/leoisqualified/pomodoro-timer/internal/service/task"
	"github.com/leoisqualified/pomodoro-timer/internal/testutil"
)

type Services struct {
	AuthService    *auth.AuthService
	TaskService    *task.TaskService
	SessionService *session.SessionService
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.WithTx with it
func ServeWithTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		// Initialize repositories
		userRepo := &postgres.UserRepo{DB: tx}
		taskRepo := &postgres.TaskRepo{DB: tx}
		sessionRepo := &postgres.SessionRepo{DB: tx}

		// Initialize services
		tokens, err := tokenmanager.New(tokenmanager.Config{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
		})
		require.NoError(t, err, "token manager should be created without errors")

		as, err := auth.NewService(tokens, auth.DefaultHasher, userRepo)
		require.NoError(t, err, "auth service starting error")

		ts, err := task.NewService(taskRepo)
		require.NoError(t, err, "task service starting error")

		ss, err := session.NewService(sessionRepo)
		require.NoError(t, err, "session service starting error")

		// Complete all together as router
		router := handlers.NewRouter(as, ts, ss, logger.NewNoOp())

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			AuthService:    as,
			TaskService:    ts,
			SessionService: ss,
		})
	})
}
