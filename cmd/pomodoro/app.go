package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/leoisqualified/pomodoro-timer/internal/db"
	"github.com/leoisqualified/pomodoro-timer/internal/handlers"
	"github.com/leoisqualified/pomodoro-timer/internal/logger"
	"github.com/leoisqualified/pomodoro-timer/internal/repository/postgres"
	"github.com/leoisqualified/pomodoro-timer/internal/service/auth"
	"github.com/leoisqualified/pomodoro-timer/internal/service/auth/tokenmanager"
	"github.com/leoisqualified/pomodoro-timer/internal/service/session"
	"github.com/leoisqualified/pomodoro-timer/internal/service/task"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize repositories
	userRepo := &postgres.UserRepo{DB: pool}
	taskRepo := &postgres.TaskRepo{DB: pool}
	sessionRepo := &postgres.SessionRepo{DB: pool}

	// Initialize services
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		AccessSecret:  c.AccessSecret,
		RefreshSecret: c.RefreshSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	authService, err := auth.NewService(tokenManager, auth.DefaultHasher, userRepo)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	taskService, err := task.NewService(taskRepo)
	if err != nil {
		return nil, fmt.Errorf("error while creating task service. Err: %w", err)
	}
	sessionService, err := session.NewService(sessionRepo)
	if err != nil {
		return nil, fmt.Errorf("error while creating session service. Err: %w", err)
	}

	mux := handlers.NewRouter(
		authService,
		taskService,
		sessionService,
		logger,
	)

	// The SPA runs on another origin and sends cookies
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{c.CORSOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    corsMiddleware.Handler(mux),
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server")
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
