package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/leoisqualified/pomodoro-timer/internal/handlers/middleware"
	"github.com/leoisqualified/pomodoro-timer/internal/logger"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
	"github.com/leoisqualified/pomodoro-timer/internal/service/session"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	taskService taskService,
	sessionService sessionService,
	logger logger.Logger,
) http.Handler {
	authMiddleware := middleware.AuthMiddleware(authService)
	withAuth := func(h http.Handler) http.Handler {
		return authMiddleware(h)
	}

	mux := http.NewServeMux()

	mux.Handle("POST /auth/register", handleRegister(authService, logger))
	mux.Handle("POST /auth/login", handleLogin(authService, logger))
	mux.Handle("GET /auth/profile", withAuth(handleProfile()))
	mux.Handle("POST /auth/refresh", handleRefresh(authService, logger))
	mux.Handle("GET /auth/logout", handleLogout(authService))

	mux.Handle("POST /tasks", withAuth(handleCreateTask(taskService, logger)))
	mux.Handle("GET /tasks", withAuth(handleListTasks(taskService, logger)))
	mux.Handle("GET /tasks/{id}", withAuth(handleGetTask(taskService, logger)))
	mux.Handle("PUT /tasks/{id}", withAuth(handleUpdateTask(taskService, logger)))
	mux.Handle("DELETE /tasks/{id}", withAuth(handleDeleteTask(taskService, logger)))

	mux.Handle("POST /sessions", withAuth(handleCreateSession(sessionService, logger)))
	mux.Handle("GET /sessions", withAuth(handleListSessions(sessionService, logger)))

	return chain(mux,
		middleware.LoggerMiddleware(logger),
	)
}

type authService interface {
	// Register user with username and password
	// Has to return apperrors.ErrUserAlreadyExists if username is taken
	Register(ctx context.Context, username string, password string) (models.User, error)

	// Login user with username and password
	// Has to return apperrors.ErrInvalidCredentials for unknown user and
	// wrong password alike
	Login(ctx context.Context, username string, password string) (models.User, models.TokenPair, error)

	// Mint a new access token for a valid refresh token
	// Has to return apperrors.ErrTokenExpired / apperrors.ErrTokenInvalid
	RefreshAccess(refresh string) (models.IssuedToken, error)

	// Access token cookie handling (used by the auth middleware too)
	ReadAccess(r *http.Request) (string, error)
	VerifyAccess(access string) (models.User, error)

	// Refresh token cookie handling
	ReadRefresh(r *http.Request) (string, error)

	SetAuthCookies(w http.ResponseWriter, pair models.TokenPair)
	SetAccessCookie(w http.ResponseWriter, access models.IssuedToken)
	ClearAuthCookies(w http.ResponseWriter)
}

type taskService interface {
	Create(ctx context.Context, user *models.User, title string, description string) (models.Task, error)
	List(ctx context.Context, user *models.User) ([]models.Task, error)
	Get(ctx context.Context, user *models.User, taskID uuid.UUID) (models.Task, error)
	Update(ctx context.Context, user *models.User, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error)
	Delete(ctx context.Context, user *models.User, taskID uuid.UUID) error
}

type sessionService interface {
	Log(ctx context.Context, user *models.User, params session.CreateParams) (models.Session, error)
	List(ctx context.Context, user *models.User) ([]models.Session, error)
}
