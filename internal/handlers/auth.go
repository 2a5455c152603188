package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/leoisqualified/pomodoro-timer/internal/apperrors"
	"github.com/leoisqualified/pomodoro-timer/internal/handlers/render"
	"github.com/leoisqualified/pomodoro-timer/internal/handlers/userctx"
	"github.com/leoisqualified/pomodoro-timer/internal/logger"
)

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

func handleRegister(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required,min=2,max=50"`
		Password string `json:"password" validate:"required,min=6"`
	}
	type response struct {
		Message string       `json:"message"`
		User    userResponse `json:"user"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := authService.Register(r.Context(), data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrUserAlreadyExists):
				render.ServiceError(w, "Username already taken", http.StatusBadRequest)
			default:
				l.Error("Failed to register user", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		render.JSONWithStatus(w, response{
			Message: "User registered",
			User:    userResponse{ID: user.ID, Username: user.Username},
		}, http.StatusCreated)
	})
}

func handleLogin(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Message string       `json:"message"`
		User    userResponse `json:"user"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, pair, err := authService.Login(r.Context(), data.Username, data.Password)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidCredentials):
				render.ServiceError(w, "Invalid credentials", http.StatusUnauthorized)
			default:
				l.Error("Failed to login user", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		authService.SetAuthCookies(w, pair)
		render.JSON(w, response{
			Message: "Login successful",
			User:    userResponse{ID: user.ID, Username: user.Username},
		})
	})
}

func handleProfile() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSON(w, userResponse{ID: user.ID, Username: user.Username})
	})
}

// Explicit access token recovery: the auth middleware never refreshes on
// its own, an expired access token sends the client here
func handleRefresh(authService authService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refresh, err := authService.ReadRefresh(r)
		if err != nil {
			render.ServiceError(w, "No refresh token", http.StatusUnauthorized)
			return
		}

		access, err := authService.RefreshAccess(refresh)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrTokenExpired), errors.Is(err, apperrors.ErrTokenInvalid):
				render.ServiceError(w, "Invalid or expired refresh token", http.StatusForbidden)
			default:
				l.Error("Failed to refresh access token", "error", err)
				render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			}
			return
		}

		authService.SetAccessCookie(w, access)
		render.JSON(w, response{Message: "Access token refreshed"})
	})
}

func handleLogout(authService authService) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authService.ClearAuthCookies(w)
		render.JSON(w, response{Message: "Logged out"})
	})
}
