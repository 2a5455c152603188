package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/leoisqualified/pomodoro-timer/internal/handlers/render"
	"github.com/leoisqualified/pomodoro-timer/internal/handlers/userctx"
	"github.com/leoisqualified/pomodoro-timer/internal/logger"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
	"github.com/leoisqualified/pomodoro-timer/internal/service/session"
)

type sessionResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	TaskID    *uuid.UUID `json:"taskId,omitempty"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Duration  int        `json:"duration"`
	Kind      string     `json:"type"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toSessionResponse(s models.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		TaskID:    s.TaskID,
		StartTime: s.StartedAt,
		EndTime:   s.EndedAt,
		Duration:  s.Duration,
		Kind:      s.Kind,
		CreatedAt: s.CreatedAt,
	}
}

func handleCreateSession(sessionService sessionService, l logger.Logger) http.Handler {
	type request struct {
		TaskID    *uuid.UUID `json:"taskId"`
		StartTime time.Time  `json:"startTime" validate:"required"`
		EndTime   time.Time  `json:"endTime" validate:"required"`
		Kind      string     `json:"type" validate:"required,oneof=focus break"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		logged, err := sessionService.Log(r.Context(), &user, session.CreateParams{
			TaskID:    data.TaskID,
			StartedAt: data.StartTime,
			EndedAt:   data.EndTime,
			Kind:      data.Kind,
		})
		if err != nil {
			l.Error("Failed to log session", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, toSessionResponse(logged), http.StatusCreated)
	})
}

func handleListSessions(sessionService sessionService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		sessions, err := sessionService.List(r.Context(), &user)
		if err != nil {
			l.Error("Failed to list sessions", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]sessionResponse, 0, len(sessions))
		for _, s := range sessions {
			response = append(response, toSessionResponse(s))
		}
		render.JSON(w, response)
	})
}
