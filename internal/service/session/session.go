package session

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

type SessionRepo interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error)
}

type CreateParams struct {
	TaskID    *uuid.UUID
	StartedAt time.Time
	EndedAt   time.Time
	Kind      string
}

type SessionService struct {
	sessionRepo SessionRepo
}

func NewService(sessionRepo SessionRepo) (*SessionService, error) {
	if sessionRepo == nil {
		return nil, errors.New("session repo must not be nil")
	}

	return &SessionService{sessionRepo: sessionRepo}, nil
}

// Log a finished focus or break interval
// Duration is derived on the server from the reported boundaries, the
// client is not trusted to count minutes
func (s *SessionService) Log(ctx context.Context, user *models.User, params CreateParams) (models.Session, error) {
	session := models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TaskID:    params.TaskID,
		CreatedAt: time.Now(),
		StartedAt: params.StartedAt,
		EndedAt:   params.EndedAt,
		Duration:  durationMinutes(params.StartedAt, params.EndedAt),
		Kind:      params.Kind,
	}

	return s.sessionRepo.CreateSession(ctx, session)
}

func (s *SessionService) List(ctx context.Context, user *models.User) ([]models.Session, error) {
	return s.sessionRepo.ListSessions(ctx, user.ID)
}

func durationMinutes(start time.Time, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}
