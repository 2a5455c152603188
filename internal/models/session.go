package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionKindFocus = "focus"
	SessionKindBreak = "break"
)

// Session is one finished pomodoro interval reported by the timer
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TaskID    *uuid.UUID // nil if not linked to a task
	CreatedAt time.Time
	StartedAt time.Time
	EndedAt   time.Time

	// Whole minutes between StartedAt and EndedAt
	Duration int

	// "focus" or "break"
	Kind string
}
