package models

import (
	"time"

	"github.com/google/uuid"
)

// Fields that may be changed on task update
// Nil pointer means "leave the field as is"
type TaskUpdate struct {
	Title       *string
	Description *string
	IsCompleted *bool
}

type Task struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string
	Description string
	IsCompleted bool
}
