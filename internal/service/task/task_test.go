package task

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/leoisqualified/pomodoro-timer/internal/apperrors"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

// In-memory task repo scoped by owner, the way the real one behaves
type fakeTaskRepo struct {
	tasks map[uuid.UUID]models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[uuid.UUID]models.Task{}}
}

func (r *fakeTaskRepo) CreateTask(_ context.Context, userID uuid.UUID, title string, description string) (models.Task, error) {
	task := models.Task{ID: uuid.New(), UserID: userID, Title: title, Description: description}
	r.tasks[task.ID] = task
	return task, nil
}

func (r *fakeTaskRepo) ListTasks(_ context.Context, userID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	for _, task := range r.tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (r *fakeTaskRepo) GetTask(_ context.Context, userID uuid.UUID, taskID uuid.UUID) (models.Task, error) {
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return models.Task{}, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (r *fakeTaskRepo) UpdateTask(_ context.Context, userID uuid.UUID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return models.Task{}, apperrors.ErrTaskNotFound
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.IsCompleted != nil {
		task.IsCompleted = *update.IsCompleted
	}

	r.tasks[taskID] = task
	return task, nil
}

func (r *fakeTaskRepo) DeleteTask(_ context.Context, userID uuid.UUID, taskID uuid.UUID) error {
	task, ok := r.tasks[taskID]
	if !ok || task.UserID != userID {
		return apperrors.ErrTaskNotFound
	}
	delete(r.tasks, taskID)
	return nil
}

func TestTaskService(t *testing.T) {
	alice := &models.User{ID: uuid.New(), Username: "alice"}
	bob := &models.User{ID: uuid.New(), Username: "bob"}

	t.Run("nil repo rejected", func(t *testing.T) {
		_, err := NewService(nil)
		require.Error(t, err)
	})

	t.Run("operations are scoped to the caller", func(t *testing.T) {
		service, err := NewService(newFakeTaskRepo())
		require.NoError(t, err)

		task, err := service.Create(t.Context(), alice, "Write report", "Quarterly numbers")
		require.NoError(t, err)
		require.Equal(t, alice.ID, task.UserID)

		t.Run("owner sees the task", func(t *testing.T) {
			got, err := service.Get(t.Context(), alice, task.ID)
			require.NoError(t, err)
			require.Equal(t, task, got)

			tasks, err := service.List(t.Context(), alice)
			require.NoError(t, err)
			require.Len(t, tasks, 1)
		})

		t.Run("other user does not", func(t *testing.T) {
			_, err := service.Get(t.Context(), bob, task.ID)
			require.ErrorIs(t, err, apperrors.ErrTaskNotFound)

			_, err = service.Update(t.Context(), bob, task.ID, models.TaskUpdate{})
			require.ErrorIs(t, err, apperrors.ErrTaskNotFound)

			err = service.Delete(t.Context(), bob, task.ID)
			require.ErrorIs(t, err, apperrors.ErrTaskNotFound)

			tasks, err := service.List(t.Context(), bob)
			require.NoError(t, err)
			require.Empty(t, tasks)
		})

		t.Run("owner updates and deletes", func(t *testing.T) {
			completed := true
			updated, err := service.Update(t.Context(), alice, task.ID, models.TaskUpdate{IsCompleted: &completed})
			require.NoError(t, err)
			require.True(t, updated.IsCompleted)
			require.Equal(t, "Write report", updated.Title, "untouched field should keep its value")

			err = service.Delete(t.Context(), alice, task.ID)
			require.NoError(t, err)

			_, err = service.Get(t.Context(), alice, task.ID)
			require.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		})
	})
}
