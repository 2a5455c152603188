package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/leoisqualified/pomodoro-timer/internal/apperrors"
	"github.com/leoisqualified/pomodoro-timer/internal/handlers/render"
	"github.com/leoisqualified/pomodoro-timer/internal/handlers/userctx"
	"github.com/leoisqualified/pomodoro-timer/internal/logger"
	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

type taskResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTaskResponse(t models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func handleCreateTask(taskService taskService, l logger.Logger) http.Handler {
	type request struct {
		Title       string `json:"title" validate:"required,min=1"`
		Description string `json:"description"`
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

		task, err := taskService.Create(r.Context(), &user, data.Title, data.Description)
		if err != nil {
			l.Error("Failed to create task", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		render.JSONWithStatus(w, toTaskResponse(task), http.StatusCreated)
	})
}

func handleListTasks(taskService taskService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		tasks, err := taskService.List(r.Context(), &user)
		if err != nil {
			l.Error("Failed to list tasks", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]taskResponse, 0, len(tasks))
		for _, t := range tasks {
			response = append(response, toTaskResponse(t))
		}
		render.JSON(w, response)
	})
}

func handleGetTask(taskService taskService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		// Unparseable id can't name an existing task
		taskID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Task not found", http.StatusNotFound)
			return
		}

		task, err := taskService.Get(r.Context(), &user, taskID)
		switch {
		case err == nil:
			render.JSON(w, toTaskResponse(task))
		case errors.Is(err, apperrors.ErrTaskNotFound):
			render.ServiceError(w, "Task not found", http.StatusNotFound)
		default:
			l.Error("Failed to get task", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleUpdateTask(taskService taskService, l logger.Logger) http.Handler {
	type request struct {
		Title       *string `json:"title" validate:"omitempty,min=1"`
		Description *string `json:"description"`
		IsCompleted *bool   `json:"isCompleted"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		taskID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Task not found", http.StatusNotFound)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		task, err := taskService.Update(r.Context(), &user, taskID, models.TaskUpdate{
			Title:       data.Title,
			Description: data.Description,
			IsCompleted: data.IsCompleted,
		})
		switch {
		case err == nil:
			render.JSON(w, toTaskResponse(task))
		case errors.Is(err, apperrors.ErrTaskNotFound):
			render.ServiceError(w, "Task not found", http.StatusNotFound)
		default:
			l.Error("Failed to update task", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleDeleteTask(taskService taskService, l logger.Logger) http.Handler {
	type response struct {
		Message string `json:"message"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		taskID, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.ServiceError(w, "Task not found", http.StatusNotFound)
			return
		}

		err = taskService.Delete(r.Context(), &user, taskID)
		switch {
		case err == nil:
			render.JSON(w, response{Message: "Task deleted"})
		case errors.Is(err, apperrors.ErrTaskNotFound):
			render.ServiceError(w, "Task not found", http.StatusNotFound)
		default:
			l.Error("Failed to delete task", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
