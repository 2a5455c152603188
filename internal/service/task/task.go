package task

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/leoisqualified/pomodoro-timer/internal/models"
)

type TaskRepo interface {
	CreateTask(ctx context.Context, userID uuid.UUID, title string, description string) (models.Task, error)
	ListTasks(ctx context.Context, userID uuid.UUID) ([]models.Task, error)

	// All three have to return apperrors.ErrTaskNotFound if the task does
	// not exist or belongs to another user
	GetTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) (models.Task, error)
	UpdateTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, userID uuid.UUID, taskID uuid.UUID) error
}

type TaskService struct {
	taskRepo TaskRepo
}

func NewService(taskRepo TaskRepo) (*TaskService, error) {
	if taskRepo == nil {
		return nil, errors.New("task repo must not be nil")
	}

	return &TaskService{taskRepo: taskRepo}, nil
}

func (s *TaskService) Create(ctx context.Context, user *models.User, title string, description string) (models.Task, error) {
	return s.taskRepo.CreateTask(ctx, user.ID, title, description)
}

func (s *TaskService) List(ctx context.Context, user *models.User) ([]models.Task, error) {
	return s.taskRepo.ListTasks(ctx, user.ID)
}

func (s *TaskService) Get(ctx context.Context, user *models.User, taskID uuid.UUID) (models.Task, error) {
	return s.taskRepo.GetTask(ctx, user.ID, taskID)
}

func (s *TaskService) Update(ctx context.Context, user *models.User, taskID uuid.UUID, update models.TaskUpdate) (models.Task, error) {
	return s.taskRepo.UpdateTask(ctx, user.ID, taskID, update)
}

func (s *TaskService) Delete(ctx context.Context, user *models.User, taskID uuid.UUID) error {
	return s.taskRepo.DeleteTask(ctx, user.ID, taskID)
}
