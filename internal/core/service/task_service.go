package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/wophi/wophi-api/internal/core/domain"
	"github.com/wophi/wophi-api/internal/core/ports"
)

// TaskService handles local-only task persistence and shaping. Like
// UserService, its public methods only let *domain.AppError escape.
type TaskService struct {
	store ports.TaskStore
	log   zerolog.Logger
}

func NewTaskService(store ports.TaskStore, log zerolog.Logger) *TaskService {
	return &TaskService{store: store, log: log}
}

// CreateTask persists a new task scoped to the owner.
func (s *TaskService) CreateTask(ctx context.Context, ownerAlmaID string, input ports.CreateTaskInput, status domain.TaskStatus) (*ports.TaskData, error) {
	const op = "task-service.createTask"

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
	}

	created, err := s.store.Create(ctx, ownerAlmaID, task, input.Categories)
	if err != nil {
		s.log.Error().Err(err).Str("alma_id", ownerAlmaID).Msg("task insert failed")
		return nil, domain.NewInternalError(op, "internal server error")
	}

	s.log.Info().Str("task_id", created.ID).Str("alma_id", ownerAlmaID).Msg("task created")

	data := formatTask(created)
	return &data, nil
}

// TaskByFilter returns the owner's tasks matching filter, formatted for the
// API.
func (s *TaskService) TaskByFilter(ctx context.Context, ownerAlmaID string, filter ports.TaskFilter) ([]ports.TaskData, error) {
	const op = "task-service.taskByFilter"

	tasks, err := s.store.FindByFilter(ctx, ownerAlmaID, filter)
	if err != nil {
		s.log.Error().Err(err).Str("alma_id", ownerAlmaID).Msg("task query failed")
		return nil, domain.NewInternalError(op, "internal server error")
	}

	return formatManyTasks(tasks), nil
}

// formatTask shapes a persisted task for the API, flattening categories into
// a list of names. It is pure: no I/O, no mutation of the input.
func formatTask(task *domain.Task) ports.TaskData {
	categories := make([]string, 0, len(task.Categories))
	for _, c := range task.Categories {
		categories = append(categories, c.Name)
	}

	return ports.TaskData{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Categories:  categories,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// formatManyTasks applies formatTask to each record; per-record output is
// identical to formatting one record at a time.
func formatManyTasks(tasks []domain.Task) []ports.TaskData {
	out := make([]ports.TaskData, 0, len(tasks))
	for i := range tasks {
		out = append(out, formatTask(&tasks[i]))
	}
	return out
}
