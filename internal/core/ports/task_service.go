package ports

import (
	"context"
	"time"

	"github.com/wophi/wophi-api/internal/core/domain"
)

// CreateTaskInput carries the data for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Categories  []string // category names
}

// TaskData is the API-facing task shape: categories flattened to a list of
// names instead of full category objects.
type TaskData struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskService defines task use cases, scoped by the caller's alma id.
type TaskService interface {
	CreateTask(ctx context.Context, ownerAlmaID string, input CreateTaskInput, status domain.TaskStatus) (*TaskData, error)
	TaskByFilter(ctx context.Context, ownerAlmaID string, filter TaskFilter) ([]TaskData, error)
}
