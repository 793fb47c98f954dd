package ports

import (
	"context"

	"github.com/wophi/wophi-api/internal/core/domain"
)

// TaskFilter narrows a task query. Zero values mean "no filter".
type TaskFilter struct {
	Status   string // exact match on task status
	Category string // tasks holding a category with this name
	Search   string // partial match on title or description
}

// TaskStore defines local persistence for tasks, always scoped by the
// owner's alma id.
type TaskStore interface {
	// Create persists a new task for the owner, upserting and associating
	// the named categories. The returned task has Categories populated.
	Create(ctx context.Context, ownerAlmaID string, task *domain.Task, categories []string) (*domain.Task, error)
	// FindByFilter returns the owner's tasks matching filter, with
	// Categories preloaded.
	FindByFilter(ctx context.Context, ownerAlmaID string, filter TaskFilter) ([]domain.Task, error)
}
