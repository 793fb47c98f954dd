package ports

import (
	"context"

	"github.com/wophi/wophi-api/internal/core/domain"
)

// UserStore defines local persistence for mirrored user rows.
//
// Create reports unique-constraint violations as *domain.DuplicateFieldError.
// FindByAlmaID reports a missing row as domain.ErrUserNotFound.
// The three delete methods exist separately because user deletion must issue
// them in order: task-category links, tasks, then the user row.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByAlmaID(ctx context.Context, almaID string) (*domain.User, error)
	UpdateName(ctx context.Context, almaID, name, socialName string) (*domain.User, error)
	DeleteTaskCategoryLinks(ctx context.Context, almaID string) error
	DeleteTasks(ctx context.Context, almaID string) error
	Delete(ctx context.Context, almaID string) error
}
