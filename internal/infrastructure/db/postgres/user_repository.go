package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wophi/wophi-api/internal/core/domain"
	"github.com/wophi/wophi-api/internal/core/ports"
)

// UserRepository persists the local mirror of Alma users.
type UserRepository struct {
	db *gorm.DB
}

var _ ports.UserStore = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row. A unique-constraint violation on alma_id is
// reported as *domain.DuplicateFieldError.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &domain.DuplicateFieldError{Fields: []string{"alma_id"}}
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByAlmaID(ctx context.Context, almaID string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, "alma_id = ?", almaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// UpdateName rewrites the mirrored name fields and returns the updated row.
func (r *UserRepository) UpdateName(ctx context.Context, almaID, name, socialName string) (*domain.User, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("alma_id = ?", almaID).
		Updates(map[string]any{"name": name, "social_name": socialName})
	if result.Error != nil {
		return nil, fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrUserNotFound
	}
	return r.FindByAlmaID(ctx, almaID)
}

// DeleteTaskCategoryLinks removes the join rows of every task owned by the
// user. Deletion order matters: links must go before tasks.
func (r *UserRepository) DeleteTaskCategoryLinks(ctx context.Context, almaID string) error {
	err := r.db.WithContext(ctx).Exec(
		`DELETE FROM task_categories
		 WHERE task_id IN (
		   SELECT t.id FROM tasks t
		   JOIN users u ON u.id = t.user_id
		   WHERE u.alma_id = ?)`,
		almaID,
	).Error
	if err != nil {
		return fmt.Errorf("delete task-category links: %w", err)
	}
	return nil
}

// DeleteTasks removes every task owned by the user.
func (r *UserRepository) DeleteTasks(ctx context.Context, almaID string) error {
	err := r.db.WithContext(ctx).Exec(
		`DELETE FROM tasks
		 WHERE user_id IN (SELECT id FROM users WHERE alma_id = ?)`,
		almaID,
	).Error
	if err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

// Delete removes the user row itself.
func (r *UserRepository) Delete(ctx context.Context, almaID string) error {
	result := r.db.WithContext(ctx).Where("alma_id = ?", almaID).Delete(&domain.User{})
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
