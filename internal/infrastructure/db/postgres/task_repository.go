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

// TaskRepository persists tasks and their category associations.
type TaskRepository struct {
	db *gorm.DB
}

var _ ports.TaskStore = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create resolves the owner by alma id, upserts the named categories, and
// inserts the task together with its join rows.
func (r *TaskRepository) Create(ctx context.Context, ownerAlmaID string, task *domain.Task, categories []string) (*domain.Task, error) {
	var owner domain.User
	if err := r.db.WithContext(ctx).First(&owner, "alma_id = ?", ownerAlmaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find task owner: %w", err)
	}

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.UserID = owner.ID

	task.Categories = make([]domain.Category, 0, len(categories))
	for _, name := range categories {
		var category domain.Category
		err := r.db.WithContext(ctx).
			Where("name = ?", name).
			Attrs(domain.Category{ID: uuid.New().String()}).
			FirstOrCreate(&category).Error
		if err != nil {
			return nil, fmt.Errorf("upsert category %q: %w", name, err)
		}
		task.Categories = append(task.Categories, category)
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

// FindByFilter returns the owner's tasks matching filter, newest first, with
// categories preloaded.
func (r *TaskRepository) FindByFilter(ctx context.Context, ownerAlmaID string, filter ports.TaskFilter) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Joins("JOIN users ON users.id = tasks.user_id").
		Where("users.alma_id = ?", ownerAlmaID).
		Preload("Categories")

	if filter.Status != "" {
		q = q.Where("tasks.status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where(
			`tasks.id IN (
			   SELECT tc.task_id FROM task_categories tc
			   JOIN categories c ON c.id = tc.category_id
			   WHERE c.name = ?)`,
			filter.Category,
		)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("tasks.title LIKE ? OR tasks.description LIKE ?", like, like)
	}

	var tasks []domain.Task
	if err := q.Order("tasks.created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}
