package domain

import "time"

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

// Task is a to-do item owned by exactly one user. Tasks are removed
// explicitly (links first, then tasks) when the owning user is deleted.
type Task struct {
	ID          string     `gorm:"primarykey;size:36" json:"id"`
	UserID      string     `gorm:"index;size:36;not null" json:"userId"`
	Title       string     `gorm:"size:250;not null" json:"title"`
	Description string     `gorm:"size:500" json:"description"`
	Status      TaskStatus `gorm:"size:20;not null" json:"status"`
	Categories  []Category `gorm:"many2many:task_categories" json:"categories"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// Category labels tasks; shared across users, unique by name.
type Category struct {
	ID   string `gorm:"primarykey;size:36" json:"id"`
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// TableName returns the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}
