package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User is the local mirror of an Alma profile. Only the fields needed for
// relational joins with tasks are persisted; the rest lives in Alma.
type User struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	AlmaID     string    `gorm:"column:alma_id;uniqueIndex;size:36;not null" json:"almaId"`
	Name       string    `gorm:"size:250;not null" json:"name"`
	SocialName string    `gorm:"column:social_name;size:250" json:"socialName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// TableName returns the table name for the User model.
func (User) TableName() string {
	return "users"
}

// AuthenticatedUser is the decoded identity attached to every authenticated
// request by the auth middleware.
type AuthenticatedUser struct {
	AlmaID   string
	Username string
	Email    string
}
