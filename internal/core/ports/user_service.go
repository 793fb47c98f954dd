package ports

import (
	"context"
	"time"
)

// CreateUserInput carries all data needed to register a new user.
type CreateUserInput struct {
	FirstName            string
	LastName             string
	SocialName           string
	BornDate             string
	MotherName           string
	Username             string
	Email                string
	Phone                string
	Password             string
	PasswordConfirmation string
	// IdempotencyKey guards against duplicate signup submissions when present.
	IdempotencyKey string
}

// CreatedUser is returned after registration: the local id and timestamps
// combined with the submitted name fields.
type CreatedUser struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SocialName string    `json:"socialName"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserData is the merged view of a user: the local id joined with the live
// Alma profile fields, flattened into a single object.
type UserData struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SocialName string    `json:"socialName"`
	BornDate   string    `json:"bornDate"`
	MotherName string    `json:"motherName"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserService defines the user synchronization use cases: every operation
// combines the Alma client with local persistence and returns only *domain.AppError
// on failure.
type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*CreatedUser, error)
	FindByID(ctx context.Context, almaID, accessToken string) (*UserData, error)
	UpdateUser(ctx context.Context, accessToken string, input UpdateProfileInput) (*UserData, error)
	DeleteUser(ctx context.Context, accessToken, almaID string) error
}
