package ports

import (
	"context"

	"github.com/wophi/wophi-api/internal/core/domain"
)

// CreateProfileInput is the full signup payload forwarded to Alma.
type CreateProfileInput struct {
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	SocialName           string `json:"socialName,omitempty"`
	BornDate             string `json:"bornDate"`
	MotherName           string `json:"motherName"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
	OriginChannel        string `json:"originChannel"`
}

// UpdateProfileInput is a partial profile update. Nil fields are omitted from
// the PATCH body sent to Alma.
type UpdateProfileInput struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	SocialName *string `json:"socialName,omitempty"`
	BornDate   *string `json:"bornDate,omitempty"`
	MotherName *string `json:"motherName,omitempty"`
	Username   *string `json:"username,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

// TouchesName reports whether the update includes a locally mirrored name
// field, which is the only case requiring a local write.
func (u UpdateProfileInput) TouchesName() bool {
	return u.FirstName != nil || u.LastName != nil || u.SocialName != nil
}

// AlmaClient issues authenticated HTTP calls to the remote identity service.
// Implementations perform a single attempt per call; remote-side failures
// surface as *domain.RemoteError, anything else as a generic internal error.
type AlmaClient interface {
	CreateProfile(ctx context.Context, input CreateProfileInput) (*domain.AlmaProfile, error)
	GetProfile(ctx context.Context, accessToken string) (*domain.AlmaProfile, error)
	UpdateProfile(ctx context.Context, accessToken string, input UpdateProfileInput) (*domain.AlmaProfile, error)
	DeleteProfile(ctx context.Context, accessToken string) error
}
