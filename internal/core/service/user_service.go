package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wophi/wophi-api/internal/core/domain"
	"github.com/wophi/wophi-api/internal/core/ports"
)

// originChannel tags every signup forwarded to Alma.
const originChannel = "WOPHI"

// SignupGuard abstracts the idempotency store (Redis).
type SignupGuard interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// UserService synchronizes user state between Alma and local persistence.
// Every public method is an error boundary: only *domain.AppError escapes.
type UserService struct {
	alma  ports.AlmaClient
	store ports.UserStore
	guard SignupGuard // optional; nil disables idempotency checks
	log   zerolog.Logger
}

func NewUserService(alma ports.AlmaClient, store ports.UserStore, guard SignupGuard, log zerolog.Logger) *UserService {
	return &UserService{alma: alma, store: store, guard: guard, log: log}
}

// CreateUser registers the profile in Alma first, then mirrors the returned
// id into a local row. There is no compensating remote delete when the local
// write fails; the inconsistency window is accepted.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*ports.CreatedUser, error) {
	const op = "user-service.createUser"

	// 1. Idempotency check: reject replayed signup submissions.
	if s.guard != nil && input.IdempotencyKey != "" {
		isDup, err := s.guard.IsDuplicate(ctx, input.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("signup idempotency check failed, processing anyway")
		} else if isDup {
			return nil, domain.NewClientError(op, "duplicate signup request")
		}
	}

	// 2. Remote create.
	profile, err := s.alma.CreateProfile(ctx, ports.CreateProfileInput{
		FirstName:            input.FirstName,
		LastName:             input.LastName,
		SocialName:           input.SocialName,
		BornDate:             input.BornDate,
		MotherName:           input.MotherName,
		Username:             input.Username,
		Email:                input.Email,
		Phone:                input.Phone,
		Password:             input.Password,
		PasswordConfirmation: input.PasswordConfirmation,
		OriginChannel:        originChannel,
	})
	if err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			return nil, domain.NewClientError(op, remote.Message)
		}
		s.log.Error().Err(err).Msg("alma signup failed")
		return nil, domain.NewInternalError(op, "user not created")
	}

	// 3. Local mirror, keyed by the returned alma id.
	user := &domain.User{
		AlmaID:     profile.ID,
		Name:       fmt.Sprintf("%s %s", input.FirstName, input.LastName),
		SocialName: input.SocialName,
	}
	if err := s.store.Create(ctx, user); err != nil {
		var dup *domain.DuplicateFieldError
		if errors.As(err, &dup) {
			return nil, domain.NewClientError(op, dup.Error())
		}
		s.log.Error().Err(err).Str("alma_id", profile.ID).Msg("local user insert failed after remote create")
		return nil, domain.NewInternalError(op, "user not created")
	}

	if s.guard != nil && input.IdempotencyKey != "" {
		if markErr := s.guard.Mark(ctx, input.IdempotencyKey); markErr != nil {
			s.log.Warn().Err(markErr).Msg("failed to set signup idempotency key")
		}
	}

	s.log.Info().Str("alma_id", user.AlmaID).Str("user_id", user.ID).Msg("user created")

	return &ports.CreatedUser{
		ID:         user.ID,
		Name:       user.Name,
		SocialName: user.SocialName,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}, nil
}

// FindByID verifies the local row exists before touching Alma, then merges
// the local id with the live remote profile.
func (s *UserService) FindByID(ctx context.Context, almaID, accessToken string) (*ports.UserData, error) {
	const op = "user-service.findById"

	user, err := s.store.FindByAlmaID(ctx, almaID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.NewNotFoundError(op, "user not found")
		}
		s.log.Error().Err(err).Str("alma_id", almaID).Msg("local user lookup failed")
		return nil, domain.NewInternalError(op, "could not get user")
	}

	profile, err := s.alma.GetProfile(ctx, accessToken)
	if err != nil {
		// Already-typed failures pass through with their status and message
		// intact; only re-tag as an AppError when needed.
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			return nil, &domain.AppError{Code: remote.Status, Context: op, Message: remote.Message}
		}
		if appErr, ok := domain.AsAppError(err); ok {
			return nil, appErr
		}
		s.log.Error().Err(err).Str("alma_id", almaID).Msg("alma profile fetch failed")
		return nil, domain.NewInternalError(op, "could not get user")
	}

	return formatUserData(user.ID, profile), nil
}

// UpdateUser sends the partial update to Alma first. The local row is only
// written when the update touches a mirrored name field.
func (s *UserService) UpdateUser(ctx context.Context, accessToken string, input ports.UpdateProfileInput) (*ports.UserData, error) {
	const op = "user-service.updateUser"

	profile, err := s.alma.UpdateProfile(ctx, accessToken, input)
	if err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			return nil, domain.NewClientError(op, remote.Message)
		}
		s.log.Error().Err(err).Msg("alma profile update failed")
		return nil, domain.NewInternalError(op, "could not update user")
	}

	var localID string
	if input.TouchesName() {
		name := fmt.Sprintf("%s %s", profile.Personal.FirstName, profile.Personal.LastName)
		user, err := s.store.UpdateName(ctx, profile.ID, name, profile.Personal.SocialName)
		if err != nil {
			s.log.Error().Err(err).Str("alma_id", profile.ID).Msg("local name update failed after remote update")
			return nil, domain.NewInternalError(op, "could not update user")
		}
		localID = user.ID
	} else {
		// No write required; resolve the local id with a read so the merged
		// view still carries it.
		user, err := s.store.FindByAlmaID(ctx, profile.ID)
		if err != nil {
			s.log.Error().Err(err).Str("alma_id", profile.ID).Msg("local user lookup failed after remote update")
			return nil, domain.NewInternalError(op, "could not update user")
		}
		localID = user.ID
	}

	return formatUserData(localID, profile), nil
}

// DeleteUser removes the remote profile, then local rows in dependency
// order: task-category links, tasks, user. The remote delete is never rolled
// back when a later local step fails.
func (s *UserService) DeleteUser(ctx context.Context, accessToken, almaID string) error {
	const op = "user-service.deleteUser"

	if err := s.alma.DeleteProfile(ctx, accessToken); err != nil {
		var remote *domain.RemoteError
		if errors.As(err, &remote) {
			return domain.NewClientError(op, remote.Message)
		}
		s.log.Error().Err(err).Str("alma_id", almaID).Msg("alma profile delete failed")
		return domain.NewInternalError(op, "could not delete user")
	}

	if err := s.store.DeleteTaskCategoryLinks(ctx, almaID); err != nil {
		s.log.Error().Err(err).Str("alma_id", almaID).Msg("task-category link delete failed")
		return domain.NewInternalError(op, "could not delete user")
	}
	if err := s.store.DeleteTasks(ctx, almaID); err != nil {
		s.log.Error().Err(err).Str("alma_id", almaID).Msg("task delete failed")
		return domain.NewInternalError(op, "could not delete user")
	}
	if err := s.store.Delete(ctx, almaID); err != nil {
		s.log.Error().Err(err).Str("alma_id", almaID).Msg("local user delete failed")
		return domain.NewInternalError(op, "could not delete user")
	}

	s.log.Info().Str("alma_id", almaID).Msg("user deleted")
	return nil
}

// formatUserData flattens the nested Alma groups into a single object,
// combining the local id with the remote profile fields.
func formatUserData(localID string, profile *domain.AlmaProfile) *ports.UserData {
	return &ports.UserData{
		ID:         localID,
		Name:       fmt.Sprintf("%s %s", profile.Personal.FirstName, profile.Personal.LastName),
		SocialName: profile.Personal.SocialName,
		BornDate:   profile.Personal.BornDate,
		MotherName: profile.Personal.MotherName,
		Username:   profile.Contact.Username,
		Email:      profile.Contact.Email,
		Phone:      profile.Contact.Phone,
		Status:     profile.Security.Status,
		CreatedAt:  profile.CreatedAt,
		UpdatedAt:  profile.UpdatedAt,
	}
}
