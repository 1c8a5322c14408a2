package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/userhub/account-api/internal/core/domain"
	"github.com/userhub/account-api/internal/core/ports"
	"github.com/userhub/account-api/internal/pkg/password"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

var validate = validator.New()

// UserService implements account creation, lookup, listing and the password
// change flow.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// CreateUser registers a new account. Checks run in a fixed order: required
// fields, password strength (when a password is supplied), email format, role
// membership, then email uniqueness. Nothing is persisted until every check
// passes.
//
// The uniqueness check and the insert are two separate store round trips, so
// two concurrent creations with the same email can both pass the check; the
// unique index on email turns the loser's insert into ErrEmailTaken.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*ports.CreateUserResult, error) {
	if input.Email == "" || input.UserType == "" {
		return nil, domain.NewValidationError("email and user_type are required")
	}

	if input.Password != "" {
		if ok, msg := password.ValidateStrength(input.Password); !ok {
			return nil, domain.NewValidationError("%s", msg)
		}
	}

	if err := validate.Var(input.Email, "required,email"); err != nil {
		return nil, domain.NewValidationError("email must be a valid email address")
	}

	role := domain.Role(input.UserType)
	if !role.Valid() {
		return nil, domain.NewValidationError("user_type must be one of: %s, %s", domain.RoleAdmin, domain.RoleUser)
	}

	exists, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.log.Error().Err(err).Str("email", input.Email).Msg("failed to check email existence")
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailTaken
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:     input.Email,
		UserType:  role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if input.Password != "" {
		hash, err := password.Hash(input.Password)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to hash password")
			return nil, err
		}
		user.PasswordHash = hash
	}

	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrEmailTaken) {
			s.log.Error().Err(err).Str("email", input.Email).Msg("failed to insert user")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("user_type", input.UserType).Msg("user created")

	return &ports.CreateUserResult{
		UserID:      id,
		Email:       input.Email,
		UserType:    input.UserType,
		HasPassword: user.HasPassword(),
	}, nil
}

// GetUser returns the account by id with the password hash stripped.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// GetUserByEmail returns the account by email with the password hash stripped.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// ListUsers returns one page of accounts. The limit is silently capped at
// maxListLimit; non-positive values fall back to the default. Every returned
// record has its password hash stripped.
func (s *UserService) ListUsers(ctx context.Context, limit, skip int64) (*ports.UserPage, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if skip < 0 {
		skip = 0
	}

	users, err := s.repo.List(ctx, limit, skip)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	return &ports.UserPage{
		Users: users,
		Count: len(users),
		Limit: limit,
		Skip:  skip,
	}, nil
}

// ChangePassword rotates an account credential after re-authenticating the
// caller with the old password.
func (s *UserService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !user.HasPassword() {
		return domain.ErrNoPasswordSet
	}

	if !password.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrInvalidOldPassword
	}

	if ok, msg := password.ValidateStrength(newPassword); !ok {
		return domain.NewValidationError("%s", msg)
	}

	if newPassword == oldPassword {
		return domain.NewValidationError("New password must be different from old password")
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to hash new password")
		return err
	}

	updated, err := s.repo.UpdatePasswordHash(ctx, id, hash)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", id).Msg("failed to update password hash")
		return err
	}
	if !updated {
		return fmt.Errorf("change password: no document updated for user %s", id)
	}

	s.log.Info().Str("user_id", id).Msg("password changed")
	return nil
}
