package ports

import (
	"context"

	"github.com/userhub/account-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted when registering an account.
// Password is optional; when empty the account is created without a credential.
type CreateUserInput struct {
	Email    string
	UserType string
	Password string
}

// CreateUserResult echoes the created account. The password hash is never part
// of the result.
type CreateUserResult struct {
	UserID      string
	Email       string
	UserType    string
	HasPassword bool
}

// UserPage is one page of sanitized users.
type UserPage struct {
	Users []domain.User
	Count int
	Limit int64
	Skip  int64
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*CreateUserResult, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, skip int64) (*UserPage, error)
	ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error
}
