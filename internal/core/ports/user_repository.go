package ports

import (
	"context"

	"github.com/userhub/account-api/internal/core/domain"
)

// UserRepository defines the persistence operations for the users collection.
// Uniqueness of email is not enforced here; that is the service's job (the
// storage layer additionally carries a unique index as a backstop).
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user *domain.User) (string, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, skip int64) ([]domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) (bool, error)
}
