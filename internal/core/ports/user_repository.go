package ports

import (
	"context"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create stores a new user. Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user domain.User) error
	// Update applies mutate to the stored user and persists the result.
	Update(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error)
	// CreateAdminIfMissing stores admin unless some admin already exists.
	CreateAdminIfMissing(ctx context.Context, admin domain.User) (bool, error)
}
