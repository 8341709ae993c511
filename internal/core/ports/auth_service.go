package ports

import (
	"context"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (string, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserService covers the self-service profile operations.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name, theme string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
}
