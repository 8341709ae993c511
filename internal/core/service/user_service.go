package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile changes the non-empty fields only.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, theme string) (*domain.User, error) {
	return s.repo.Update(ctx, userID, func(u *domain.User) error {
		if name != "" {
			u.Profile.Name = name
		}
		if theme != "" {
			u.Profile.Theme = theme
		}
		return nil
	})
}

// RequestPasswordReset acknowledges a reset request for a known email. No
// token is issued; delivery is out of band.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrEmailRequired
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}
