package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/core/ports"
)

// AuthService implements signup, login and admin seeding.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	newID     func() string
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: utcNow, newID: uuid.NewString}
}

// Signup registers a user with role "user" and returns the new id.
func (s *AuthService) Signup(ctx context.Context, email, password, name string) (string, error) {
	if email == "" || password == "" || name == "" {
		return "", domain.ErrSignupFieldsRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := s.now()
	user := domain.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Profile:      domain.Profile{Name: name, Theme: domain.DefaultTheme},
		LastLogin:    &now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Login verifies the credentials, records the login time and issues a token.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrLoginFieldsRequired
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	user, err = s.repo.Update(ctx, user.ID, func(u *domain.User) error {
		u.LastLogin = &now
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// EnsureAdmin creates the initial administrator unless one already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	return s.repo.CreateAdminIfMissing(ctx, domain.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Profile:      domain.Profile{Name: "Admin", Theme: domain.DefaultTheme},
	})
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"exp":   s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
