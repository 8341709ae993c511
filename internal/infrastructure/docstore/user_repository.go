package docstore

import (
	"context"
	"fmt"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	i := snap.FindUserByEmail(email)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := snap.Users[i]
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	i := snap.FindUser(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := snap.Users[i]
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	err := r.store.Update(ctx, func(snap *domain.Snapshot) error {
		if snap.FindUserByEmail(user.Email) >= 0 {
			return domain.ErrUserExists
		}
		snap.Users = append(snap.Users, user)
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, id string, mutate func(*domain.User) error) (*domain.User, error) {
	var updated domain.User
	err := r.store.Update(ctx, func(snap *domain.Snapshot) error {
		i := snap.FindUser(id)
		if i < 0 {
			return domain.ErrUserNotFound
		}
		u := &snap.Users[i]
		if err := mutate(u); err != nil {
			return err
		}
		u.ID = id
		updated = *u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &updated, nil
}

func (r *UserRepository) CreateAdminIfMissing(ctx context.Context, admin domain.User) (bool, error) {
	created := false
	err := r.store.Update(ctx, func(snap *domain.Snapshot) error {
		for _, u := range snap.Users {
			if u.Role == domain.RoleAdmin {
				return nil
			}
		}
		if snap.FindUserByEmail(admin.Email) >= 0 {
			return domain.ErrUserExists
		}
		snap.Users = append(snap.Users, admin)
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return created, nil
}
