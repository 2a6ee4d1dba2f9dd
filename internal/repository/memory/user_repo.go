package memory

import (
	"context"
	"time"

	"eventlottery/internal/domain"
)

type userRepository struct {
	s *Store
}

// NewUserRepository returns a UserRepository backed by s.
func NewUserRepository(s *Store) domain.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepository) SetNotificationsEnabled(ctx context.Context, id string, enabled bool) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		u = &domain.User{ID: id}
		r.s.users[id] = u
	}
	u.NotificationsEnabled = &enabled
	u.UpdatedAt = time.Now()
	c := *u
	return &c, nil
}

// SeedUser stores u, replacing any user with the same id.
func (s *Store) SeedUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.users[u.ID] = &c
}
