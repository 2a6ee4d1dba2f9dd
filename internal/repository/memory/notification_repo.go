package memory

import (
	"context"

	"eventlottery/internal/domain"
)

type notificationRepository struct {
	s *Store
}

// NewNotificationRepository returns a NotificationRepository backed by s.
func NewNotificationRepository(s *Store) domain.NotificationRepository {
	return &notificationRepository{s: s}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n.ID == "" {
		n.ID = r.s.newID()
	}
	c := *n
	r.s.notifications[n.UserID] = append(r.s.notifications[n.UserID], &c)
	return nil
}

// ListByUser returns the newest notifications first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.notifications[userID]
	out := make([]*domain.Notification, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		c := *all[i]
		out = append(out, &c)
	}
	return out, nil
}
