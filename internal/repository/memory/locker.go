package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventlottery/internal/domain"
)

type lease struct {
	token   string
	expires time.Time
}

// locker is an in-process Locker for single-replica deployments.
type locker struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

// NewLocker returns a process-local Locker.
func NewLocker() domain.Locker {
	return &locker{leases: make(map[string]lease), now: time.Now}
}

func (l *locker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if cur, ok := l.leases[key]; ok && now.Before(cur.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.leases[key] = lease{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (l *locker) Release(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.leases[key]; ok && cur.token == token {
		delete(l.leases, key)
	}
	return nil
}
