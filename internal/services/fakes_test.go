package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"eventlottery/internal/domain"
	"eventlottery/internal/repository/memory"
	"eventlottery/internal/selection"

	"github.com/stretchr/testify/require"
)

// testLogger discards output so tests don't assert on logs.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// fakeNotifier records Notify calls. When block is non-nil Notify waits on it.
type fakeNotifier struct {
	mu       sync.Mutex
	requests []domain.NotifyRequest
	result   domain.NotifyResult
	err      error
	block    chan struct{}
}

func (f *fakeNotifier) Notify(ctx context.Context, req domain.NotifyRequest) (domain.NotifyResult, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func (f *fakeNotifier) ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) (*domain.User, error) {
	return &domain.User{ID: userID, NotificationsEnabled: &enabled}, nil
}

func (f *fakeNotifier) calls() []domain.NotifyRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.NotifyRequest(nil), f.requests...)
}

// fakePublisher records published draws.
type fakePublisher struct {
	mu     sync.Mutex
	events []domain.DrawEvent
	err    error
}

func (f *fakePublisher) PublishDraw(ctx context.Context, e domain.DrawEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return f.err
}

func (f *fakePublisher) published() []domain.DrawEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.DrawEvent(nil), f.events...)
}

// flakyDrawRepo fails the first `changed` commits with ErrCandidateChanged,
// or every commit with err when set.
type flakyDrawRepo struct {
	inner   domain.DrawRepository
	changed int
	err     error
	mu      sync.Mutex
	calls   int
}

func (f *flakyDrawRepo) CommitDraw(ctx context.Context, c domain.DrawCommit) error {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if call <= f.changed {
		return domain.ErrCandidateChanged
	}
	return f.inner.CommitDraw(ctx, c)
}

// failingEventRepo overrides selected EventRepository methods with errors.
type failingEventRepo struct {
	domain.EventRepository
	getErr  error
	listErr error
}

func (f *failingEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.EventRepository.GetByID(ctx, id)
}

func (f *failingEventRepo) ListUndrawn(ctx context.Context) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.EventRepository.ListUndrawn(ctx)
}

// failingEntryRepo overrides selected WaitingListRepository methods with errors.
type failingEntryRepo struct {
	domain.WaitingListRepository
	listErr   error
	cancelErr error
}

func (f *failingEntryRepo) ListByStatus(ctx context.Context, eventID string, status domain.EntryStatus) ([]*domain.WaitingListEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.WaitingListRepository.ListByStatus(ctx, eventID, status)
}

func (f *failingEntryRepo) CancelSelectedBefore(ctx context.Context, eventID string, cutoff, at time.Time) ([]*domain.WaitingListEntry, error) {
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return f.WaitingListRepository.CancelSelectedBefore(ctx, eventID, cutoff, at)
}

// fixture wires a LotteryService over the in-memory store.
type fixture struct {
	store     *memory.Store
	events    domain.EventRepository
	entries   domain.WaitingListRepository
	draws     domain.DrawRepository
	notifier  *fakeNotifier
	publisher *fakePublisher
	lottery   *LotteryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		events:    memory.NewEventRepository(store),
		entries:   memory.NewWaitingListRepository(store),
		draws:     memory.NewDrawRepository(store),
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}
	f.lottery = f.newLottery(f.events, f.entries, f.draws)
	return f
}

func (f *fixture) newLottery(events domain.EventRepository, entries domain.WaitingListRepository, draws domain.DrawRepository) *LotteryService {
	svc := NewLotteryService(events, entries, draws, f.notifier, f.publisher,
		selection.NewWithSource(rand.NewPCG(1, 2)), testLogger,
		LotteryConfig{CommitAttempts: 3, ContextTimeout: 5 * time.Second, NotifyTimeout: 5 * time.Second})
	svc.now = func() time.Time { return baseTime }
	return svc
}

func (f *fixture) addEvent(t *testing.T, ev *domain.Event) {
	t.Helper()
	require.NoError(t, f.events.Create(context.Background(), ev))
}

// addWaiting seeds n waiting entries for users u0..u(n-1) with increasing join dates.
func (f *fixture) addWaiting(eventID string, n int) {
	for i := 0; i < n; i++ {
		f.store.SeedEntry(&domain.WaitingListEntry{
			ID:         fmt.Sprintf("%s-e%d", eventID, i),
			EventID:    eventID,
			UserID:     fmt.Sprintf("u%d", i),
			Status:     domain.StatusWaiting,
			JoinedDate: baseTime.Add(time.Duration(i) * time.Minute),
		})
	}
}

func (f *fixture) event(t *testing.T, id string) *domain.Event {
	t.Helper()
	ev, err := f.events.GetByID(context.Background(), id)
	require.NoError(t, err)
	return ev
}

func (f *fixture) countStatus(t *testing.T, eventID string, status domain.EntryStatus) int {
	t.Helper()
	counts, err := f.entries.CountByStatus(context.Background(), eventID)
	require.NoError(t, err)
	return counts[status]
}
