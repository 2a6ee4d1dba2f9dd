package memory

import (
	"context"
	"sort"
	"time"

	"eventlottery/internal/domain"
)

type waitingListRepository struct {
	s *Store
}

// NewWaitingListRepository returns a WaitingListRepository backed by s.
func NewWaitingListRepository(s *Store) domain.WaitingListRepository {
	return &waitingListRepository{s: s}
}

func (r *waitingListRepository) Create(ctx context.Context, e *domain.WaitingListEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[e.EventID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range r.s.entries[e.EventID] {
		if existing.UserID == e.UserID && existing.Status != domain.StatusCanceled {
			return domain.ErrAlreadyJoined
		}
	}
	if e.ID == "" {
		e.ID = r.s.newID()
	}
	if r.s.entries[e.EventID] == nil {
		r.s.entries[e.EventID] = make(map[string]*domain.WaitingListEntry)
	}
	r.s.entries[e.EventID][e.ID] = cloneEntry(e)
	return nil
}

func (r *waitingListRepository) GetByID(ctx context.Context, eventID, entryID string) (*domain.WaitingListEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.entries[eventID][entryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEntry(e), nil
}

func (r *waitingListRepository) ListByStatus(ctx context.Context, eventID string, status domain.EntryStatus) ([]*domain.WaitingListEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.WaitingListEntry, 0)
	for _, e := range r.s.entries[eventID] {
		if e.Status == status {
			out = append(out, cloneEntry(e))
		}
	}
	sortEntries(out)
	return out, nil
}

func (r *waitingListRepository) CountByStatus(ctx context.Context, eventID string) (map[domain.EntryStatus]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	counts := make(map[domain.EntryStatus]int)
	for _, e := range r.s.entries[eventID] {
		counts[e.Status]++
	}
	return counts, nil
}

func (r *waitingListRepository) Transition(ctx context.Context, eventID, entryID string, from, to domain.EntryStatus, at time.Time) (*domain.WaitingListEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.entries[eventID][entryID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if e.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	e.StampTransition(to, at)
	return cloneEntry(e), nil
}

func (r *waitingListRepository) CancelSelectedBefore(ctx context.Context, eventID string, cutoff, at time.Time) ([]*domain.WaitingListEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.WaitingListEntry, 0)
	for _, e := range r.s.entries[eventID] {
		if e.Status != domain.StatusSelected || e.SelectedDate == nil || !e.SelectedDate.Before(cutoff) {
			continue
		}
		e.StampTransition(domain.StatusCanceled, at)
		out = append(out, cloneEntry(e))
	}
	sortEntries(out)
	return out, nil
}

func sortEntries(entries []*domain.WaitingListEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].JoinedDate.Equal(entries[j].JoinedDate) {
			return entries[i].JoinedDate.Before(entries[j].JoinedDate)
		}
		return entries[i].ID < entries[j].ID
	})
}
