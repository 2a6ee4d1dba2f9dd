// Package memory is a mutex-guarded, process-local implementation of the
// storage ports. It backs development mode and service tests.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"eventlottery/internal/domain"
)

// Store holds all tables behind one lock so draw commits stay atomic.
type Store struct {
	mu            sync.RWMutex
	events        map[string]*domain.Event
	entries       map[string]map[string]*domain.WaitingListEntry
	users         map[string]*domain.User
	notifications map[string][]*domain.Notification
	newID         func() string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		events:        make(map[string]*domain.Event),
		entries:       make(map[string]map[string]*domain.WaitingListEntry),
		users:         make(map[string]*domain.User),
		notifications: make(map[string][]*domain.Notification),
		newID:         uuid.NewString,
	}
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	if e.DrawDate != nil {
		d := *e.DrawDate
		c.DrawDate = &d
	}
	if e.RegStop != nil {
		s := *e.RegStop
		c.RegStop = &s
	}
	if e.UnresponsiveHours != nil {
		h := *e.UnresponsiveHours
		c.UnresponsiveHours = &h
	}
	return &c
}

func cloneEntry(e *domain.WaitingListEntry) *domain.WaitingListEntry {
	c := *e
	c.SelectedDate = cloneTime(e.SelectedDate)
	c.EnrolledDate = cloneTime(e.EnrolledDate)
	c.CanceledDate = cloneTime(e.CanceledDate)
	if e.Latitude != nil {
		v := *e.Latitude
		c.Latitude = &v
	}
	if e.Longitude != nil {
		v := *e.Longitude
		c.Longitude = &v
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// SeedEntry stores an entry as-is, skipping the duplicate check Create
// applies. It lets fixtures load inconsistent data such as two waiting
// entries for one user.
func (s *Store) SeedEntry(e *domain.WaitingListEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries[e.EventID] == nil {
		s.entries[e.EventID] = make(map[string]*domain.WaitingListEntry)
	}
	s.entries[e.EventID][e.ID] = cloneEntry(e)
}
