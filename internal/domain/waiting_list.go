package domain

import (
	"context"
	"strings"
	"time"
)

// EntryStatus is the admission state of a waiting list entry.
type EntryStatus string

const (
	StatusWaiting  EntryStatus = "waiting"
	StatusSelected EntryStatus = "selected"
	StatusEnrolled EntryStatus = "enrolled"
	StatusCanceled EntryStatus = "canceled"
)

var entryTransitions = map[EntryStatus][]EntryStatus{
	StatusWaiting:  {StatusSelected},
	StatusSelected: {StatusEnrolled, StatusCanceled},
	StatusEnrolled: {StatusCanceled},
}

// Valid reports whether s is a known status.
func (s EntryStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusSelected, StatusEnrolled, StatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Nothing ever returns to waiting.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	for _, allowed := range entryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// WaitingListEntry is one entrant's record on an event's waiting list.
// ID identifies the record and is distinct from UserID.
// swagger:model WaitingListEntry
type WaitingListEntry struct {
	ID           string      `json:"id"`
	EventID      string      `json:"event_id"`
	UserID       string      `json:"user_id"`
	Status       EntryStatus `json:"status"`
	JoinedDate   time.Time   `json:"joined_date"`
	SelectedDate *time.Time  `json:"selected_date,omitempty"`
	EnrolledDate *time.Time  `json:"enrolled_date,omitempty"`
	CanceledDate *time.Time  `json:"canceled_date,omitempty"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
}

// IsCandidate reports whether the entry can be drawn.
func (e *WaitingListEntry) IsCandidate() bool {
	return e.Status == StatusWaiting && strings.TrimSpace(e.UserID) != ""
}

// StampTransition sets the date field that belongs to status.
func (e *WaitingListEntry) StampTransition(status EntryStatus, at time.Time) {
	e.Status = status
	switch status {
	case StatusSelected:
		e.SelectedDate = &at
	case StatusEnrolled:
		e.EnrolledDate = &at
	case StatusCanceled:
		e.CanceledDate = &at
	}
}

// WaitingListRepository defines the interface for waiting list storage.
type WaitingListRepository interface {
	// Create adds an entry. It returns ErrAlreadyJoined when the user already
	// holds a non-canceled entry for the event.
	Create(ctx context.Context, entry *WaitingListEntry) error
	GetByID(ctx context.Context, eventID, entryID string) (*WaitingListEntry, error)
	// ListByStatus returns the event's entries in the given status ordered by
	// joined date, then id.
	ListByStatus(ctx context.Context, eventID string, status EntryStatus) ([]*WaitingListEntry, error)
	CountByStatus(ctx context.Context, eventID string) (map[EntryStatus]int, error)
	// Transition moves one entry from one status to another and stamps the
	// matching date. It returns ErrInvalidTransition when the entry is no
	// longer in the from status.
	Transition(ctx context.Context, eventID, entryID string, from, to EntryStatus, at time.Time) (*WaitingListEntry, error)
	// CancelSelectedBefore cancels, in one batch, every selected entry whose
	// selection date is before cutoff and returns the canceled entries.
	CancelSelectedBefore(ctx context.Context, eventID string, cutoff, at time.Time) ([]*WaitingListEntry, error)
}
