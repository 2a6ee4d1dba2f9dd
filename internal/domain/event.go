package domain

import (
	"context"
	"strings"
	"time"
)

// RegStopLayout is the local-time layout registration deadlines are stored in.
const RegStopLayout = "2006-01-02T15:04:05"

// Event is a capacity-limited event whose waiting list is drawn by lottery.
// swagger:model Event
type Event struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	DrawCapacity  int        `json:"draw_capacity"`
	DrawCompleted bool       `json:"draw_completed"`
	DrawDate      *time.Time `json:"draw_date,omitempty"`
	SelectedCount int        `json:"selected_count"`
	RegStop       *string    `json:"reg_stop,omitempty"`
	// UnresponsiveHours overrides how long a selected entrant may stay silent
	// before CancelUnresponsive releases the seat.
	UnresponsiveHours *int      `json:"unresponsive_hours,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(name string, drawCapacity int, regStop *string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:         name,
		DrawCapacity: drawCapacity,
		RegStop:      regStop,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ParseRegStop parses a registration deadline. The stored layout carries no
// zone and is read in loc; RFC 3339 values with an explicit offset are also accepted.
func ParseRegStop(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	v := strings.TrimSpace(value)
	if t, err := time.ParseInLocation(RegStopLayout, v, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidRegStopFormat
}

// RegistrationDeadline returns the parsed deadline, ErrMissingRegStop when
// none is set, or ErrInvalidRegStopFormat when it cannot be parsed.
func (e *Event) RegistrationDeadline(loc *time.Location) (time.Time, error) {
	if e.RegStop == nil || strings.TrimSpace(*e.RegStop) == "" {
		return time.Time{}, ErrMissingRegStop
	}
	return ParseRegStop(*e.RegStop, loc)
}

// RegistrationClosed reports whether now is strictly after the deadline.
// A missing or malformed deadline is reported as an error and never as closed.
func (e *Event) RegistrationClosed(now time.Time, loc *time.Location) (bool, error) {
	deadline, err := e.RegistrationDeadline(loc)
	if err != nil {
		return false, err
	}
	return now.After(deadline), nil
}

// UnresponsiveWindow returns the event's override or fallback.
func (e *Event) UnresponsiveWindow(fallback time.Duration) time.Duration {
	if e.UnresponsiveHours != nil && *e.UnresponsiveHours > 0 {
		return time.Duration(*e.UnresponsiveHours) * time.Hour
	}
	return fallback
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListUndrawn returns every event whose draw has not completed.
	ListUndrawn(ctx context.Context) ([]*Event, error)
}

// EventService defines the organizer-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
}
