package domain

import (
	"context"
	"time"
)

// DrawKind distinguishes the initial lottery from replacement draws.
type DrawKind string

const (
	DrawKindLottery     DrawKind = "lottery"
	DrawKindReplacement DrawKind = "replacement"
)

// Candidate is a drawable entry: a waiting list record paired with its user.
type Candidate struct {
	EntryID string `json:"entry_id"`
	UserID  string `json:"user_id"`
}

// DrawCommit describes one atomic draw write.
//
// For DrawKindLottery the event is marked drawn with SelectedCount set to
// len(Selected), only while it is still undrawn. For DrawKindReplacement the
// event's SelectedCount is incremented and its drawn flag is left alone.
// In both cases every selected entry must still be waiting.
type DrawCommit struct {
	EventID  string
	Kind     DrawKind
	Selected []Candidate
	DrawnAt  time.Time
}

// DrawRepository commits draws. CommitDraw is all-or-nothing: it returns
// ErrAlreadyDrawn or ErrCandidateChanged without writing anything when a
// condition fails.
type DrawRepository interface {
	CommitDraw(ctx context.Context, commit DrawCommit) error
}

// DrawOutcome is returned by both draw executors.
// swagger:model DrawOutcome
type DrawOutcome struct {
	EventID         string     `json:"event_id"`
	Kind            DrawKind   `json:"kind"`
	SelectedCount   int        `json:"selected_count"`
	WaitingCount    int        `json:"waiting_count"`
	SelectedUserIDs []string   `json:"selected_user_ids"`
	DrawnAt         *time.Time `json:"drawn_at,omitempty"`
}

// LotteryService runs the initial and replacement draws.
type LotteryService interface {
	RunLottery(ctx context.Context, eventID string) (*DrawOutcome, error)
	// RunReplacement draws up to vacancies more entrants. An empty eventName
	// falls back to the stored event name.
	RunReplacement(ctx context.Context, eventID, eventName string, vacancies int) (*DrawOutcome, error)
}

// SweepReport summarises one scheduler pass.
// swagger:model SweepReport
type SweepReport struct {
	Scanned  int  `json:"scanned"`
	Eligible int  `json:"eligible"`
	Drawn    int  `json:"drawn"`
	Skipped  int  `json:"skipped"`
	Failed   int  `json:"failed"`
	Leased   bool `json:"leased"`
}

// DrawScheduler triggers lotteries once registration closes.
type DrawScheduler interface {
	Sweep(ctx context.Context) SweepReport
	RunManual(ctx context.Context, eventID string) (*DrawOutcome, error)
}

// DrawEvent is published after every committed draw.
type DrawEvent struct {
	EventID         string    `json:"event_id"`
	EventName       string    `json:"event_name"`
	Kind            DrawKind  `json:"kind"`
	SelectedUserIDs []string  `json:"selected_user_ids"`
	SelectedCount   int       `json:"selected_count"`
	WaitingCount    int       `json:"waiting_count"`
	DrawnAt         time.Time `json:"drawn_at"`
}

// DrawPublisher emits committed draws to downstream consumers.
type DrawPublisher interface {
	PublishDraw(ctx context.Context, event DrawEvent) error
}

// Locker is a best-effort distributed lock keyed by name.
type Locker interface {
	// Acquire returns a token and true when the lock was taken.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release drops the lock only if it is still held with token.
	Release(ctx context.Context, key, token string) error
}
