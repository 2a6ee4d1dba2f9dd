package domain

import "context"

// InvitationResult is returned by entrant actions. Replacement is set when
// the action released a seat and a backfill draw ran.
// swagger:model InvitationResult
type InvitationResult struct {
	Entry            *WaitingListEntry `json:"entry"`
	Replacement      *DrawOutcome      `json:"replacement,omitempty"`
	ReplacementError string            `json:"replacement_error,omitempty"`
}

// UnresponsiveResult reports a CancelUnresponsive pass.
// swagger:model UnresponsiveResult
type UnresponsiveResult struct {
	Canceled         int          `json:"canceled"`
	Replacement      *DrawOutcome `json:"replacement,omitempty"`
	ReplacementError string       `json:"replacement_error,omitempty"`
}

// InvitationService implements entrant actions on a waiting list.
type InvitationService interface {
	Join(ctx context.Context, eventID, userID string, latitude, longitude *float64) (*WaitingListEntry, error)
	Accept(ctx context.Context, eventID, entryID, userID string) (*InvitationResult, error)
	Decline(ctx context.Context, eventID, entryID, userID string) (*InvitationResult, error)
	Cancel(ctx context.Context, eventID, entryID, userID string) (*InvitationResult, error)
	CancelUnresponsive(ctx context.Context, eventID string) (*UnresponsiveResult, error)
	// FillOpenSeats draws replacements for every seat not held by a selected
	// or enrolled entrant.
	FillOpenSeats(ctx context.Context, eventID string) (*DrawOutcome, error)
}
