package domain

import "errors"

// Sentinel errors shared by the services and adapters. Callers match them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyJoined = errors.New("user is already on the waiting list")

	ErrAlreadyDrawn = errors.New("lottery already drawn for this event")
	ErrInvalidQuota = errors.New("draw capacity must be greater than zero")

	ErrMissingRegStop        = errors.New("registration deadline is not set")
	ErrInvalidRegStopFormat  = errors.New("registration deadline has an invalid format")
	ErrRegistrationStillOpen = errors.New("registration deadline has not passed yet")
	ErrRegistrationClosed    = errors.New("registration is closed")

	// ErrStoreFailure wraps any read or write failure of the backing store.
	ErrStoreFailure = errors.New("store failure")
	// ErrCandidateChanged is returned by a draw commit when a selected entry left
	// the waiting state between the candidate query and the commit.
	ErrCandidateChanged  = errors.New("candidate changed before commit")
	ErrInvalidTransition = errors.New("invalid status transition")
)
