package helpers

import (
	"errors"
	"net/http"

	"eventlottery/internal/domain"
)

// errorMapping pairs a domain sentinel with its HTTP status and error code.
// Order matters: store failures wrap their cause, so they are matched first.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrStoreFailure, http.StatusServiceUnavailable, ErrCodeStoreFailure},
	{domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden},
	{domain.ErrInvalidInput, http.StatusBadRequest, ErrCodeBadRequest},
	{domain.ErrAlreadyDrawn, http.StatusConflict, ErrCodeAlreadyDrawn},
	{domain.ErrAlreadyJoined, http.StatusConflict, ErrCodeAlreadyJoined},
	{domain.ErrInvalidTransition, http.StatusConflict, ErrCodeInvalidTransition},
	{domain.ErrInvalidQuota, http.StatusUnprocessableEntity, ErrCodeInvalidQuota},
	{domain.ErrMissingRegStop, http.StatusUnprocessableEntity, ErrCodeMissingRegStop},
	{domain.ErrInvalidRegStopFormat, http.StatusUnprocessableEntity, ErrCodeInvalidRegStop},
	{domain.ErrRegistrationStillOpen, http.StatusUnprocessableEntity, ErrCodeRegistrationOpen},
	{domain.ErrRegistrationClosed, http.StatusUnprocessableEntity, ErrCodeRegistrationEnded},
}

// StatusForError maps a service error to its HTTP status and error code.
// Unknown errors map to 500 internal_error.
func StatusForError(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}

// WriteServiceError writes err using StatusForError. Store and internal
// failures get a generic message; everything else carries err's text.
func WriteServiceError(w http.ResponseWriter, err error) {
	status, code := StatusForError(err)
	msg := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		msg = "storage is temporarily unavailable"
	case http.StatusInternalServerError:
		msg = "internal error"
	}
	WriteJSONError(w, status, code, msg)
}
