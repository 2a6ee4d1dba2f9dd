package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes the repositories translate into domain errors.
const (
	codeInvalidText         = "22P02"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// isMalformedID reports whether the lookup failed because an id is not a valid uuid.
// Such ids can never exist, so callers treat them as not found.
func isMalformedID(err error) bool {
	return pqCode(err) == codeInvalidText
}
