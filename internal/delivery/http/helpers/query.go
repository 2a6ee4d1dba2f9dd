package helpers

import (
	"net/http"
	"strconv"
)

// ParseLimit reads the limit query parameter. Missing, malformed, or
// non-positive values return 0 so the service applies its default.
func ParseLimit(r *http.Request) int {
	s := r.URL.Query().Get("limit")
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0
	}
	return v
}
