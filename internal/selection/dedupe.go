package selection

import (
	"strings"

	"eventlottery/internal/domain"
)

// DropReason explains why an entry was excluded from the candidate pool.
type DropReason string

const (
	DropMissingUserID DropReason = "missing_user_id"
	DropDuplicateUser DropReason = "duplicate_user_id"
	DropNotWaiting    DropReason = "not_waiting"
)

// Dropped is an entry Dedupe excluded.
type Dropped struct {
	EntryID string
	UserID  string
	Reason  DropReason
}

// Dedupe turns waiting list entries into candidates unique by user id.
// The first entry seen for a user wins, so callers control precedence
// through the order of entries.
func Dedupe(entries []*domain.WaitingListEntry) ([]domain.Candidate, []Dropped) {
	candidates := make([]domain.Candidate, 0, len(entries))
	var dropped []Dropped
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		userID := strings.TrimSpace(e.UserID)
		switch {
		case userID == "":
			dropped = append(dropped, Dropped{EntryID: e.ID, Reason: DropMissingUserID})
			continue
		case e.Status != domain.StatusWaiting:
			dropped = append(dropped, Dropped{EntryID: e.ID, UserID: userID, Reason: DropNotWaiting})
			continue
		}
		if _, dup := seen[userID]; dup {
			dropped = append(dropped, Dropped{EntryID: e.ID, UserID: userID, Reason: DropDuplicateUser})
			continue
		}
		seen[userID] = struct{}{}
		candidates = append(candidates, domain.Candidate{EntryID: e.ID, UserID: userID})
	}
	return candidates, dropped
}
