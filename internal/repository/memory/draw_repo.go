package memory

import (
	"context"

	"eventlottery/internal/domain"
)

type drawRepository struct {
	s *Store
}

// NewDrawRepository returns a DrawRepository backed by s.
func NewDrawRepository(s *Store) domain.DrawRepository {
	return &drawRepository{s: s}
}

func (r *drawRepository) CommitDraw(ctx context.Context, c domain.DrawCommit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ev, ok := r.s.events[c.EventID]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Kind == domain.DrawKindLottery && ev.DrawCompleted {
		return domain.ErrAlreadyDrawn
	}
	entries := r.s.entries[c.EventID]
	for _, cand := range c.Selected {
		e, ok := entries[cand.EntryID]
		if !ok || e.Status != domain.StatusWaiting {
			return domain.ErrCandidateChanged
		}
	}

	for _, cand := range c.Selected {
		entries[cand.EntryID].StampTransition(domain.StatusSelected, c.DrawnAt)
	}
	switch c.Kind {
	case domain.DrawKindLottery:
		drawnAt := c.DrawnAt
		ev.DrawCompleted = true
		ev.DrawDate = &drawnAt
		ev.SelectedCount = len(c.Selected)
	default:
		ev.SelectedCount += len(c.Selected)
	}
	ev.UpdatedAt = c.DrawnAt
	return nil
}
