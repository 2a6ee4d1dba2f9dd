package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"eventlottery/internal/domain"
)

type drawRepository struct {
	DB *sql.DB
}

// NewDrawRepository returns a DrawRepository that commits each draw in one transaction.
func NewDrawRepository(db *sql.DB) domain.DrawRepository {
	return &drawRepository{
		DB: db,
	}
}

// CommitDraw updates the event row first so concurrent commits for the same
// event serialize on its row lock; the loser sees draw_completed already set.
func (r *drawRepository) CommitDraw(ctx context.Context, c domain.DrawCommit) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin draw: %w", err)
	}
	if err := commitDrawTx(ctx, tx, c); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit draw: %w", err)
	}
	return nil
}

func commitDrawTx(ctx context.Context, tx *sql.Tx, c domain.DrawCommit) error {
	n := len(c.Selected)
	var result sql.Result
	var err error
	switch c.Kind {
	case domain.DrawKindLottery:
		result, err = tx.ExecContext(ctx, `
			UPDATE events
			SET draw_completed = TRUE, draw_date = $2, selected_count = $3, updated_at = $2
			WHERE id = $1 AND draw_completed = FALSE
		`, c.EventID, c.DrawnAt, n)
	case domain.DrawKindReplacement:
		result, err = tx.ExecContext(ctx, `
			UPDATE events
			SET selected_count = selected_count + $3, updated_at = $2
			WHERE id = $1
		`, c.EventID, c.DrawnAt, n)
	default:
		return fmt.Errorf("unknown draw kind %q", c.Kind)
	}
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, c.EventID).Scan(&exists); err != nil {
			return fmt.Errorf("check event: %w", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyDrawn
	}

	if n == 0 {
		return nil
	}
	ids := make([]string, n)
	for i, cand := range c.Selected {
		ids[i] = cand.EntryID
	}
	result, err = tx.ExecContext(ctx, `
		UPDATE waiting_list_entries
		SET status = 'selected', selected_date = $3
		WHERE event_id = $1 AND id = ANY($2) AND status = 'waiting'
	`, c.EventID, pq.Array(ids), c.DrawnAt)
	if err != nil {
		return fmt.Errorf("select entries: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows != int64(n) {
		return domain.ErrCandidateChanged
	}
	return nil
}
