package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eventlottery/internal/domain"
)

const entryColumns = `id, event_id, user_id, status, joined_date, selected_date, enrolled_date, canceled_date, latitude, longitude`

// transitionDateColumn maps a target status to the column stamped on entry.
var transitionDateColumn = map[domain.EntryStatus]string{
	domain.StatusSelected: "selected_date",
	domain.StatusEnrolled: "enrolled_date",
	domain.StatusCanceled: "canceled_date",
}

type waitingListRepository struct {
	DB *sql.DB
}

func NewWaitingListRepository(db *sql.DB) domain.WaitingListRepository {
	return &waitingListRepository{
		DB: db,
	}
}

func (r *waitingListRepository) Create(ctx context.Context, e *domain.WaitingListEntry) error {
	query := `
		INSERT INTO waiting_list_entries (event_id, user_id, status, joined_date, latitude, longitude)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.EventID, e.UserID, string(e.Status), e.JoinedDate, nullFloat(e.Latitude), nullFloat(e.Longitude),
	).Scan(&e.ID)
	if err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return domain.ErrAlreadyJoined
		case codeForeignKeyViolation, codeInvalidText:
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *waitingListRepository) GetByID(ctx context.Context, eventID, entryID string) (*domain.WaitingListEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM waiting_list_entries WHERE event_id = $1 AND id = $2`
	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, eventID, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *waitingListRepository) ListByStatus(ctx context.Context, eventID string, status domain.EntryStatus) ([]*domain.WaitingListEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM waiting_list_entries
		WHERE event_id = $1 AND status = $2
		ORDER BY joined_date, id
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, string(status))
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func (r *waitingListRepository) CountByStatus(ctx context.Context, eventID string) (map[domain.EntryStatus]int, error) {
	query := `SELECT status, COUNT(*) FROM waiting_list_entries WHERE event_id = $1 GROUP BY status`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[domain.EntryStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[domain.EntryStatus(status)] = n
	}
	return counts, rows.Err()
}

func (r *waitingListRepository) Transition(ctx context.Context, eventID, entryID string, from, to domain.EntryStatus, at time.Time) (*domain.WaitingListEntry, error) {
	col, ok := transitionDateColumn[to]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransition, to)
	}
	query := fmt.Sprintf(`
		UPDATE waiting_list_entries
		SET status = $4, %s = $5
		WHERE event_id = $1 AND id = $2 AND status = $3
		RETURNING %s
	`, col, entryColumns)
	e, err := scanEntry(r.DB.QueryRowContext(ctx, query, eventID, entryID, string(from), string(to), at))
	if err == nil {
		return e, nil
	}
	if isMalformedID(err) {
		return nil, domain.ErrNotFound
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM waiting_list_entries WHERE event_id = $1 AND id = $2)`,
		eventID, entryID,
	).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrInvalidTransition
}

func (r *waitingListRepository) CancelSelectedBefore(ctx context.Context, eventID string, cutoff, at time.Time) ([]*domain.WaitingListEntry, error) {
	query := `
		UPDATE waiting_list_entries
		SET status = 'canceled', canceled_date = $3
		WHERE event_id = $1 AND status = 'selected' AND selected_date < $2
		RETURNING ` + entryColumns
	rows, err := r.DB.QueryContext(ctx, query, eventID, cutoff, at)
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]*domain.WaitingListEntry, error) {
	defer rows.Close()
	entries := make([]*domain.WaitingListEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(row rowScanner) (*domain.WaitingListEntry, error) {
	e := &domain.WaitingListEntry{}
	var status string
	var selected, enrolled, canceled sql.NullTime
	var lat, lng sql.NullFloat64
	err := row.Scan(
		&e.ID, &e.EventID, &e.UserID, &status, &e.JoinedDate,
		&selected, &enrolled, &canceled, &lat, &lng,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EntryStatus(status)
	if selected.Valid {
		e.SelectedDate = &selected.Time
	}
	if enrolled.Valid {
		e.EnrolledDate = &enrolled.Time
	}
	if canceled.Valid {
		e.CanceledDate = &canceled.Time
	}
	if lat.Valid {
		e.Latitude = &lat.Float64
	}
	if lng.Valid {
		e.Longitude = &lng.Float64
	}
	return e, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
