package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventlottery/internal/domain"
)

const eventColumns = `id, name, draw_capacity, draw_completed, draw_date, selected_count, reg_stop, unresponsive_hours, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, draw_capacity, reg_stop, unresponsive_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var regStop sql.NullString
	if e.RegStop != nil {
		regStop = sql.NullString{String: *e.RegStop, Valid: true}
	}
	var hours sql.NullInt64
	if e.UnresponsiveHours != nil {
		hours = sql.NullInt64{Int64: int64(*e.UnresponsiveHours), Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query, e.Name, e.DrawCapacity, regStop, hours, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isMalformedID(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListUndrawn(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE draw_completed = FALSE
		ORDER BY created_at, id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var drawDate sql.NullTime
	var regStop sql.NullString
	var hours sql.NullInt64
	err := row.Scan(
		&e.ID, &e.Name, &e.DrawCapacity, &e.DrawCompleted, &drawDate, &e.SelectedCount,
		&regStop, &hours, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if drawDate.Valid {
		e.DrawDate = &drawDate.Time
	}
	if regStop.Valid {
		e.RegStop = &regStop.String
	}
	if hours.Valid {
		h := int(hours.Int64)
		e.UnresponsiveHours = &h
	}
	return e, nil
}
