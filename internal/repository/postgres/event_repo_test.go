package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventlottery/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var eventCols = []string{"id", "name", "draw_capacity", "draw_completed", "draw_date", "selected_count", "reg_stop", "unresponsive_hours", "created_at", "updated_at"}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	regStop := "2025-02-01T18:00:00"

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:  "success",
			event: &domain.Event{Name: "Swim Lessons", DrawCapacity: 10, RegStop: &regStop, CreatedAt: created, UpdatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(name, draw_capacity, reg_stop, unresponsive_hours, created_at, updated_at\)`).
					WithArgs("Swim Lessons", 10, regStop, nil, created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name:  "db error",
			event: &domain.Event{Name: "Pottery", DrawCapacity: 4, CreatedAt: created, UpdatedAt: created},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewEventRepository(db).Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	drawn := time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)
	regStop := "2025-02-01T18:00:00"
	hours := 48

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success with optional fields",
			id:   "ev-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, draw_capacity, draw_completed, draw_date, selected_count, reg_stop, unresponsive_hours, created_at, updated_at FROM events WHERE id = \$1`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-1", "Swim Lessons", 10, true, drawn, 10, regStop, 48, created, created))
			},
			want: &domain.Event{
				ID: "ev-1", Name: "Swim Lessons", DrawCapacity: 10, DrawCompleted: true, DrawDate: &drawn,
				SelectedCount: 10, RegStop: &regStop, UnresponsiveHours: &hours, CreatedAt: created, UpdatedAt: created,
			},
		},
		{
			name: "success with nulls",
			id:   "ev-2",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE id = \$1`).
					WithArgs("ev-2").
					WillReturnRows(sqlmock.NewRows(eventCols).
						AddRow("ev-2", "Pottery", 0, false, nil, 0, nil, nil, created, created))
			},
			want: &domain.Event{ID: "ev-2", Name: "Pottery", CreatedAt: created, UpdatedAt: created},
		},
		{
			name: "not found",
			id:   "missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE id = \$1`).WithArgs("missing").WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "malformed id",
			id:   "not-a-uuid",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE id = \$1`).WithArgs("not-a-uuid").WillReturnError(&pq.Error{Code: "22P02"})
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			id:   "ev-3",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM events WHERE id = \$1`).WithArgs("ev-3").WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewEventRepository(db).GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_ListUndrawn(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM events\s+WHERE draw_completed = FALSE\s+ORDER BY created_at, id`).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("ev-1", "A", 3, false, nil, 0, "2025-02-01T18:00:00", nil, created, created).
			AddRow("ev-2", "B", 5, false, nil, 0, nil, nil, created, created))

	got, err := NewEventRepository(db).ListUndrawn(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "ev-1", got[0].ID)
	require.NotNil(t, got[0].RegStop)
	require.Nil(t, got[1].RegStop)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListUndrawn_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM events`).WillReturnRows(sqlmock.NewRows(eventCols))

	got, err := NewEventRepository(db).ListUndrawn(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}
