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

var entryCols = []string{"id", "event_id", "user_id", "status", "joined_date", "selected_date", "enrolled_date", "canceled_date", "latitude", "longitude"}

func TestWaitingListRepository_Create(t *testing.T) {
	ctx := context.Background()
	joined := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	lat := 53.52

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO waiting_list_entries \(event_id, user_id, status, joined_date, latitude, longitude\)`).
					WithArgs("ev-1", "u1", "waiting", joined, lat, nil).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("entry-1"))
			},
			wantID: "entry-1",
		},
		{
			name: "active duplicate",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO waiting_list_entries`).WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: domain.ErrAlreadyJoined,
		},
		{
			name: "unknown event",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO waiting_list_entries`).WillReturnError(&pq.Error{Code: "23503"})
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "malformed event id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO waiting_list_entries`).WillReturnError(&pq.Error{Code: "22P02"})
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			entry := &domain.WaitingListEntry{EventID: "ev-1", UserID: "u1", Status: domain.StatusWaiting, JoinedDate: joined, Latitude: &lat}
			err = NewWaitingListRepository(db).Create(ctx, entry)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, entry.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWaitingListRepository_ListByStatus(t *testing.T) {
	ctx := context.Background()
	joined := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM waiting_list_entries\s+WHERE event_id = \$1 AND status = \$2\s+ORDER BY joined_date, id`).
		WithArgs("ev-1", "waiting").
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow("e1", "ev-1", "u1", "waiting", joined, nil, nil, nil, 53.5, -113.5).
			AddRow("e2", "ev-1", "", "waiting", joined, nil, nil, nil, nil, nil))

	got, err := NewWaitingListRepository(db).ListByStatus(ctx, "ev-1", domain.StatusWaiting)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, domain.StatusWaiting, got[0].Status)
	require.NotNil(t, got[0].Latitude)
	require.Equal(t, 53.5, *got[0].Latitude)
	require.Equal(t, "", got[1].UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitingListRepository_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM waiting_list_entries WHERE event_id = \$1 GROUP BY status`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("selected", 3).
			AddRow("enrolled", 2))

	got, err := NewWaitingListRepository(db).CountByStatus(context.Background(), "ev-1")
	require.NoError(t, err)
	require.Equal(t, map[domain.EntryStatus]int{domain.StatusSelected: 3, domain.StatusEnrolled: 2}, got)
}

func TestWaitingListRepository_Transition(t *testing.T) {
	ctx := context.Background()
	joined := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	at := time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success stamps enrolled date",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE waiting_list_entries\s+SET status = \$4, enrolled_date = \$5\s+WHERE event_id = \$1 AND id = \$2 AND status = \$3`).
					WithArgs("ev-1", "e1", "selected", "enrolled", at).
					WillReturnRows(sqlmock.NewRows(entryCols).
						AddRow("e1", "ev-1", "u1", "enrolled", joined, joined, at, nil, nil, nil))
			},
		},
		{
			name: "entry in another status",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE waiting_list_entries`).WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM waiting_list_entries WHERE event_id = \$1 AND id = \$2\)`).
					WithArgs("ev-1", "e1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: domain.ErrInvalidTransition,
		},
		{
			name: "entry missing",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE waiting_list_entries`).WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-1", "e1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewWaitingListRepository(db).Transition(ctx, "ev-1", "e1", domain.StatusSelected, domain.StatusEnrolled, at)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, domain.StatusEnrolled, got.Status)
			require.NotNil(t, got.EnrolledDate)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWaitingListRepository_Transition_UnknownTarget(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewWaitingListRepository(db).Transition(context.Background(), "ev-1", "e1", domain.StatusSelected, domain.StatusWaiting, time.Now())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestWaitingListRepository_CancelSelectedBefore(t *testing.T) {
	joined := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	cutoff := time.Date(2025, 2, 2, 8, 0, 0, 0, time.UTC)
	at := time.Date(2025, 2, 3, 8, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE waiting_list_entries\s+SET status = 'canceled', canceled_date = \$3\s+WHERE event_id = \$1 AND status = 'selected' AND selected_date < \$2`).
		WithArgs("ev-1", cutoff, at).
		WillReturnRows(sqlmock.NewRows(entryCols).
			AddRow("e1", "ev-1", "u1", "canceled", joined, joined, nil, at, nil, nil))

	got, err := NewWaitingListRepository(db).CancelSelectedBefore(context.Background(), "ev-1", cutoff, at)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, domain.StatusCanceled, got[0].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
