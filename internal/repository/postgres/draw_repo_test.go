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

func TestDrawRepository_CommitDraw(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)
	two := []domain.Candidate{{EntryID: "e1", UserID: "u1"}, {EntryID: "e2", UserID: "u2"}}

	tests := []struct {
		name    string
		commit  domain.DrawCommit
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:   "lottery commits event and entries",
			commit: domain.DrawCommit{EventID: "ev-1", Kind: domain.DrawKindLottery, Selected: two, DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events\s+SET draw_completed = TRUE, draw_date = \$2, selected_count = \$3, updated_at = \$2\s+WHERE id = \$1 AND draw_completed = FALSE`).
					WithArgs("ev-1", at, 2).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE waiting_list_entries\s+SET status = 'selected', selected_date = \$3\s+WHERE event_id = \$1 AND id = ANY\(\$2\) AND status = 'waiting'`).
					WithArgs("ev-1", pq.Array([]string{"e1", "e2"}), at).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name:   "lottery with empty pool only marks event",
			commit: domain.DrawCommit{EventID: "ev-1", Kind: domain.DrawKindLottery, DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).WithArgs("ev-1", at, 0).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "lottery on drawn event rolls back",
			commit: domain.DrawCommit{EventID: "ev-1", Kind: domain.DrawKindLottery, Selected: two, DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).WithArgs("ev-1", at, 2).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM events WHERE id = \$1\)`).
					WithArgs("ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrAlreadyDrawn,
		},
		{
			name:   "missing event rolls back",
			commit: domain.DrawCommit{EventID: "ev-9", Kind: domain.DrawKindReplacement, Selected: two, DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).WithArgs("ev-9", at, 2).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs("ev-9").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "candidate left waiting rolls back",
			commit: domain.DrawCommit{EventID: "ev-1", Kind: domain.DrawKindLottery, Selected: two, DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).WithArgs("ev-1", at, 2).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE waiting_list_entries`).
					WithArgs("ev-1", pq.Array([]string{"e1", "e2"}), at).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectRollback()
			},
			wantErr: domain.ErrCandidateChanged,
		},
		{
			name:   "replacement increments selected count",
			commit: domain.DrawCommit{EventID: "ev-1", Kind: domain.DrawKindReplacement, Selected: two[:1], DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events\s+SET selected_count = selected_count \+ \$3, updated_at = \$2\s+WHERE id = \$1`).
					WithArgs("ev-1", at, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE waiting_list_entries`).
					WithArgs("ev-1", pq.Array([]string{"e1"}), at).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name:   "entry update error rolls back",
			commit: domain.DrawCommit{EventID: "ev-1", Kind: domain.DrawKindLottery, Selected: two, DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`UPDATE events`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`UPDATE waiting_list_entries`).WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
		{
			name:   "begin error",
			commit: domain.DrawCommit{EventID: "ev-1", Kind: domain.DrawKindLottery, DrawnAt: at},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
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
			err = NewDrawRepository(db).CommitDraw(ctx, tt.commit)
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
