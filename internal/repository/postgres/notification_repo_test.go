package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventlottery/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepository_Create(t *testing.T) {
	created := time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notifications \(id, user_id, event_id, event_name, category, title, body, created_at, read\)`).
					WithArgs("n-1", "u1", "ev-1", "Swim Lessons", "lottery_selected", "Selected", "You won", created, false).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notifications`).WillReturnError(sql.ErrConnDone)
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
			err = NewNotificationRepository(db).Create(context.Background(), &domain.Notification{
				ID: "n-1", UserID: "u1", EventID: "ev-1", EventName: "Swim Lessons",
				Category: domain.CategoryLotterySelected, Title: "Selected", Body: "You won", CreatedAt: created,
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_Create_GeneratesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO notifications`).WillReturnResult(sqlmock.NewResult(0, 1))

	n := &domain.Notification{UserID: "u1", EventID: "ev-1", Category: domain.CategoryNotSelected}
	require.NoError(t, NewNotificationRepository(db).Create(context.Background(), n))
	require.Len(t, n.ID, 36)
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	created := time.Date(2025, 2, 2, 9, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM notifications\s+WHERE user_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2`).
		WithArgs("u1", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "event_id", "event_name", "category", "title", "body", "created_at", "read"}).
			AddRow("n-1", "u1", "ev-1", "Swim Lessons", "lottery_selected", "Selected", "You won", created, false))

	got, err := NewNotificationRepository(db).ListByUser(context.Background(), "u1", 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, domain.CategoryLotterySelected, got[0].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}
