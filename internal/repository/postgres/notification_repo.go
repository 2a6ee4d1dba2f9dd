package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"eventlottery/internal/domain"
)

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) domain.NotificationRepository {
	return &notificationRepository{
		DB: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	query := `
		INSERT INTO notifications (id, user_id, event_id, event_name, category, title, body, created_at, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		n.ID, n.UserID, n.EventID, n.EventName, string(n.Category), n.Title, n.Body, n.CreatedAt, n.Read,
	)
	return err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, event_id, event_name, category, title, body, created_at, read
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		var category string
		if err := rows.Scan(&n.ID, &n.UserID, &n.EventID, &n.EventName, &category, &n.Title, &n.Body, &n.CreatedAt, &n.Read); err != nil {
			return nil, err
		}
		n.Category = domain.NotificationCategory(category)
		out = append(out, n)
	}
	return out, rows.Err()
}
