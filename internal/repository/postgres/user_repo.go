package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventlottery/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{
		DB: db,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, notifications_enabled, updated_at FROM users WHERE id = $1`
	u, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepository) SetNotificationsEnabled(ctx context.Context, id string, enabled bool) (*domain.User, error) {
	query := `
		INSERT INTO users (id, notifications_enabled, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET notifications_enabled = EXCLUDED.notifications_enabled, updated_at = EXCLUDED.updated_at
		RETURNING id, email, notifications_enabled, updated_at
	`
	return scanUser(r.DB.QueryRowContext(ctx, query, id, enabled, time.Now()))
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	var email sql.NullString
	var enabled sql.NullBool
	if err := row.Scan(&u.ID, &email, &enabled, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Email = email.String
	if enabled.Valid {
		u.NotificationsEnabled = &enabled.Bool
	}
	return u, nil
}
