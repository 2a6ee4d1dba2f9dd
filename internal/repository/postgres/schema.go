package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates the lottery tables. Safe to call on every start.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS events (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    draw_capacity INTEGER NOT NULL DEFAULT 0,
    draw_completed BOOLEAN NOT NULL DEFAULT FALSE,
    draw_date TIMESTAMPTZ,
    selected_count INTEGER NOT NULL DEFAULT 0,
    reg_stop TEXT,
    unresponsive_hours INTEGER,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_events_undrawn ON events(draw_completed) WHERE draw_completed = FALSE;

CREATE TABLE IF NOT EXISTS waiting_list_entries (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    event_id UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'waiting' CHECK (status IN ('waiting', 'selected', 'enrolled', 'canceled')),
    joined_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    selected_date TIMESTAMPTZ,
    enrolled_date TIMESTAMPTZ,
    canceled_date TIMESTAMPTZ,
    latitude DOUBLE PRECISION,
    longitude DOUBLE PRECISION
);

CREATE INDEX IF NOT EXISTS idx_waiting_list_event_status ON waiting_list_entries(event_id, status, joined_date, id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_waiting_list_active_user
    ON waiting_list_entries(event_id, user_id) WHERE status <> 'canceled';

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT,
    notifications_enabled BOOLEAN,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY,
    user_id TEXT NOT NULL,
    event_id TEXT NOT NULL,
    event_name TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    read BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, created_at DESC);
`
