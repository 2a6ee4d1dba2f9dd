package domain

import (
	"context"
	"time"
)

// NotificationCategory classifies a notification and selects its email template.
type NotificationCategory string

const (
	CategoryLotterySelected     NotificationCategory = "lottery_selected"
	CategoryReplacementSelected NotificationCategory = "replacement_selected"
	CategoryNotSelected         NotificationCategory = "not_selected"
	CategoryWaitingList         NotificationCategory = "waiting_list_announcement"
	CategorySelectedReminder    NotificationCategory = "selected_reminder"
	CategoryCanceledNotice      NotificationCategory = "canceled_notice"
)

// Notification is one in-app inbox message.
// swagger:model Notification
type Notification struct {
	ID        string               `json:"id"`
	UserID    string               `json:"user_id"`
	EventID   string               `json:"event_id"`
	EventName string               `json:"event_name"`
	Category  NotificationCategory `json:"category"`
	Title     string               `json:"title"`
	Body      string               `json:"body"`
	CreatedAt time.Time            `json:"created_at"`
	Read      bool                 `json:"read"`
}

// NotificationRepository defines the interface for the in-app inbox.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error)
}

// NotifyRequest is a batch of identical messages to several recipients.
type NotifyRequest struct {
	Recipients []string
	Title      string
	Body       string
	Category   NotificationCategory
	EventID    string
	EventName  string
}

// NotifyResult aggregates per-recipient delivery outcomes.
// swagger:model NotifyResult
type NotifyResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// NotificationService delivers messages to entrants that opted in.
type NotificationService interface {
	Notify(ctx context.Context, req NotifyRequest) (NotifyResult, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]*Notification, error)
	SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) (*User, error)
}

// EntrantPool names a group of entrants on one event's waiting list.
type EntrantPool string

const (
	PoolSelected    EntrantPool = "selected"
	PoolNotSelected EntrantPool = "not_selected"
	PoolWaiting     EntrantPool = "waiting"
	PoolCanceled    EntrantPool = "canceled"
)

// BroadcastService sends preset messages to an entrant pool.
type BroadcastService interface {
	NotifyPool(ctx context.Context, eventID string, pool EntrantPool) (NotifyResult, error)
}
