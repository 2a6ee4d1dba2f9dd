package services

import (
	"context"
	"errors"
	"fmt"

	"eventlottery/internal/domain"
)

type broadcastService struct {
	eventRepo domain.EventRepository
	entryRepo domain.WaitingListRepository
	notifier  domain.NotificationService
}

func NewBroadcastService(eventRepo domain.EventRepository, entryRepo domain.WaitingListRepository, notifier domain.NotificationService) domain.BroadcastService {
	return &broadcastService{eventRepo: eventRepo, entryRepo: entryRepo, notifier: notifier}
}

var poolStatus = map[domain.EntrantPool]domain.EntryStatus{
	domain.PoolSelected:    domain.StatusSelected,
	domain.PoolNotSelected: domain.StatusWaiting,
	domain.PoolWaiting:     domain.StatusWaiting,
	domain.PoolCanceled:    domain.StatusCanceled,
}

// NotifyPool sends the pool's preset message. The not-selected pool only
// exists once the event has been drawn.
func (s *broadcastService) NotifyPool(ctx context.Context, eventID string, pool domain.EntrantPool) (domain.NotifyResult, error) {
	status, ok := poolStatus[pool]
	if !ok {
		return domain.NotifyResult{}, fmt.Errorf("unknown pool %q: %w", pool, domain.ErrInvalidInput)
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotifyResult{}, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return domain.NotifyResult{}, storeFailure("load event", err)
	}
	if pool == domain.PoolNotSelected && !event.DrawCompleted {
		return domain.NotifyResult{}, fmt.Errorf("event %s has not been drawn yet: %w", eventID, domain.ErrInvalidInput)
	}

	entries, err := s.entryRepo.ListByStatus(ctx, eventID, status)
	if err != nil {
		return domain.NotifyResult{}, storeFailure("load pool", err)
	}
	recipients := make([]string, 0, len(entries))
	for _, e := range entries {
		recipients = append(recipients, e.UserID)
	}
	msg := poolMessage(pool, event.Name)
	return s.notifier.Notify(ctx, domain.NotifyRequest{
		Recipients: recipients,
		Title:      msg.title,
		Body:       msg.body,
		Category:   msg.category,
		EventID:    eventID,
		EventName:  event.Name,
	})
}
