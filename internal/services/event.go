package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventlottery/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
	location       *time.Location
}

func NewEventService(eventRepo domain.EventRepository, location *time.Location, timeout time.Duration) domain.EventService {
	if location == nil {
		location = time.Local
	}
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
		location:       location,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(event.Name) == "" {
		return fmt.Errorf("event name is required: %w", domain.ErrInvalidInput)
	}
	if event.DrawCapacity < 0 {
		return fmt.Errorf("draw capacity must not be negative: %w", domain.ErrInvalidInput)
	}
	if event.RegStop != nil {
		if _, err := domain.ParseRegStop(*event.RegStop, s.location); err != nil {
			return err
		}
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return storeFailure("create event", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, storeFailure("get event", err)
	}
	return event, nil
}
