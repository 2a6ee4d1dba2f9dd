package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"eventlottery/internal/domain"
	"eventlottery/internal/selection"
)

// LotteryConfig tunes the draw executors.
type LotteryConfig struct {
	// CommitAttempts bounds retries when a candidate changes before commit.
	CommitAttempts int
	ContextTimeout time.Duration
	// NotifyTimeout bounds each detached notification dispatch.
	NotifyTimeout time.Duration
}

// LotteryService runs initial and replacement draws and dispatches the
// resulting notifications without blocking the caller.
type LotteryService struct {
	eventRepo domain.EventRepository
	entryRepo domain.WaitingListRepository
	drawRepo  domain.DrawRepository
	notifier  domain.NotificationService
	publisher domain.DrawPublisher
	engine    *selection.Engine
	logger    *slog.Logger
	cfg       LotteryConfig
	now       func() time.Time

	dispatches sync.WaitGroup
}

func NewLotteryService(
	eventRepo domain.EventRepository,
	entryRepo domain.WaitingListRepository,
	drawRepo domain.DrawRepository,
	notifier domain.NotificationService,
	publisher domain.DrawPublisher,
	engine *selection.Engine,
	logger *slog.Logger,
	cfg LotteryConfig,
) *LotteryService {
	if cfg.CommitAttempts < 1 {
		cfg.CommitAttempts = 1
	}
	if cfg.ContextTimeout <= 0 {
		cfg.ContextTimeout = 30 * time.Second
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 30 * time.Second
	}
	return &LotteryService{
		eventRepo: eventRepo,
		entryRepo: entryRepo,
		drawRepo:  drawRepo,
		notifier:  notifier,
		publisher: publisher,
		engine:    engine,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// RunLottery performs the initial draw for an event.
func (s *LotteryService) RunLottery(ctx context.Context, eventID string) (*domain.DrawOutcome, error) {
	return s.run(ctx, eventID, "", domain.DrawKindLottery, 0)
}

// RunReplacement draws up to vacancies entrants from those still waiting.
// It never touches the event's drawn flag.
func (s *LotteryService) RunReplacement(ctx context.Context, eventID, eventName string, vacancies int) (*domain.DrawOutcome, error) {
	if vacancies <= 0 {
		return emptyOutcome(eventID, domain.DrawKindReplacement, 0), nil
	}
	return s.run(ctx, eventID, eventName, domain.DrawKindReplacement, vacancies)
}

// WaitForDispatches blocks until every detached notification dispatch has finished.
func (s *LotteryService) WaitForDispatches() {
	s.dispatches.Wait()
}

func (s *LotteryService) run(ctx context.Context, eventID, eventName string, kind domain.DrawKind, vacancies int) (*domain.DrawOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ContextTimeout)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= s.cfg.CommitAttempts; attempt++ {
		event, outcome, committed, err := s.drawOnce(ctx, eventID, kind, vacancies)
		if err == nil {
			if committed {
				if eventName == "" {
					eventName = event.Name
				}
				s.logger.InfoContext(ctx, "draw committed",
					"event_id", eventID, "kind", kind,
					"selected", outcome.SelectedCount, "waiting", outcome.WaitingCount)
				s.dispatch(ctx, eventName, outcome)
			}
			return outcome, nil
		}
		if !errors.Is(err, domain.ErrCandidateChanged) {
			return nil, err
		}
		lastErr = err
		s.logger.WarnContext(ctx, "waiting list changed during draw, retrying",
			"event_id", eventID, "kind", kind, "attempt", attempt)
	}
	return nil, storeFailure(fmt.Sprintf("%s draw for event %s", kind, eventID), lastErr)
}

// drawOnce loads candidates, selects and commits. committed is false when
// nothing was written.
func (s *LotteryService) drawOnce(ctx context.Context, eventID string, kind domain.DrawKind, vacancies int) (*domain.Event, *domain.DrawOutcome, bool, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, false, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return nil, nil, false, storeFailure("load event", err)
	}

	quota := vacancies
	if kind == domain.DrawKindLottery {
		if event.DrawCompleted {
			return nil, nil, false, domain.ErrAlreadyDrawn
		}
		if event.DrawCapacity <= 0 {
			return nil, nil, false, domain.ErrInvalidQuota
		}
		quota = event.DrawCapacity
	}

	entries, err := s.entryRepo.ListByStatus(ctx, eventID, domain.StatusWaiting)
	if err != nil {
		return nil, nil, false, storeFailure("load waiting list", err)
	}
	candidates, dropped := selection.Dedupe(entries)
	for _, d := range dropped {
		s.logger.WarnContext(ctx, "waiting list entry excluded from draw",
			"event_id", eventID, "entry_id", d.EntryID, "user_id", d.UserID, "reason", d.Reason)
	}

	outcome := emptyOutcome(eventID, kind, len(candidates))
	if kind == domain.DrawKindReplacement && len(candidates) == 0 {
		return event, outcome, false, nil
	}

	winners := s.engine.Select(candidates, quota)
	commit := domain.DrawCommit{
		EventID:  eventID,
		Kind:     kind,
		Selected: winners,
		DrawnAt:  s.now(),
	}
	if err := s.drawRepo.CommitDraw(ctx, commit); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyDrawn), errors.Is(err, domain.ErrCandidateChanged), errors.Is(err, domain.ErrNotFound):
			return nil, nil, false, err
		default:
			return nil, nil, false, storeFailure("commit draw", err)
		}
	}

	outcome.SelectedCount = len(winners)
	outcome.DrawnAt = &commit.DrawnAt
	for _, w := range winners {
		outcome.SelectedUserIDs = append(outcome.SelectedUserIDs, w.UserID)
	}
	return event, outcome, true, nil
}

// dispatch notifies winners and publishes the draw on a detached context.
// Failures are logged and never reach the draw's caller.
func (s *LotteryService) dispatch(ctx context.Context, eventName string, outcome *domain.DrawOutcome) {
	userIDs := append([]string(nil), outcome.SelectedUserIDs...)
	drawEvent := domain.DrawEvent{
		EventID:         outcome.EventID,
		EventName:       eventName,
		Kind:            outcome.Kind,
		SelectedUserIDs: userIDs,
		SelectedCount:   outcome.SelectedCount,
		WaitingCount:    outcome.WaitingCount,
		DrawnAt:         *outcome.DrawnAt,
	}

	s.dispatches.Add(1)
	go func() {
		defer s.dispatches.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				s.logger.ErrorContext(ctx, "draw dispatch panicked", "event_id", outcome.EventID, "panic", r)
			}
		}()

		if len(userIDs) > 0 {
			msg := drawMessage(outcome.Kind, eventName)
			res, err := s.notifier.Notify(ctx, domain.NotifyRequest{
				Recipients: userIDs,
				Title:      msg.title,
				Body:       msg.body,
				Category:   msg.category,
				EventID:    outcome.EventID,
				EventName:  eventName,
			})
			if err != nil {
				s.logger.ErrorContext(ctx, "draw notification failed", "event_id", outcome.EventID, "err", err)
			} else {
				s.logger.InfoContext(ctx, "draw notifications dispatched",
					"event_id", outcome.EventID, "sent", res.Sent, "skipped", res.Skipped, "failed", res.Failed)
			}
		}

		if err := s.publisher.PublishDraw(ctx, drawEvent); err != nil {
			s.logger.WarnContext(ctx, "draw event not published", "event_id", outcome.EventID, "err", err)
		}
	}()
}

func emptyOutcome(eventID string, kind domain.DrawKind, waiting int) *domain.DrawOutcome {
	return &domain.DrawOutcome{
		EventID:         eventID,
		Kind:            kind,
		WaitingCount:    waiting,
		SelectedUserIDs: []string{},
	}
}
