package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventlottery/internal/domain"
)

// InvitationConfig tunes entrant actions.
type InvitationConfig struct {
	// BackfillOnEnrolledCancel draws a replacement when an enrolled entrant cancels.
	BackfillOnEnrolledCancel bool
	// UnresponsiveAfter is the default time a selected entrant has to respond.
	UnresponsiveAfter time.Duration
	Location          *time.Location
	ContextTimeout    time.Duration
}

type invitationService struct {
	eventRepo domain.EventRepository
	entryRepo domain.WaitingListRepository
	lottery   domain.LotteryService
	notifier  domain.NotificationService
	logger    *slog.Logger
	cfg       InvitationConfig
	now       func() time.Time
}

func NewInvitationService(
	eventRepo domain.EventRepository,
	entryRepo domain.WaitingListRepository,
	lottery domain.LotteryService,
	notifier domain.NotificationService,
	logger *slog.Logger,
	cfg InvitationConfig,
) domain.InvitationService {
	if cfg.UnresponsiveAfter <= 0 {
		cfg.UnresponsiveAfter = 24 * time.Hour
	}
	if cfg.ContextTimeout <= 0 {
		cfg.ContextTimeout = 30 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &invitationService{
		eventRepo: eventRepo,
		entryRepo: entryRepo,
		lottery:   lottery,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *invitationService) Join(ctx context.Context, eventID, userID string, latitude, longitude *float64) (*domain.WaitingListEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ContextTimeout)
	defer cancel()

	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrInvalidInput)
	}
	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if closed, err := event.RegistrationClosed(s.now(), s.cfg.Location); err == nil && closed {
		return nil, domain.ErrRegistrationClosed
	}

	entry := &domain.WaitingListEntry{
		EventID:    eventID,
		UserID:     userID,
		Status:     domain.StatusWaiting,
		JoinedDate: s.now(),
		Latitude:   latitude,
		Longitude:  longitude,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, domain.ErrAlreadyJoined) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, storeFailure("join waiting list", err)
	}
	return entry, nil
}

func (s *invitationService) Accept(ctx context.Context, eventID, entryID, userID string) (*domain.InvitationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ContextTimeout)
	defer cancel()

	entry, err := s.transitionOwned(ctx, eventID, entryID, userID, domain.StatusSelected, domain.StatusEnrolled)
	if err != nil {
		return nil, err
	}
	return &domain.InvitationResult{Entry: entry}, nil
}

// Decline cancels a selected entry and immediately draws one replacement.
// A failed replacement is reported in the result; the decline stands.
func (s *invitationService) Decline(ctx context.Context, eventID, entryID, userID string) (*domain.InvitationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ContextTimeout)
	defer cancel()

	entry, err := s.transitionOwned(ctx, eventID, entryID, userID, domain.StatusSelected, domain.StatusCanceled)
	if err != nil {
		return nil, err
	}
	result := &domain.InvitationResult{Entry: entry}
	result.Replacement, result.ReplacementError = s.backfill(ctx, eventID, "", 1)
	return result, nil
}

// Cancel withdraws an enrolled entrant and, when configured, backfills the seat.
func (s *invitationService) Cancel(ctx context.Context, eventID, entryID, userID string) (*domain.InvitationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ContextTimeout)
	defer cancel()

	entry, err := s.transitionOwned(ctx, eventID, entryID, userID, domain.StatusEnrolled, domain.StatusCanceled)
	if err != nil {
		return nil, err
	}
	result := &domain.InvitationResult{Entry: entry}
	if s.cfg.BackfillOnEnrolledCancel {
		result.Replacement, result.ReplacementError = s.backfill(ctx, eventID, "", 1)
	}
	return result, nil
}

// CancelUnresponsive releases every selected seat whose holder has not
// answered within the event's window, then backfills the released seats.
func (s *invitationService) CancelUnresponsive(ctx context.Context, eventID string) (*domain.UnresponsiveResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ContextTimeout)
	defer cancel()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	cutoff := now.Add(-event.UnresponsiveWindow(s.cfg.UnresponsiveAfter))
	canceled, err := s.entryRepo.CancelSelectedBefore(ctx, eventID, cutoff, now)
	if err != nil {
		return nil, storeFailure("cancel unresponsive entrants", err)
	}
	result := &domain.UnresponsiveResult{Canceled: len(canceled)}
	if len(canceled) == 0 {
		return result, nil
	}
	s.logger.InfoContext(ctx, "unresponsive entrants canceled", "event_id", eventID, "count", len(canceled))

	recipients := make([]string, 0, len(canceled))
	for _, e := range canceled {
		recipients = append(recipients, e.UserID)
	}
	msg := poolMessage(domain.PoolCanceled, event.Name)
	if res, err := s.notifier.Notify(ctx, domain.NotifyRequest{
		Recipients: recipients,
		Title:      msg.title,
		Body:       msg.body,
		Category:   msg.category,
		EventID:    eventID,
		EventName:  event.Name,
	}); err != nil {
		s.logger.WarnContext(ctx, "canceled entrants not notified", "event_id", eventID, "err", err)
	} else {
		s.logger.InfoContext(ctx, "canceled entrants notified", "event_id", eventID, "sent", res.Sent, "failed", res.Failed)
	}

	result.Replacement, result.ReplacementError = s.backfill(ctx, eventID, event.Name, len(canceled))
	return result, nil
}

func (s *invitationService) FillOpenSeats(ctx context.Context, eventID string) (*domain.DrawOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ContextTimeout)
	defer cancel()

	event, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.DrawCompleted {
		return nil, fmt.Errorf("event %s has not been drawn yet: %w", eventID, domain.ErrInvalidTransition)
	}
	counts, err := s.entryRepo.CountByStatus(ctx, eventID)
	if err != nil {
		return nil, storeFailure("count entrants", err)
	}
	vacancies := event.DrawCapacity - counts[domain.StatusSelected] - counts[domain.StatusEnrolled]
	return s.lottery.RunReplacement(ctx, eventID, event.Name, vacancies)
}

func (s *invitationService) backfill(ctx context.Context, eventID, eventName string, vacancies int) (*domain.DrawOutcome, string) {
	outcome, err := s.lottery.RunReplacement(ctx, eventID, eventName, vacancies)
	if err != nil {
		s.logger.ErrorContext(ctx, "replacement draw failed", "event_id", eventID, "vacancies", vacancies, "err", err)
		return nil, err.Error()
	}
	return outcome, ""
}

func (s *invitationService) loadEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return nil, storeFailure("load event", err)
	}
	return event, nil
}

// transitionOwned moves an entry the caller owns from one status to another.
func (s *invitationService) transitionOwned(ctx context.Context, eventID, entryID, userID string, from, to domain.EntryStatus) (*domain.WaitingListEntry, error) {
	entry, err := s.entryRepo.GetByID(ctx, eventID, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("entry %s: %w", entryID, domain.ErrNotFound)
		}
		return nil, storeFailure("load entry", err)
	}
	if entry.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if entry.Status != from || !from.CanTransitionTo(to) {
		return nil, fmt.Errorf("%s to %s: %w", entry.Status, to, domain.ErrInvalidTransition)
	}
	updated, err := s.entryRepo.Transition(ctx, eventID, entryID, from, to, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, storeFailure("update entry", err)
	}
	return updated, nil
}
