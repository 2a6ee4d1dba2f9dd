package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"eventlottery/internal/domain"
)

const sweepLockKey = "draw-sweep"

// SchedulerConfig tunes the draw sweep.
type SchedulerConfig struct {
	Interval     time.Duration
	EventTimeout time.Duration
	LeaseTTL     time.Duration
	Concurrency  int
	// Location interprets registration deadlines stored without a zone.
	Location *time.Location
}

// Scheduler runs the lottery for every undrawn event whose registration has closed.
type Scheduler struct {
	eventRepo domain.EventRepository
	lottery   domain.LotteryService
	locker    domain.Locker
	logger    *slog.Logger
	cfg       SchedulerConfig
	now       func() time.Time
}

func NewScheduler(
	eventRepo domain.EventRepository,
	lottery domain.LotteryService,
	locker domain.Locker,
	logger *slog.Logger,
	cfg SchedulerConfig,
) *Scheduler {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.EventTimeout <= 0 {
		cfg.EventTimeout = 30 * time.Second
	}
	if cfg.LeaseTTL <= 0 {
		cfg.LeaseTTL = 5 * time.Minute
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Scheduler{
		eventRepo: eventRepo,
		lottery:   lottery,
		locker:    locker,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Start sweeps once immediately, then every Interval until ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info("draw scheduler started", "interval", s.cfg.Interval.String())
	s.Sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("draw scheduler stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// IsRegistrationClosed reports whether the event's deadline has strictly
// passed. A missing or malformed deadline never counts as closed.
func (s *Scheduler) IsRegistrationClosed(event *domain.Event) bool {
	closed, err := event.RegistrationClosed(s.now(), s.cfg.Location)
	return err == nil && closed
}

// Sweep draws every eligible event. A failing event is logged and counted;
// it never stops the others and Sweep itself never fails.
func (s *Scheduler) Sweep(ctx context.Context) domain.SweepReport {
	var report domain.SweepReport

	token, acquired, err := s.locker.Acquire(ctx, sweepLockKey, s.cfg.LeaseTTL)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "sweep lease unavailable, sweeping without it", "err", err)
	case !acquired:
		s.logger.InfoContext(ctx, "sweep skipped, another instance holds the lease")
		return report
	default:
		report.Leased = true
		defer func() {
			if err := s.locker.Release(context.WithoutCancel(ctx), sweepLockKey, token); err != nil {
				s.logger.WarnContext(ctx, "sweep lease release failed", "err", err)
			}
		}()
	}

	events, err := s.eventRepo.ListUndrawn(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "sweep could not list events", "err", err)
		return report
	}
	report.Scanned = len(events)

	now := s.now()
	eligible := make([]*domain.Event, 0, len(events))
	for _, ev := range events {
		if ev.DrawCompleted {
			continue
		}
		closed, err := ev.RegistrationClosed(now, s.cfg.Location)
		if err != nil {
			s.logger.DebugContext(ctx, "event not eligible for draw", "event_id", ev.ID, "reason", err.Error())
			continue
		}
		if closed {
			eligible = append(eligible, ev)
		}
	}
	report.Eligible = len(eligible)

	var drawn, skipped, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for _, ev := range eligible {
		g.Go(func() error {
			err := s.drawEvent(ctx, ev)
			switch {
			case err == nil:
				drawn.Add(1)
			case errors.Is(err, domain.ErrAlreadyDrawn):
				skipped.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Drawn = int(drawn.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())
	s.logger.InfoContext(ctx, "sweep finished",
		"scanned", report.Scanned, "eligible", report.Eligible,
		"drawn", report.Drawn, "skipped", report.Skipped, "failed", report.Failed)
	return report
}

func (s *Scheduler) drawEvent(ctx context.Context, ev *domain.Event) (err error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.EventTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw panicked: %v", r)
			s.logger.ErrorContext(ctx, "scheduled draw panicked", "event_id", ev.ID, "panic", r)
		}
	}()

	outcome, err := s.lottery.RunLottery(ctx, ev.ID)
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "scheduled draw completed",
			"event_id", ev.ID, "selected", outcome.SelectedCount, "waiting", outcome.WaitingCount)
	case errors.Is(err, domain.ErrAlreadyDrawn):
		s.logger.InfoContext(ctx, "event already drawn", "event_id", ev.ID)
	default:
		s.logger.ErrorContext(ctx, "scheduled draw failed", "event_id", ev.ID, "err", err)
	}
	return err
}

// RunManual draws one event on an organizer's request. Deadline problems are
// reported before the lottery runs.
func (s *Scheduler) RunManual(ctx context.Context, eventID string) (*domain.DrawOutcome, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("event %s: %w", eventID, domain.ErrNotFound)
		}
		return nil, storeFailure("load event", err)
	}
	closed, err := event.RegistrationClosed(s.now(), s.cfg.Location)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, domain.ErrRegistrationStillOpen
	}
	return s.lottery.RunLottery(ctx, eventID)
}
