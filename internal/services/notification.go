package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"eventlottery/internal/domain"
)

const (
	defaultNotifyConcurrency = 8
	defaultInboxLimit        = 20
	maxInboxLimit            = 100
)

type deliveryResult int

const (
	delivered deliveryResult = iota
	skippedByPreference
	deliveryFailed
)

type notificationService struct {
	userRepo     domain.UserRepository
	inbox        domain.NotificationRepository
	emailService domain.EmailService
	concurrency  int
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
}

// NewNotificationService returns a NotificationService that writes to the in-app
// inbox and, when emailService is non-nil, emails users that have an address.
func NewNotificationService(
	userRepo domain.UserRepository,
	inbox domain.NotificationRepository,
	emailService domain.EmailService,
	concurrency int,
	logger *slog.Logger,
) domain.NotificationService {
	if concurrency < 1 {
		concurrency = defaultNotifyConcurrency
	}
	return &notificationService{
		userRepo:     userRepo,
		inbox:        inbox,
		emailService: emailService,
		concurrency:  concurrency,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// Notify delivers req to each distinct recipient concurrently. Users that
// turned notifications off are skipped; a missing user or preference counts
// as opted in.
func (s *notificationService) Notify(ctx context.Context, req domain.NotifyRequest) (domain.NotifyResult, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Body) == "" {
		return domain.NotifyResult{}, fmt.Errorf("notification needs a title or body: %w", domain.ErrInvalidInput)
	}
	recipients := uniqueRecipients(req.Recipients)
	if len(recipients) == 0 {
		return domain.NotifyResult{}, nil
	}

	var sent, skipped, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for _, userID := range recipients {
		g.Go(func() error {
			switch s.deliver(ctx, userID, req) {
			case delivered:
				sent.Add(1)
			case skippedByPreference:
				skipped.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	return domain.NotifyResult{
		Sent:    int(sent.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}, nil
}

func (s *notificationService) deliver(ctx context.Context, userID string, req domain.NotifyRequest) deliveryResult {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.WarnContext(ctx, "notification preference lookup failed", "user_id", userID, "err", err)
		return deliveryFailed
	}
	if !user.WantsNotifications() {
		return skippedByPreference
	}

	n := &domain.Notification{
		ID:        s.newID(),
		UserID:    userID,
		EventID:   req.EventID,
		EventName: req.EventName,
		Category:  req.Category,
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: s.now(),
	}
	if err := s.inbox.Create(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "notification write failed", "user_id", userID, "event_id", req.EventID, "err", err)
		return deliveryFailed
	}

	if s.emailService != nil && user != nil && user.Email != "" {
		err := s.emailService.SendNotification(ctx, req.Category, &domain.NotificationEmailData{
			Email:     user.Email,
			EventName: req.EventName,
			Title:     req.Title,
			Body:      req.Body,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "notification email failed", "user_id", userID, "err", err)
		}
	}
	return delivered
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = defaultInboxLimit
	}
	if limit > maxInboxLimit {
		limit = maxInboxLimit
	}
	list, err := s.inbox.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, storeFailure("list notifications", err)
	}
	return list, nil
}

func (s *notificationService) SetNotificationsEnabled(ctx context.Context, userID string, enabled bool) (*domain.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id is required: %w", domain.ErrInvalidInput)
	}
	u, err := s.userRepo.SetNotificationsEnabled(ctx, userID, enabled)
	if err != nil {
		return nil, storeFailure("save notification preference", err)
	}
	return u, nil
}

func uniqueRecipients(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
