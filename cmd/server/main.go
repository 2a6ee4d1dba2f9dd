// @title Event Lottery API
// @version 1.0
// @description Waiting lists, lottery draws, and entrant notifications for capacity-limited events.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventlottery/config"
	_ "eventlottery/docs"
	"eventlottery/internal/adapters/auth"
	"eventlottery/internal/adapters/email"
	"eventlottery/internal/adapters/kafka"
	httpdelivery "eventlottery/internal/delivery/http"
	"eventlottery/internal/delivery/http/controllers"
	"eventlottery/internal/domain"
	"eventlottery/internal/repository/memory"
	"eventlottery/internal/repository/postgres"
	"eventlottery/internal/repository/redislock"
	"eventlottery/internal/selection"
	"eventlottery/internal/services"
)

type stores struct {
	events        domain.EventRepository
	entries       domain.WaitingListRepository
	draws         domain.DrawRepository
	users         domain.UserRepository
	notifications domain.NotificationRepository
	closer        io.Closer
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if st.closer != nil {
		defer st.closer.Close()
	}

	locker, lockCloser, err := newLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if lockCloser != nil {
		defer lockCloser.Close()
	}

	var publisher domain.DrawPublisher = kafka.NewNoopPublisher()
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		pub := kafka.NewPublisher(producer, cfg.Kafka.DrawTopic, logger)
		defer pub.Close()
		publisher = pub
		logger.Info("publishing draws to kafka", "topic", cfg.Kafka.DrawTopic)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	notifier := services.NewNotificationService(st.users, st.notifications, emailService, cfg.Notify.Concurrency, logger)
	lottery := services.NewLotteryService(st.events, st.entries, st.draws, notifier, publisher, selection.New(), logger,
		services.LotteryConfig{
			CommitAttempts: cfg.Lottery.CommitAttempts,
			ContextTimeout: cfg.Lottery.EventTimeout,
			NotifyTimeout:  cfg.Notify.Timeout,
		})
	// Runs after the server stops so in-flight notifications finish before
	// the publisher and store close.
	defer lottery.WaitForDispatches()

	invitations := services.NewInvitationService(st.events, st.entries, lottery, notifier, logger, services.InvitationConfig{
		BackfillOnEnrolledCancel: cfg.Lottery.BackfillOnEnrolledCancel,
		UnresponsiveAfter:        cfg.Lottery.UnresponsiveAfter,
		Location:                 loc,
		ContextTimeout:           cfg.RequestTimeout,
	})
	scheduler := services.NewScheduler(st.events, lottery, locker, logger, services.SchedulerConfig{
		Interval:     cfg.Lottery.SweepInterval,
		EventTimeout: cfg.Lottery.EventTimeout,
		LeaseTTL:     cfg.Lottery.SweepLease,
		Concurrency:  cfg.Lottery.SweepConcurrency,
		Location:     loc,
	})
	broadcasts := services.NewBroadcastService(st.events, st.entries, notifier)
	eventService := services.NewEventService(st.events, loc, cfg.RequestTimeout)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Events:        controllers.NewEventController(logger, eventService, invitations),
		Draws:         controllers.NewDrawController(logger, scheduler, lottery, invitations, broadcasts),
		Invitations:   controllers.NewInvitationController(logger, invitations),
		Notifications: controllers.NewNotificationController(logger, notifier),
	}, auth.NewJWTVerifier(cfg.JWTSecret), logger, cfg.CORSOrigins)

	schedulerDone := make(chan struct{})
	go func() {
		defer close(schedulerDone)
		scheduler.Start(ctx)
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-serveErr:
		stop()
		<-schedulerDone
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", "err", err)
	}
	<-schedulerDone
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.StoreDriver == "memory" {
		logger.Warn("using the in-memory store; data is lost on restart")
		s := memory.NewStore()
		return &stores{
			events:        memory.NewEventRepository(s),
			entries:       memory.NewWaitingListRepository(s),
			draws:         memory.NewDrawRepository(s),
			users:         memory.NewUserRepository(s),
			notifications: memory.NewNotificationRepository(s),
		}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.CreateSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	logger.Info("database schema ready")
	return &stores{
		events:        postgres.NewEventRepository(db),
		entries:       postgres.NewWaitingListRepository(db),
		draws:         postgres.NewDrawRepository(db),
		users:         postgres.NewUserRepository(db),
		notifications: postgres.NewNotificationRepository(db),
		closer:        db,
	}, nil
}

func newLocker(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.Locker, io.Closer, error) {
	if !cfg.Redis.Enabled {
		return memory.NewLocker(), nil, nil
	}
	cli, err := redislock.NewClient(ctx, redislock.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("sweep lease backed by redis", "addr", cfg.Redis.Addr)
	return redislock.NewLocker(cli), cli, nil
}
