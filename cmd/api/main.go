package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"washbay/internal/api"
	"washbay/internal/auth"
	"washbay/internal/config"
	"washbay/internal/database"
	"washbay/internal/domain"
	"washbay/internal/events"
	"washbay/internal/logging"
	"washbay/internal/metrics"
	"washbay/internal/payment"
	"washbay/internal/repository"
	"washbay/internal/schedule"
	"washbay/internal/service"
	"washbay/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logger := logging.Component(baseLogger, "api-main")

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	locker := initLocker(cfg, &logger)

	provider := initPaymentProvider(cfg, &logger)

	bus := events.NewEventBus()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	template := schedule.DayTemplate{
		OpenTime:        cfg.Slots.OpenTime,
		CloseTime:       cfg.Slots.CloseTime,
		DurationMinutes: cfg.Slots.DefaultDurationMinutes,
	}

	backups := database.NewBackupService(db, cfg.Backup.Dir,
		time.Duration(cfg.Backup.IntervalHours)*time.Hour, cfg.Backup.RetentionDays, &logger)

	deps := api.Deps{
		DB:      db,
		Tokens:  tokens,
		Locker:  locker,
		Backups: backups,
		Users:   service.NewUserService(db, tokens, cfg.Auth.BcryptCost, &logger),
		Bookings: service.NewBookingService(
			db, locker, provider, bus, &logger,
			cfg.Payment.Currency, cfg.Loyalty.PointsPerUnit, cfg.Booking.MaxAdvanceDays),
		Slots:   service.NewSlotService(db, &logger, template, cfg.Slots.GenerateDaysAhead),
		Reviews: service.NewReviewService(db, bus, &logger),
		Reports: service.NewReportService(db, &logger),
	}

	server := api.NewServer(cfg, deps, &logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweeper := worker.NewSweeper(db, bus, &logger,
		time.Duration(cfg.Booking.SweepIntervalSeconds)*time.Second,
		time.Duration(cfg.Booking.AutoCancelGraceMinutes)*time.Minute)
	go sweeper.Run(ctx)

	if cfg.Backup.Enabled {
		go backups.Run(ctx)
	}

	startMetrics(ctx, cfg, &logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// initLocker wires the slot lock repository: Redis when configured and
// reachable, memory otherwise, with failover in between.
func initLocker(cfg *config.Config, logger *zerolog.Logger) domain.LockRepository {
	memory := repository.NewMemoryLockRepository()

	if !cfg.Redis.Enabled || cfg.Redis.Address == "" {
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, using in-memory locks")
		return memory
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return repository.NewFailoverLockRepository(repository.NewRedisLockRepository(client), memory, logger)
}

func initPaymentProvider(cfg *config.Config, logger *zerolog.Logger) payment.Provider {
	if cfg.Payment.BaseURL == "" || cfg.Payment.SecretKey == "" {
		logger.Warn().Msg("payment provider not configured, card payments use the fake provider")
		return payment.NewFakeProvider()
	}
	paymentLogger := logging.Component(logger, "payment")
	return payment.NewClient(cfg.Payment.BaseURL, cfg.Payment.SecretKey,
		time.Duration(cfg.Payment.TimeoutSeconds)*time.Second, &paymentLogger)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Int("port", port).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}
