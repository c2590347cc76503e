package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/export"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/repository"
	"shareit/internal/service"
	"shareit/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus()
	subscribeEventLog(eventBus, &logger)

	var notifyWorker domain.NotifyWorker
	var notify *worker.NotifyWorker
	if cfg.Worker.Enabled {
		notify = worker.NewNotifyWorker(db, initSender(cfg, &logger), redisClient, worker.RetryPolicy{
			MaxRetries:   cfg.Worker.MaxRetries,
			InitialDelay: time.Duration(cfg.Worker.PollInterval) * time.Second,
		}, &logger)
		notifyWorker = notify
		go notify.Start(ctx)
	}

	bookingService := service.NewBookingService(db, eventBus, notifyWorker, &logger)
	itemService := service.NewItemService(db, bookingService, eventBus, &logger)
	userService := service.NewUserService(db, &logger)
	requestService := service.NewRequestService(db, &logger)

	httpServer := api.NewHTTPServer(*cfg, api.Deps{
		Users:    userService,
		Items:    itemService,
		Bookings: bookingService,
		Requests: requestService,
		Exporter: export.NewExporter(cfg.Exports.Path, &logger),
		Limiter:  initRateLimiter(cfg, redisClient, &logger),
		Logger:   &logger,
	})

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backup.Start(ctx)
	}

	startMetrics(ctx, cfg, &logger)

	return serve(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(context.Background(), redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// initRateLimiter prefers the redis window limiter and falls back to
// the in-process token bucket when redis is absent or failing.
func initRateLimiter(cfg *config.Config, redisClient *redis.Client, logger *zerolog.Logger) domain.RateLimiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}

	memory := repository.NewMemoryRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	if redisClient == nil {
		return memory
	}

	window := time.Duration(cfg.RateLimit.Window) * time.Second
	primary := repository.NewRedisRateLimiter(redisClient, cfg.RateLimit.Requests, window)
	return repository.NewFailoverRateLimiter(primary, memory, logger)
}

func initSender(cfg *config.Config, logger *zerolog.Logger) worker.NotifySender {
	if cfg.Worker.WebhookURL != "" {
		return worker.NewWebhookSender(cfg.Worker.WebhookURL, logger)
	}
	return worker.NewLogSender(logger)
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(event *events.Event) error {
		logger.Debug().Str("event_type", event.Type).RawJSON("payload", event.Payload).Msg("domain event")
		return nil
	}
	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingApproved, handler)
	bus.Subscribe(events.EventBookingRejected, handler)
	bus.Subscribe(events.EventCommentAdded, handler)
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

func serve(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	logger.Info().Int("http_port", cfg.Server.Port).Msg("server started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
