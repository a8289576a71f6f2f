package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"staybook/internal/config"
	"staybook/internal/messaging"
	"staybook/internal/postgres"
	redisx "staybook/internal/redis"
	postgresrepo "staybook/internal/repository/postgres"
	redisrepo "staybook/internal/repository/redis"
	"staybook/internal/service"
	httpgin "staybook/internal/transport/http/gin"
	"staybook/internal/uow"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	events     *messaging.Producer
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(context.Background(), postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redisx.New(context.Background(), redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	var events *messaging.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		events, err = messaging.NewProducer(messaging.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize kafka producer: %w", err)
		}
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewPropertiesPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl", 10, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	// Initialize services
	services := service.NewServices(
		store,
		uow.New(store),
		cache,
		pubsub,
		limiter,
		events,
		service.Config{},
	)

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		events: events,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")

		if err := a.events.Close(); err != nil {
			a.logger.Error("failed to close kafka producer", "error", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
