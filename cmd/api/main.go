package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/staynest/rental-service/internal/api/http"
	"github.com/staynest/rental-service/internal/api/http/handlers"
	"github.com/staynest/rental-service/internal/auth"
	"github.com/staynest/rental-service/internal/cache"
	"github.com/staynest/rental-service/internal/config"
	"github.com/staynest/rental-service/internal/domain"
	"github.com/staynest/rental-service/internal/events"
	"github.com/staynest/rental-service/internal/observability"
	"github.com/staynest/rental-service/internal/persistence"
	"github.com/staynest/rental-service/internal/repository"
	"github.com/staynest/rental-service/internal/repository/memory"
	"github.com/staynest/rental-service/internal/service"
	"github.com/staynest/rental-service/internal/worker"
	apperrors "github.com/staynest/rental-service/pkg/util/errorutil"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var repos repository.Repositories
	if pg.UsesMemoryStore() {
		repos = memory.NewStore().Repositories()
	} else {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		repos = repository.NewPostgres(pg.PoolHandle())
	}

	var redis *persistence.Redis
	if cfg.Cache.Enabled {
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
	}
	responseCache := cache.New(redis.ClientHandle(), cfg.Cache, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	services := service.New(*cfg, service.Dependencies{
		Repos:      repos,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	if err := seedBootstrapUser(ctx, services.Users, cfg.Auth); err != nil {
		logger.Fatal("failed to seed bootstrap user", zap.Error(err))
	}

	subscribers := []worker.Subscriber{
		service.NewNotificationService(logger),
		responseCache,
	}
	if cfg.Broker.AMQPURL != "" {
		amqpPublisher := events.NewAMQPPublisher(cfg.Broker.AMQPURL, cfg.Broker.Queue, logger)
		defer amqpPublisher.Close() //nolint:errcheck
		subscribers = append(subscribers, amqpPublisher)
	}
	worker.StartSubscribers(dispatcher, subscribers...)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Users:          handlers.NewUsersHandler(services.Auth, services.Users),
		Hosts:          handlers.NewHostsHandler(services.Hosts),
		Properties:     handlers.NewPropertiesHandler(services.Properties),
		Amenities:      handlers.NewAmenitiesHandler(services.Amenities),
		Bookings:       handlers.NewBookingsHandler(services.Bookings),
		Reviews:        handlers.NewReviewsHandler(services.Reviews),
		AuthMiddleware: auth.NewAuthMiddleware(services.Auth.TokenManager()),
		Cache:          responseCache,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

// seedBootstrapUser creates the configured account unless it already exists.
func seedBootstrapUser(ctx context.Context, users *service.UserService, cfg config.AuthConfig) error {
	if cfg.BootstrapUsername == "" || cfg.BootstrapPassword == "" {
		return nil
	}
	_, err := users.Create(ctx, nil, domain.UserInput{
		Username: cfg.BootstrapUsername,
		Password: cfg.BootstrapPassword,
		Name:     cfg.BootstrapUsername,
		Email:    cfg.BootstrapEmail,
	})
	if apperrors.IsCode(err, apperrors.CodeDuplicate) {
		return nil
	}
	return err
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
