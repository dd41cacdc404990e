package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/parking-service/internal/api/http"
	"github.com/spec-kit/parking-service/internal/api/http/handlers"
	"github.com/spec-kit/parking-service/internal/cache"
	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/events"
	"github.com/spec-kit/parking-service/internal/observability"
	"github.com/spec-kit/parking-service/internal/persistence"
	"github.com/spec-kit/parking-service/internal/repository"
	"github.com/spec-kit/parking-service/internal/service"
	"github.com/spec-kit/parking-service/internal/worker"
)

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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var spotRepo repository.SpotRepository
	var userRepo repository.UserRepository
	if pool := pg.PoolHandle(); pool != nil {
		spotRepo = repository.NewSpotRepository(pool)
		userRepo = repository.NewUserRepository(pool)
	} else {
		seedSpots := persistence.SeedSpots()
		seedUsers := persistence.SeedUsers()
		spotRepo = repository.NewMemorySpotRepository(seedSpots)
		userRepo = repository.NewMemoryUserRepository(seedUsers)
		logger.Info("seeded in-memory occupancy store",
			zap.Int("spots", len(seedSpots)),
			zap.Int("users", len(seedUsers)))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	var spotCache *cache.SpotCache
	if cfg.Cache.Enabled {
		spotCache = cache.NewSpotCache(redis.ClientHandle(), cfg.Cache.TTL(), logger)
	}

	allocationService := service.NewAllocationService(service.AllocationDependencies{
		SpotRepo:   spotRepo,
		UserRepo:   userRepo,
		SpotCache:  spotCache,
		Dispatcher: dispatcher,
		Metrics:    metrics,
	})
	spotService := service.NewSpotService(spotRepo, spotCache)
	userService := service.NewUserService(userRepo)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Spots:       handlers.NewSpotsHandler(spotService),
		Users:       handlers.NewUsersHandler(userService),
		Allocations: handlers.NewAllocationsHandler(allocationService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
