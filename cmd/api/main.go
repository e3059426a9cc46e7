package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/field-intel-service/internal/api/http"
	"github.com/spec-kit/field-intel-service/internal/api/http/handlers"
	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/config"
	"github.com/spec-kit/field-intel-service/internal/events"
	"github.com/spec-kit/field-intel-service/internal/observability"
	"github.com/spec-kit/field-intel-service/internal/persistence"
	"github.com/spec-kit/field-intel-service/internal/push"
	"github.com/spec-kit/field-intel-service/internal/repository"
	"github.com/spec-kit/field-intel-service/internal/service"
	"github.com/spec-kit/field-intel-service/internal/worker"
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

	pool := pg.PoolHandle()
	personRepo := repository.NewPersonRepository(pool)
	hierarchyRepo := repository.NewHierarchyRepository(pool)
	delegationRepo := repository.NewDelegationRepository(pool)
	surgeonRepo := repository.NewSurgeonRepository(pool)
	regionRepo := repository.NewRegionRepository(pool)
	callLogRepo := repository.NewCallLogRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)
	customFieldRepo := repository.NewCustomFieldRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	pushClient := push.NewClient(cfg.Push, logger)
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		PersonRepo: personRepo,
		Cache:      redis,
		Logger:     logger,
	})
	hierarchyService := service.NewHierarchyService(service.HierarchyDependencies{
		HierarchyRepo:  hierarchyRepo,
		DelegationRepo: delegationRepo,
		PersonRepo:     personRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	delegationService := service.NewDelegationService(service.DelegationDependencies{
		DelegationRepo: delegationRepo,
		HierarchyRepo:  hierarchyRepo,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		HierarchyRepo:  hierarchyRepo,
		DelegationRepo: delegationRepo,
		SurgeonRepo:    surgeonRepo,
		CallLogRepo:    callLogRepo,
		PersonRepo:     personRepo,
		RegionRepo:     regionRepo,
		Logger:         logger,
	})
	accountService := service.NewAccountService(service.AccountDependencies{
		SurgeonRepo:     surgeonRepo,
		CallLogRepo:     callLogRepo,
		CustomFieldRepo: customFieldRepo,
		RegionRepo:      regionRepo,
		Logger:          logger,
	})
	contentService := service.NewContentService(contentRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, deviceRepo, pushClient, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), personRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, notificationService),
		Hierarchy:      handlers.NewHierarchyHandler(hierarchyService, dashboardService),
		Delegations:    handlers.NewDelegationHandler(delegationService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Reorg:          handlers.NewReorgHandler(hierarchyService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Webhook:        handlers.NewWebhookHandler(contentService, logger),
		AuthMiddleware: authMiddleware,
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
