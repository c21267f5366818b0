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

	httptransport "github.com/spec-kit/internship-service/internal/api/http"
	"github.com/spec-kit/internship-service/internal/api/http/handlers"
	"github.com/spec-kit/internship-service/internal/auth"
	"github.com/spec-kit/internship-service/internal/config"
	"github.com/spec-kit/internship-service/internal/email"
	"github.com/spec-kit/internship-service/internal/events"
	"github.com/spec-kit/internship-service/internal/observability"
	"github.com/spec-kit/internship-service/internal/persistence"
	"github.com/spec-kit/internship-service/internal/repository"
	"github.com/spec-kit/internship-service/internal/roster"
	"github.com/spec-kit/internship-service/internal/service"
	"github.com/spec-kit/internship-service/internal/worker"
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
	internRepo := repository.NewInternRepository(pool)
	contactRepo := repository.NewContactRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)

	var mailer email.Mailer
	if cfg.Email.SendgridKey != "" {
		mailer = email.NewSendgridMailer(cfg.Email.SendgridKey, cfg.Email.FromName, cfg.Email.FromEmail, logger)
	} else {
		logger.Warn("SENDGRID_API_KEY not set; emails are logged instead of delivered")
		mailer = email.NewConsoleMailer(logger)
	}

	var source roster.Source
	if cfg.Sheets.Configured() {
		sheetsSource, err := roster.NewSheetsSource(ctx, cfg.Sheets)
		if err != nil {
			logger.Fatal("failed to init roster source", zap.Error(err))
		}
		source = sheetsSource
	} else {
		logger.Warn("roster source not configured; sync runs as a no-op")
	}

	authService := service.NewAuthService(*cfg, adminRepo)
	if err := authService.EnsureDefaultAdmin(ctx, cfg.Auth, logger); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	}

	internService := service.NewInternService(service.InternDependencies{
		InternRepo: internRepo,
		Mailer:     mailer,
		Dispatcher: dispatcher,
	})
	contactService := service.NewContactService(contactRepo, dispatcher)
	syncService := service.NewSyncService(service.SyncDependencies{
		InternRepo: internRepo,
		Source:     source,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
		Cfg:        cfg.Sync,
	})

	notificationService := service.NewNotificationService(dispatcher, logger)
	notificationService.RegisterHandlers()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), adminRepo)

	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Interns:        handlers.NewInternsHandler(internService),
		Contacts:       handlers.NewContactsHandler(contactService),
		Sync:           handlers.NewSyncHandler(syncService, metrics),
		AuthMiddleware: authMiddleware,
		PublicLimiter:  httptransport.NewRateLimiter(redis.Client, 30, time.Minute),
	})

	syncWorker := worker.NewSyncWorker(syncService, cfg.Sync.Interval(), logger)
	go syncWorker.Start(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
