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

	httptransport "github.com/trusttrip/booking-service/internal/api/http"
	"github.com/trusttrip/booking-service/internal/api/http/handlers"
	"github.com/trusttrip/booking-service/internal/auth"
	"github.com/trusttrip/booking-service/internal/config"
	"github.com/trusttrip/booking-service/internal/events"
	"github.com/trusttrip/booking-service/internal/observability"
	"github.com/trusttrip/booking-service/internal/persistence"
	"github.com/trusttrip/booking-service/internal/repository"
	"github.com/trusttrip/booking-service/internal/service"
	"github.com/trusttrip/booking-service/internal/worker"
)

const inspectPath = "/api/auth/inspect"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.UsesDefaultSecret() && !cfg.App.IsDevelopment() {
		logger.Warn("JWT_SECRET is not set; tokens are signed with the built-in development secret")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	pool := pg.PoolHandle()
	if pool == nil {
		logger.Fatal("postgres is required; set POSTGRES_DSN")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics(cfg.Metrics.Enabled)

	notifications := worker.NewNotificationWorker(events.NewInMemoryDispatcher(), cfg.Notification.QueueSize, logger)
	deps := service.Dependencies{
		Store:         repository.NewStore(pool),
		Dispatcher:    notifications,
		Logger:        logger,
		ProcessingFee: cfg.Refund.ProcessingFee,
	}

	tokens := auth.NewTokenService(auth.TokenConfig{
		Secret:     cfg.Auth.JWTSecret,
		AccessTTL:  cfg.Auth.AccessTokenTTL,
		RefreshTTL: cfg.Auth.RefreshTokenTTL,
	})
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	authService := service.NewAuthService(service.AuthDependencies{
		Users:    deps.Store.Repos().Users,
		Tokens:   tokens,
		Hasher:   hasher,
		Sessions: persistence.NewRefreshStore(redis),
		Logger:   logger,
	})
	userService := service.NewUserService(deps, hasher)
	projectService := service.NewProjectService(deps)
	bookingService := service.NewBookingService(deps)
	paymentService := service.NewPaymentService(deps)
	reviewService := service.NewReviewService(deps)
	refundService := service.NewRefundService(deps)
	adminService := service.NewAdminService(deps)

	notificationService := service.NewNotificationService(notifications, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications, notificationService, cfg.Notification.Workers)

	routeRules := cfg.Auth.Routes
	if cfg.App.IsDevelopment() {
		routeRules.Public = append(routeRules.Public, inspectPath)
	}
	rules, err := auth.NewRouteRules(routeRules)
	if err != nil {
		logger.Fatal("invalid route rules", zap.Error(err))
	}
	gate := auth.NewGate(auth.NewRouteClassifier(rules), tokens, logger, metrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, adminService),
		Auth:          handlers.NewAuthHandler(authService),
		Users:         handlers.NewUsersHandler(userService),
		Projects:      handlers.NewProjectsHandler(projectService),
		Bookings:      handlers.NewBookingsHandler(bookingService),
		Payments:      handlers.NewPaymentsHandler(paymentService),
		Reviews:       handlers.NewReviewsHandler(reviewService),
		Refunds:       handlers.NewRefundsHandler(refundService),
		Admin:         handlers.NewAdminHandler(adminService, refundService),
		Gate:          gate,
		Metrics:       metrics,
		EnableInspect: cfg.App.IsDevelopment(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	notifications.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
