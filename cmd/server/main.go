package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/personal-site/internal/api/http"
	"github.com/spec-kit/personal-site/internal/api/http/handlers"
	"github.com/spec-kit/personal-site/internal/config"
	"github.com/spec-kit/personal-site/internal/events"
	"github.com/spec-kit/personal-site/internal/observability"
	"github.com/spec-kit/personal-site/internal/persistence"
	"github.com/spec-kit/personal-site/internal/repository"
	"github.com/spec-kit/personal-site/internal/service"
	"github.com/spec-kit/personal-site/internal/session"
	"github.com/spec-kit/personal-site/internal/worker"
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

	if cfg.Session.UsingFallbackSecret {
		logger.Warn("JWT_SECRET not set, using insecure default key for development")
	}

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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartPreferenceWorker(dispatcher, redis, metrics, logger)

	prefRepo := repository.NewPreferenceRepository(pg.PoolHandle())
	themeService := service.NewThemeService(service.ThemeDependencies{
		PreferenceRepo: prefRepo,
		Cache:          redis,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})

	tokens := session.NewTokenManager(cfg.Session.JWTSecret)
	issuer := session.NewIssuer(tokens)
	resolver := session.NewResolver(issuer, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Pages:     handlers.NewPagesHandler(themeService),
		Theme:     handlers.NewThemeHandler(themeService, issuer, logger),
		Icons:     handlers.NewIconsHandler(),
		Resolver:  resolver,
		StaticDir: cfg.App.StaticDir,
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
