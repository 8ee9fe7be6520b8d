package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/config"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/handler"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/cache"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/notify"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/observability"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/infra/resilience"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/service"
	"github.com/Isabellaariza/Nudo-Studio-sub001/internal/store/memory"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Bool("webhook_enabled", cfg.WebhookURL != ""),
		zap.Bool("seed_demo", cfg.SeedDemo),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(ctx, "nudo-studio-admin", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdownTracer(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Stores ---
	stores := memory.NewStores()
	if cfg.SeedDemo {
		if err := stores.Seed(ctx); err != nil {
			logger.Fatal("failed to seed demo data", zap.Error(err))
		}
		logger.Info("demo data seeded")
	}

	// --- Cache ---
	publicCache := cache.New[service.PublicProjection](cfg.CacheTTL)
	flush := publicCache.Flush

	// --- Notifier ---
	retryCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	notifier := notify.NewWebhook(cfg.WebhookURL, cfg.HTTPTimeout, retryCfg, logger, metrics)

	// --- Services ---
	authSvc := service.NewAuthService(stores.Users, stores.Tokens, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL, logger)
	svcs := handler.Services{
		Auth:      authSvc,
		Users:     service.NewUserService(stores.Users, logger),
		Employees: service.NewEmployeeService(stores.Employees, logger),
		Catalog:   service.NewCatalogService(stores.Products, stores.Materials, stores.Services, flush, logger),
		Orders:    service.NewOrderService(stores.Orders, stores.Users, notifier, metrics, logger),
		Returns:   service.NewReturnService(stores.Returns, stores.Orders, notifier, metrics, logger),
		Quotes:    service.NewQuoteService(stores.Quotes, notifier, metrics, cfg.BaseURL, logger),
		Workshops: service.NewWorkshopService(stores.Workshops, stores.Users, notifier, metrics, flush, logger),
		Blog:      service.NewBlogService(stores.Blog, flush, logger),
		Public:    service.NewPublicService(stores.Products, stores.Workshops, stores.Blog, publicCache, metrics),
		Counts:    stores.Counts,
		PageSize:  cfg.PageSize,
	}

	// --- Router & Server ---
	router := handler.NewRouter(svcs, metrics, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return notifier.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
