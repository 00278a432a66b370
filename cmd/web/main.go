package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"order-insights/internal/config"
	"order-insights/internal/errors"
	"order-insights/internal/middleware"
	"order-insights/internal/observability"
	"order-insights/internal/server"
	"order-insights/internal/services"
	"order-insights/internal/ui/templates"
)

const renderTimeout = 10 * time.Second

func dashboardHandler(analytics *services.Analytics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		props := templates.DashboardProps{
			Source:      analytics.Source(),
			RecordCount: analytics.Report().RecordCount,
		}
		if err := analytics.LoadErr(); err != nil {
			props.LoadError = err.Error()
			props.LoadHint = errors.LoadHint(err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		if err := templates.Dashboard(props).Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", "1.0.0",
		"source", cfg.Data.SourceFile,
		"addr", cfg.Address(),
	)

	analytics := services.NewAnalytics(
		services.WithSource(cfg.Data.SourceFile, cfg.Data.Sheet),
		services.WithTopN(cfg.Report.TopN),
		services.WithLogger(logger),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.LoadTimeout)
	start := time.Now()
	if err := analytics.Load(ctx); err != nil {
		// Keep serving: the dashboard explains the failure and POST
		// /admin/reload retries once the file is fixed.
		logger.Error("order data unavailable, serving load error", "error", err)
	} else {
		logger.Info("order data loaded", "duration", time.Since(start))
	}
	cancel()

	templateHandlers := &server.TemplateHandlers{
		Dashboard: dashboardHandler(analytics),
	}

	srv := server.NewServer(analytics, logger, templateHandlers, server.Options{Currency: cfg.Report.Currency})

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      middlewareChain(srv),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg)

	gracefulServer.RegisterShutdownHook(func(ctx context.Context) error {
		logger.Info("shutting down analytics service", "stats", analytics.Stats())
		return nil
	})

	if err := gracefulServer.ListenAndServe(); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("application stopped gracefully")
}
