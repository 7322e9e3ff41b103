package main

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/novanode/client-portal/internal/access"
	"github.com/novanode/client-portal/internal/app"
	dashboardhttp "github.com/novanode/client-portal/internal/dashboard/http"
	"github.com/novanode/client-portal/internal/dashboard/svg"
	"github.com/novanode/client-portal/internal/finance"
	"github.com/novanode/client-portal/internal/observability"
	"github.com/novanode/client-portal/internal/platform/cache"
	"github.com/novanode/client-portal/internal/shared"
	"github.com/novanode/client-portal/internal/view"
)

type lineRenderer struct{}

func (lineRenderer) Lines(width, height int, series []svg.Series, labels []string, opts svg.LineOpts) (template.HTML, error) {
	return svg.Lines(width, height, series, labels, opts)
}

type barRenderer struct{}

func (barRenderer) Bars(width, height int, values []float64, labels []string, opts svg.BarOpts) (template.HTML, error) {
	return svg.Bars(width, height, values, labels, opts)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "novanode_portal", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine(view.NewFormatter(cfg.Currency))
	if err != nil {
		logger.Error("load templates", slog.Any("error", err))
		os.Exit(1)
	}

	authenticator, err := cfg.Authenticator()
	if err != nil {
		logger.Error("configure gate", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	accessHandler := access.NewHandler(logger, access.NewGate(authenticator), templates, sessionManager, csrfManager, metrics, cfg.Subtitle())
	dashboardHandler := dashboardhttp.NewHandler(logger, templates, lineRenderer{}, barRenderer{},
		finance.NewService(cfg.Currency), csrfManager, metrics, dashboardhttp.Options{
			FinanceEnabled: cfg.FinanceEnabled(),
			Subtitle:       cfg.Subtitle(),
			Seed:           cfg.Seed,
		})

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AccessHandler:    accessHandler,
		DashboardHandler: dashboardHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.Bool("finance", cfg.FinanceEnabled()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
