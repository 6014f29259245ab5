package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"famcard/internal/app"
	"famcard/internal/family/handler"
	"famcard/internal/platform/config"
	"famcard/internal/platform/httpserver"
	"famcard/internal/platform/logger"
	"famcard/internal/platform/metrics"
	"famcard/internal/platform/middleware"
	"famcard/internal/platform/otel"
	"famcard/pkg/platform/httputil"
)

const serviceName = "famcard"

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		slog.Error("famcard server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, serviceName, cfg.Server.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("trace shutdown failed", "error", err)
		}
	}()

	application, err := app.Build(ctx, cfg, app.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Warn("closing resources failed", "error", err)
		}
	}()

	router := newRouter(log, metrics.New(), handler.New(application.Service, log))
	srv := httpserver.New(cfg.Server.Addr, router, cfg.Pipeline.Timeout)

	log.Info("starting famcard",
		"addr", cfg.Server.Addr,
		"cache", cfg.Cache.Backend,
		"snapshots", cfg.Backend.SnapshotDir != "",
	)
	return httpserver.Run(ctx, srv, 10*time.Second, log)
}

func newRouter(log *slog.Logger, m *metrics.Metrics, family *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIP)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(log))
	r.Use(m.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	family.Register(r)
	return r
}
