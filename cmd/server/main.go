package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tasklift/backend/internal/config"
	"github.com/tasklift/backend/internal/handler"
	"github.com/tasklift/backend/internal/limiter"
	"github.com/tasklift/backend/internal/logging"
	"github.com/tasklift/backend/internal/metrics"
	"github.com/tasklift/backend/internal/service"
	"github.com/tasklift/backend/pkg/resend"
	"github.com/tasklift/backend/pkg/turnstile"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()
	metrics.Init()

	cfg, err := config.Parse()
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}

	var rateLimiter limiter.Limiter = limiter.NewMemoryLimiter()
	if cfg.RedisAddr != "" {
		rateLimiter = limiter.NewRedisLimiter(cfg.RedisAddr)
		slog.Info("using redis rate-limit store", "addr", cfg.RedisAddr)
	}

	verifier := turnstile.NewClient(cfg.TurnstileSecret)
	if verifier.Bypassed() {
		slog.Warn("turnstile secret not configured, verification bypassed")
	}

	sender := resend.NewClient(cfg.ResendAPIKey)
	reportService := service.NewReportService(verifier, sender, cfg.MailFrom, cfg.MailTo)
	reportHandler := handler.NewReportHandler(reportService, cfg.TrustedProxyCount)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", handler.Health)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("POST /api/report", handler.RateLimit(
		rateLimiter,
		cfg.TrustedProxyCount,
		http.HandlerFunc(reportHandler.Submit),
	))

	chain := handler.CORS(handler.SecurityHeaders(handler.RequestLogger(mux)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      chain,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
