package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aduvernay/staffing-api/config"
	"github.com/aduvernay/staffing-api/internal/auth"
	"github.com/aduvernay/staffing-api/internal/email"
	"github.com/aduvernay/staffing-api/internal/health"
	"github.com/aduvernay/staffing-api/internal/infrastructure/postgres"
	ctxlog "github.com/aduvernay/staffing-api/internal/log"
	"github.com/aduvernay/staffing-api/internal/metrics"
	httptransport "github.com/aduvernay/staffing-api/internal/transport/http"
	"github.com/aduvernay/staffing-api/internal/transport/http/handler"
	"github.com/aduvernay/staffing-api/internal/transport/http/middleware"
	"github.com/aduvernay/staffing-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(ctx, cfg.DatabaseURL()); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	personRepo := postgres.NewPersonRepository(pool)
	staffingRepo := postgres.NewStaffingRepository(pool)

	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL())
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	authUsecase := usecase.NewAuthUsecase(personRepo, issuer, emailSender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	staffingUsecase := usecase.NewStaffingUsecase(staffingRepo)
	staffingHandler := handler.NewStaffingHandler(staffingUsecase, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow())
	defer limiter.Stop()

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr: ":" + cfg.Port,
		Handler: httptransport.NewRouter(
			logger,
			authHandler,
			staffingHandler,
			limiter,
			issuer,
			httptransport.Options{RequireAuth: cfg.RequireAuth},
		),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "require_auth", cfg.RequireAuth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
