package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crimsondominion/crimson-go/internal/config"
	"github.com/crimsondominion/crimson-go/internal/crypto"
	"github.com/crimsondominion/crimson-go/internal/handler"
	"github.com/crimsondominion/crimson-go/internal/repository"
	"github.com/crimsondominion/crimson-go/internal/service"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	tokens, err := crypto.NewTokenService(cfg.SecretKey, cfg.RefreshSecretKey)
	if err != nil {
		logger.Error("token service", "error", err)
		os.Exit(1)
	}

	// The store connects lazily; a missing or unreachable database fails
	// only the requests that need it.
	store := repository.NewStore(cfg.DatabaseDriver, cfg.DatabaseURL)
	defer store.Close()

	users := repository.NewUserRepository(store)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := handler.NewRouter(ctx, handler.Services{
		Auth:      service.NewAuthService(users, store, tokens),
		Users:     service.NewUserService(users, store),
		Resources: service.NewResources(store),
	}, handler.Options{
		Logger:            logger,
		Registry:          registry,
		CORSOrigins:       cfg.CORSOrigins,
		AuthRateRPS:       cfg.AuthRateLimitRPS,
		AuthRateBurst:     cfg.AuthRateBurst,
		TrustProxyHeaders: cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env, "driver", cfg.DatabaseDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
