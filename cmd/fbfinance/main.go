package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fbfinance/internal/accounts"
	"fbfinance/internal/advice"
	"fbfinance/internal/backend"
	"fbfinance/internal/config"
	apphttp "fbfinance/internal/http"
	applog "fbfinance/internal/log"
	"fbfinance/internal/services"
	"fbfinance/internal/session"
	"fbfinance/internal/userdata"
)

func main() {
	// A missing .env is fine; real deployments configure the environment.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	res, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to open data backend",
			applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", applog.FieldError, err)
		}
	}()
	kv := res.Store

	directory := accounts.NewDirectory(kv)
	sessions := session.NewManager(kv)
	repo := userdata.NewRepository(kv)
	finance := services.NewFinanceService(directory, sessions, repo)
	adviser := advice.NewGeminiGateway(cfg.GeminiAPIKey, cfg.GeminiModel)

	// Pick up a session persisted by a previous run.
	if p, ok, err := sessions.Restore(context.Background()); err != nil {
		logger.Warn("Session restore failed", applog.FieldError, err)
	} else if ok {
		logger.Info("Session restored", applog.FieldUserEmail, p.Email)
	}

	srv := apphttp.NewServer(":"+cfg.Port, directory, sessions, finance, adviser, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fbfinance server",
			applog.FieldOperation, applog.OpStartup, "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
