package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/server/api"
	"notekeeper/internal/app/server/config"
	"notekeeper/internal/domain/session"
	"notekeeper/internal/infrastructure/storage/postgres"
	"notekeeper/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	log.Info("starting notekeeper server", slog.String("env", cfg.Env), slog.String("address", cfg.Server.RunAddress))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := postgres.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to init storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	sessions := session.NewService(postgres.NewSessionRepository(storage, log), cfg.Session.TTL, log)
	go sessions.RunPurger(ctx, cfg.Session.PurgeInterval)

	srv := &http.Server{
		Addr:              cfg.Server.RunAddress,
		Handler:           api.New(storage, sessions, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	log.Info("server stopped")
}
