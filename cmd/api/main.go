package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/expirytracker/expirytracker-backend/api/routes"
	"github.com/expirytracker/expirytracker-backend/internal/consumable"
	"github.com/expirytracker/expirytracker-backend/internal/storage"
	"github.com/expirytracker/expirytracker-backend/pkg/config"
	"github.com/expirytracker/expirytracker-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	store := consumable.NewStore()
	gateway := storage.NewGateway(cfg.Storage.FilePath, store, logg)

	// A corrupt inventory file must not keep the service down: start with a
	// fresh inventory and leave the bad file untouched for inspection.
	if err := gateway.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "inventory file unreadable, starting empty", err)
	}

	addr := ":" + cfg.App.Port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
		"file": gateway.Path(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, store, gateway),
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	logg.Info(logg.WithField(ctx, "signal", s.String()), "shutdown signal received")

	if err := gateway.Save(ctx); err != nil {
		logg.Error(ctx, "failed to flush inventory on shutdown", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
	logg.Info(ctx, "api server stopped")
}
