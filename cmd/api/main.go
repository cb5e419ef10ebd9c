package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"stock-tracker/internal/app"
	"stock-tracker/internal/core/config"
	"stock-tracker/internal/core/logger"
	"stock-tracker/internal/core/metrics"
	"stock-tracker/internal/core/server"
	alerthandler "stock-tracker/internal/features/alerts/handler"
	pollerhandler "stock-tracker/internal/features/poller/handler"

	"go.uber.org/zap"
)

// @title Stock Tracker API
// @version 1.0
// @description This API polls Best Buy Canada availability for a set of SKUs and sends stock alerts.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Strings("skus", cfg.Inventory.SKUList()),
		zap.String("fetcher", cfg.Poller.Fetcher),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New(app.MetricsNamespace)

	// Dashboard poller
	controller, err := app.NewController(cfg, m)
	if err != nil {
		l.Fatal("Failed to create poller", zap.Error(err))
	}
	go controller.Run(ctx)
	pollerHdl := pollerhandler.NewPollerHandler(controller)

	// Unattended check over HTTP
	checker, err := app.NewChecker(ctx, cfg, m)
	if err != nil {
		l.Fatal("Failed to create checker", zap.Error(err))
	}
	defer checker.Close()
	if cfg.Checker.Secret == "" {
		l.Warn("CHECK_SECRET is not set, /check is open to anyone")
	}
	checkHdl := alerthandler.NewCheckHandler(checker, cfg.Checker.Secret)

	srv := server.New(cfg, m)

	// Register Routes
	srv.App.Get("/poller", pollerHdl.GetState)
	srv.App.Post("/poller/refresh", pollerHdl.Refresh)
	srv.App.Put("/poller/auto-refresh", pollerHdl.SetAutoRefresh)
	srv.App.Put("/poller/settings", pollerHdl.UpdateSettings)
	srv.App.Get("/poller/report", pollerHdl.GetReport)
	srv.App.Get("/check", checkHdl.Check)
	srv.App.Get("/check/last", checkHdl.LastCheck)

	go func() {
		<-ctx.Done()
		l.Info("Shutting down server")
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
