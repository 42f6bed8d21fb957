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

	"github.com/sumitkarde03/druglaunchindia/aggregator"
	"github.com/sumitkarde03/druglaunchindia/config"
	"github.com/sumitkarde03/druglaunchindia/data"
	"github.com/sumitkarde03/druglaunchindia/handlers"
	"github.com/sumitkarde03/druglaunchindia/health"
	"github.com/sumitkarde03/druglaunchindia/interfaces"
	"github.com/sumitkarde03/druglaunchindia/logging"
	"github.com/sumitkarde03/druglaunchindia/pharmastore"
	"github.com/sumitkarde03/druglaunchindia/scheduler"
	"github.com/sumitkarde03/druglaunchindia/server"
	"github.com/sumitkarde03/druglaunchindia/validation"
	"github.com/sumitkarde03/druglaunchindia/whoapi"
)

func main() {
	// .env is optional; deployed environments set real variables.
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogLevel, cfg.LogRetentionWeeks, cfg.MaxLogFileSize)

	ctx := context.Background()

	// The configuration gate decides live vs demo mode once at startup. An
	// unreachable store at boot also degrades to demo mode; per-request
	// failures afterwards degrade per query.
	configured := cfg.IsStoreConfigured()
	var store interfaces.StoreClient

	if configured {
		pool, err := pharmastore.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Error("Store unreachable at startup, running in demo mode", "error", err)
			configured = false
		} else {
			defer pool.Close()
			store = pharmastore.NewClientFromPool(pool)
			logging.Info("Connected to store")
		}
	} else {
		logging.Warn("Store is not configured, serving demo data")
	}

	agg := aggregator.New(store, configured)
	whoClient := whoapi.NewClient(cfg.WHOBaseURL, time.Duration(cfg.HTTPTimeoutSecs)*time.Second)
	container := data.NewSnapshotContainer()

	snapshotScheduler := scheduler.NewSnapshotScheduler(container, agg)
	if err := snapshotScheduler.Start(); err != nil {
		logging.Error("Failed to start snapshot scheduler", "error", err)
		os.Exit(1)
	}
	defer snapshotScheduler.Stop()

	handler := handlers.NewHTTPHandler(
		agg,
		whoClient,
		validation.NewInputValidator(),
		container,
		health.NewHealthChecker(container, configured),
	)

	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
