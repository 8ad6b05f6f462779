package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gpapredict/artifacts"
	"gpapredict/config"
	"gpapredict/db"
	ghttp "gpapredict/http"
	"gpapredict/logging"
	"gpapredict/monitoring"
)

func main() {
	// 1. Load config
	cfg, path, err := config.Resolve("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logging and metrics
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logger.Info("config loaded", zap.String("path", path))

	metrics, err := monitoring.NewMetrics(cfg.Metrics.StatsdAddr, cfg.Metrics.Namespace)
	if err != nil {
		logger.Fatal("failed to initialize metrics", zap.Error(err))
	}
	defer metrics.Close()

	// 3. Load artifacts. A failed load keeps the server up so the page can
	// report it.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := artifacts.Options{
		Scaler:     cfg.Artifacts.Scaler,
		Model:      cfg.Artifacts.Model,
		ScalerKind: cfg.Artifacts.ScalerKind,
		ModelKind:  cfg.Artifacts.ModelKind,
		CacheSize:  cfg.Artifacts.CacheSize,
	}

	var store artifacts.Store
	var fileStore *artifacts.FileStore
	switch cfg.Artifacts.Store {
	case config.StoreSQLite:
		database, err := db.Open(cfg.Artifacts.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open artifact database", zap.String("path", cfg.Artifacts.SQLitePath), zap.Error(err))
		}
		defer database.Close()
		store = artifacts.NewSQLiteStore(database, cfg.Artifacts.SQLitePath)
	default:
		fileStore = artifacts.NewFileStore(cfg.Artifacts.Dir)
		store = fileStore
	}

	runtime, err := artifacts.Load(ctx, store, opts, logger)
	if err != nil {
		logger.Error("artifacts unavailable, predictions disabled", zap.String("source", store.Describe()), zap.Error(err))
	}
	holder := artifacts.NewHolder(runtime, err)

	if cfg.Artifacts.Watch && fileStore != nil {
		watcher, err := artifacts.NewWatcher(fileStore, opts, holder, logger)
		if err != nil {
			logger.Warn("artifact watcher disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
		}
	}

	// 4. Start HTTP server
	handler := ghttp.NewHandler(holder, metrics, logger, ghttp.HandlerOptions{
		Locale: cfg.UI.Locale,
		Title:  cfg.UI.Title,
	})
	server := ghttp.NewServer(ghttp.ServerConfig{Port: cfg.Http.Port, Timeout: cfg.Http.Timeout}, handler, logger)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 5. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")
	cancel()

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
