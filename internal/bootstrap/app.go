// Package bootstrap handles application initialization and lifecycle
// management for the bundle service.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/PWalkow/ElasticsearchBundle/internal/logger"
)

// Start initializes and runs the bundle service. It blocks until the process
// receives SIGINT or SIGTERM, then shuts down gracefully.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Elasticsearch Bundle Service",
		logger.String("name", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	// Phase 2: Setup Elasticsearch
	esClient, err := SetupElasticsearch(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup Elasticsearch: %w", err)
	}
	log.Info("Elasticsearch client initialized")

	// Phase 3: Setup audit database. The audit store is best effort, so a
	// failure here degrades to unaudited operation instead of aborting.
	db, err := SetupDatabase(cfg)
	if err != nil {
		log.Warn("Audit database unavailable, operations will not be audited", logger.Error(err))
		db = nil
	} else {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Error("Failed to close database connection", logger.Error(closeErr))
			}
		}()
		log.Info("Audit database connection established")
	}

	// Phase 4: Build managers and HTTP server
	server, err := SetupHTTPServer(cfg, esClient, db, log)
	if err != nil {
		return fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server error", logger.Error(err))
			return err
		}
	case sig := <-quit:
		log.Info("Received shutdown signal", logger.String("signal", sig.String()))
		if shutdownErr := server.Shutdown(context.Background()); shutdownErr != nil {
			log.Error("Graceful shutdown failed", logger.Error(shutdownErr))
			return shutdownErr
		}
	}

	log.Info("Elasticsearch Bundle Service stopped")
	return nil
}
