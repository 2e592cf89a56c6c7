// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

// Package main is the entry point for the AutoInvoice API server.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load from defaults, an optional .env file,
//     and environment variables (Koanf v2), validated field by field
//  2. Logging: zerolog with console + optional rotating JSON file sinks
//  3. HTTP server: chi router with request-ID, request-logging,
//     Prometheus, CORS and rate-limit middleware
//
// # Configuration
//
// All settings come from the environment (see .env.example); an ENV_FILE
// variable points at an alternative .env location. Validation failures
// abort startup with a message naming every offending variable.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests up to the
// configured timeout, emits a shutdown log line, and closes the log
// file sink last.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/autoinvoice/autoinvoice/internal/api"
	"github.com/autoinvoice/autoinvoice/internal/config"
	"github.com/autoinvoice/autoinvoice/internal/invoice"
	"github.com/autoinvoice/autoinvoice/internal/logging"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Get()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.Config{
		Level:           cfg.Logging.Level,
		Format:          cfg.Logging.Format,
		FileMaxBytes:    cfg.Logging.FileMaxBytes,
		FileBackupCount: cfg.Logging.FileBackupCount,
		Caller:          cfg.Logging.Caller,
	}
	logFile, err := cfg.LogFilePath()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to resolve log file path")
	}
	logCfg.File = logFile
	if err := logging.Init(logCfg); err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize logging")
	}
	defer logging.Shutdown()

	logging.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Bool("debug", cfg.App.Debug).
		Msg("Starting AutoInvoice API")
	logging.Info().
		Interface("config", cfg.Redacted()).
		Msg("Configuration loaded")

	store := invoice.NewStore()
	processor := invoice.NewProcessor(cfg, store)
	router := api.NewRouter(cfg, processor)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("AutoInvoice API stopped")
}
