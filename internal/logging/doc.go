// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

/*
Package logging provides centralized zerolog-based structured logging for
AutoInvoice.

The package configures a single process-wide logger with:

  - JSON or colorized console output (LOG_FORMAT=json|text)
  - An optional rotating JSON log file (LOG_FILE, LOG_FILE_MAX_BYTES,
    LOG_FILE_BACKUP_COUNT)
  - Context-aware logging with request-ID propagation
  - Named loggers and an embeddable ComponentLogger for services
  - A bridge demoting stdlib log and slog output from third-party
    libraries to WARNING

# Quick Start

	// Initialize at application startup
	if err := logging.Init(logging.Config{
	    Level:  "INFO",
	    Format: "json",
	}); err != nil {
	    panic(err)
	}
	defer logging.Shutdown()

	// Log messages
	logging.Info().Msg("Server starting")
	logging.Error().Err(err).Msg("Operation failed")

	// With request context (request ID from middleware)
	logging.Ctx(ctx).Info().Str("invoice_id", id).Msg("Invoice received")

# Sinks and Formats

The console sink is always attached. In text mode it renders colorized,
human-readable lines (color is suppressed automatically when the output is
not a terminal); in json mode it emits one JSON object per line. The file
sink, when configured, always receives JSON regardless of console mode so
persisted logs stay machine-parseable.

# Best Practices

Always terminate log chains with .Msg() or .Send():

	logging.Info().Str("key", "value").Msg("message")  // Correct
	logging.Info().Str("key", "value")                 // WRONG - log not emitted

Use structured fields instead of string formatting:

	logging.Info().Str("invoice_id", id).Int("pages", n).Msg("processed")
*/
package logging
