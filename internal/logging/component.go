// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ComponentLogger gives a service a named logger without wiring one
// through every constructor. Embed it in a struct and call
// NewComponentLogger with the component name, or leave it zero-valued
// and the global logger is used as-is.
type ComponentLogger struct {
	name string
}

// NewComponentLogger returns a ComponentLogger whose events carry a
// "logger" field with the given name. Use a module.Type style name,
// e.g. "invoice.Processor".
func NewComponentLogger(name string) ComponentLogger {
	return ComponentLogger{name: name}
}

// Logger returns the component's logger, derived from the current
// global logger so it reflects the latest Init.
func (c ComponentLogger) Logger() zerolog.Logger {
	if c.name == "" {
		return Logger()
	}
	return Named(c.name)
}

// CtxLogger returns the component's logger with the request ID from
// ctx attached, when one is present.
func (c ComponentLogger) CtxLogger(ctx context.Context) zerolog.Logger {
	logger := c.Logger()
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With().Str("request_id", id).Logger()
	}
	return logger
}

// LogAt emits a message at the given level with alternating key/value
// field pairs. Non-string keys are skipped.
func (c ComponentLogger) LogAt(level zerolog.Level, msg string, fields ...interface{}) {
	logger := c.Logger()
	event := logger.WithLevel(level)
	event = addFieldPairs(event, fields)
	event.Msg(msg)
}

// Debug logs a debug message with optional field pairs.
func (c ComponentLogger) Debug(msg string, fields ...interface{}) {
	logger := c.Logger()
	event := addFieldPairs(logger.Debug(), fields)
	event.Msg(msg)
}

// Info logs an info message with optional field pairs.
func (c ComponentLogger) Info(msg string, fields ...interface{}) {
	logger := c.Logger()
	event := addFieldPairs(logger.Info(), fields)
	event.Msg(msg)
}

// Warn logs a warning message with optional field pairs.
func (c ComponentLogger) Warn(msg string, fields ...interface{}) {
	logger := c.Logger()
	event := addFieldPairs(logger.Warn(), fields)
	event.Msg(msg)
}

// Error logs an error message with optional field pairs.
func (c ComponentLogger) Error(msg string, fields ...interface{}) {
	logger := c.Logger()
	event := addFieldPairs(logger.Error(), fields)
	event.Msg(msg)
}

// addFieldPairs attaches alternating key/value pairs to an event.
// Pairs with a non-string key and trailing odd values are skipped.
func addFieldPairs(e *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i < len(fields); i += 2 {
		if i+1 < len(fields) {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			e = e.Interface(key, fields[i+1])
		}
	}
	return e
}
