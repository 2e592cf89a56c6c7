// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/autoinvoice/autoinvoice/internal/logging"
)

// RequestLogger logs one entry event when a request arrives and one
// exit event when it completes, both carrying the request ID from
// RequestID for correlation. A handler panic is logged as a single
// error event with the elapsed time, then re-raised so an outer
// recovery middleware can produce the 500 response.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.Ctx(r.Context()).With().Str("logger", "middleware").Logger()

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", r.RemoteAddr).
			Msg("Request started")

		wrapper := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		defer func() {
			duration := time.Since(start)
			if rec := recover(); rec != nil {
				logger.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rec).
					Str("stack", string(debug.Stack())).
					Float64("duration_ms", durationMillis(duration)).
					Msg("Request failed")
				panic(rec)
			}

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status_code", wrapper.statusCode).
				Float64("duration_ms", durationMillis(duration)).
				Msg("Request completed")
		}()

		next.ServeHTTP(wrapper, r)
	})
}

func durationMillis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// statusResponseWriter wraps http.ResponseWriter to capture the status
// code for the completion log.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
