// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/autoinvoice/autoinvoice/internal/logging"
)

// RequestIDHeader is the header carrying the correlation ID on both
// requests and responses.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request a correlation ID and adds it to both
// the response header and the request context. An ID supplied by an
// upstream proxy via X-Request-ID is reused so traces span services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context.
func GetRequestID(ctx context.Context) string {
	return logging.RequestIDFromContext(ctx)
}
