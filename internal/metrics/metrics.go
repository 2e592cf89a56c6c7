// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

// Package metrics exposes Prometheus instrumentation for the
// AutoInvoice API: HTTP request throughput and latency, in-flight
// request tracking, and invoice processing outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPInFlightRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Invoice Processing Metrics
	InvoicesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoices_processed_total",
			Help: "Total number of invoices processed",
		},
		[]string{"status"}, // "accepted", "failed"
	)

	InvoiceProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "invoice_processing_duration_seconds",
			Help:    "Invoice processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordHTTPRequest records throughput and latency for a completed
// HTTP request.
func RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackInFlight adjusts the in-flight request gauge.
func TrackInFlight(active bool) {
	if active {
		HTTPInFlightRequests.Inc()
	} else {
		HTTPInFlightRequests.Dec()
	}
}

// RecordInvoiceProcessed records a completed invoice processing run.
func RecordInvoiceProcessed(status string, duration time.Duration) {
	InvoicesProcessedTotal.WithLabelValues(status).Inc()
	InvoiceProcessingDuration.Observe(duration.Seconds())
}
