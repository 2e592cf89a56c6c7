// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

// Package api provides the HTTP surface of AutoInvoice: the chi
// router with its middleware stack (request IDs, request logging,
// Prometheus instrumentation, CORS, rate limiting) and the JSON
// handlers for health checks and invoice intake.
package api
