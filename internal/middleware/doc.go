// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

// Package middleware provides HTTP middleware for the AutoInvoice API:
// request-ID assignment, structured request/response logging with
// timing, and Prometheus instrumentation. All middleware uses the
// standard func(http.Handler) http.Handler shape so it composes with
// chi's Use().
package middleware
