// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"

	"github.com/autoinvoice/autoinvoice/internal/config"
	"github.com/autoinvoice/autoinvoice/internal/invoice"
	"github.com/autoinvoice/autoinvoice/internal/logging"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	cfg       *config.Config
	processor *invoice.Processor
}

// NewHandler creates the route handler set.
func NewHandler(cfg *config.Config, processor *invoice.Processor) *Handler {
	return &Handler{cfg: cfg, processor: processor}
}

// Root returns a welcome payload echoing the request ID.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"message":    "AutoInvoice API",
		"app":        h.cfg.App.Name,
		"version":    h.cfg.App.Version,
		"request_id": logging.RequestIDFromContext(r.Context()),
	})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateInvoice accepts an intake submission, validates it, and runs
// it through the processor. Accepted submissions return 202 with the
// recorded invoice.
func (h *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoice.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err)
		return
	}

	if err := validate.Struct(&req); err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", validationMessage(err), err)
		return
	}

	inv, err := h.processor.Process(r.Context(), req)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "PROCESSING_ERROR", "Invoice processing failed", err)
		return
	}

	respondJSON(w, r, http.StatusAccepted, inv)
}

// GetInvoice returns a previously recorded invoice.
func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invoiceID")

	inv, ok := h.processor.Get(r.Context(), id)
	if !ok {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Invoice not found", nil)
		return
	}

	respondJSON(w, r, http.StatusOK, inv)
}

// validationMessage flattens validator errors into a single message
// naming every invalid field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request payload"
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" is invalid ("+fe.Tag()+")")
	}
	return "Validation failed: " + strings.Join(fields, "; ")
}
