// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

// Package invoice implements the invoice intake service. Processing
// stages are simulated placeholders: the real extraction pipeline
// plugs in behind the same Processor interface.
package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autoinvoice/autoinvoice/internal/config"
	"github.com/autoinvoice/autoinvoice/internal/logging"
	"github.com/autoinvoice/autoinvoice/internal/metrics"
)

// Status values for a processed invoice.
const (
	StatusAccepted = "accepted"
	StatusFailed   = "failed"
)

// Invoice is an intake record tracked by the service.
type Invoice struct {
	ID        string    `json:"id"`
	Vendor    string    `json:"vendor"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Request carries the fields of an intake submission.
type Request struct {
	Vendor   string  `json:"vendor" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Currency string  `json:"currency" validate:"required,len=3,alpha"`
}

// Processor runs invoices through the extract/validate/record stages.
// The zero value is not usable; construct with NewProcessor.
type Processor struct {
	logging.ComponentLogger

	cfg   *config.Config
	store *Store
}

// NewProcessor creates a processor backed by the given store.
func NewProcessor(cfg *config.Config, store *Store) *Processor {
	return &Processor{
		ComponentLogger: logging.NewComponentLogger("invoice.Processor"),
		cfg:             cfg,
		store:           store,
	}
}

// Process runs a submission through the intake stages and records the
// resulting invoice. Stage logs carry the request ID from ctx.
func (p *Processor) Process(ctx context.Context, req Request) (*Invoice, error) {
	start := time.Now()
	id := "INV-" + uuid.New().String()
	logger := p.CtxLogger(ctx)

	logger.Info().Str("invoice_id", id).Str("vendor", req.Vendor).Msg("Starting invoice processing")

	inv := &Invoice{
		ID:        id,
		Vendor:    req.Vendor,
		Amount:    req.Amount,
		Currency:  strings.ToUpper(req.Currency),
		Status:    StatusAccepted,
		CreatedAt: time.Now().UTC(),
	}

	if err := p.extract(ctx, inv); err != nil {
		return nil, p.fail(ctx, inv, start, err)
	}
	if err := p.validate(ctx, inv); err != nil {
		return nil, p.fail(ctx, inv, start, err)
	}
	if err := p.record(ctx, inv); err != nil {
		return nil, p.fail(ctx, inv, start, err)
	}

	metrics.RecordInvoiceProcessed(StatusAccepted, time.Since(start))
	logger.Info().Str("invoice_id", inv.ID).Msg("Invoice processed successfully")
	return inv, nil
}

// Get returns a previously recorded invoice.
func (p *Processor) Get(ctx context.Context, id string) (*Invoice, bool) {
	inv, ok := p.store.Get(id)
	if !ok {
		logger := p.CtxLogger(ctx)
		logger.Debug().Str("invoice_id", id).Msg("Invoice not found")
	}
	return inv, ok
}

func (p *Processor) extract(ctx context.Context, inv *Invoice) error {
	logger := p.CtxLogger(ctx)
	logger.Debug().Str("invoice_id", inv.ID).Msg("Extracting invoice data")
	if p.cfg != nil && p.cfg.OpenAI.APIKey != "" {
		logger.Debug().
			Str("invoice_id", inv.ID).
			Str("model", p.cfg.OpenAI.Model).
			Msg("LLM extraction available")
	}
	return nil
}

func (p *Processor) validate(ctx context.Context, inv *Invoice) error {
	logger := p.CtxLogger(ctx)
	logger.Debug().Str("invoice_id", inv.ID).Msg("Validating extracted data")
	if inv.Amount <= 0 {
		return fmt.Errorf("invoice %s: amount must be positive, got %v", inv.ID, inv.Amount)
	}
	return nil
}

func (p *Processor) record(ctx context.Context, inv *Invoice) error {
	logger := p.CtxLogger(ctx)
	logger.Debug().Str("invoice_id", inv.ID).Msg("Recording invoice")
	p.store.Put(inv)
	return nil
}

func (p *Processor) fail(ctx context.Context, inv *Invoice, start time.Time, err error) error {
	metrics.RecordInvoiceProcessed(StatusFailed, time.Since(start))
	logger := p.CtxLogger(ctx)
	logger.Error().
		Str("invoice_id", inv.ID).
		Err(err).
		Msg("Invoice processing failed")
	return err
}
