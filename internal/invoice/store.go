// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package invoice

import "sync"

// Store is an in-memory invoice registry. Persistence is out of scope
// for the intake service; a database-backed implementation replaces
// this behind the same methods.
type Store struct {
	mu       sync.RWMutex
	invoices map[string]*Invoice
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{invoices: make(map[string]*Invoice)}
}

// Put records an invoice, replacing any existing entry with the same ID.
func (s *Store) Put(inv *Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices[inv.ID] = inv
}

// Get returns the invoice with the given ID.
func (s *Store) Get(id string) (*Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.invoices[id]
	return inv, ok
}

// Len returns the number of recorded invoices.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}
