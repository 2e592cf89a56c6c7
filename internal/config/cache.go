// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package config

import "sync"

var (
	// cacheMu protects the cached Config instance.
	cacheMu sync.Mutex

	// cached is the process-wide Config, loaded at most once per process
	// (until Reset).
	cached *Config
)

// Get returns the process-wide Config instance, loading it on first call.
// Every subsequent call returns the same instance, so configuration is read
// from the environment exactly once per process.
//
//	cfg, err := config.Get()
func Get() (*Config, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached == nil {
		cfg, err := Load()
		if err != nil {
			return nil, err
		}
		cached = cfg
	}
	return cached, nil
}

// Reset clears the cached Config so the next Get call reloads from the
// current environment. Intended for test isolation.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cached = nil
}
