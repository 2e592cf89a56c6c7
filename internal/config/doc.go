// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

/*
Package config provides centralized application configuration loaded from
environment variables and an optional .env file.

Configuration is loaded via Koanf v2 with layered sources (highest priority
wins):

 1. Environment variables (APP_NAME, LOG_LEVEL, POSTGRES_HOST, ...)
 2. Optional .env file in the working directory (override path via ENV_FILE)
 3. Built-in defaults

Environment variable names are case-insensitive and unknown variables are
ignored. All values are type-checked during unmarshaling and validated after
load; validation failures report every offending field in a single error.

# Usage

	cfg, err := config.Get()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(cfg.App.Name)
	fmt.Println(cfg.DatabaseURL())

Get caches the loaded Config for the lifetime of the process, so every caller
observes the same instance. Tests that mutate the environment should call
config.Reset to force a reload.

# Thread Safety

Config is immutable after Load and safe for concurrent read access from
multiple goroutines.
*/
package config
