// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvFiles lists the paths where a .env file is searched in order of
// priority. The first file found will be used.
var DefaultEnvFiles = []string{
	".env",
	"/etc/autoinvoice/.env",
}

// EnvFileEnvVar is the environment variable that can override the .env path.
const EnvFileEnvVar = "ENV_FILE"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by the .env file and
// environment variables.
func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "autoinvoice",
			Version: "0.1.0",
			Debug:   false,
			RootDir: "",
		},
		Logging: LoggingConfig{
			Level:           "INFO",
			Format:          "text",
			File:            "",
			FileMaxBytes:    10 * 1024 * 1024, // 10MB
			FileBackupCount: 5,
			Caller:          true,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "autoinvoice",
			Password: "autoinvoice",
			Name:     "autoinvoice",
		},
		OpenAI: OpenAIConfig{
			APIKey: "",
			Model:  "gpt-4o-mini",
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8000,
			Timeout:           30 * time.Second,
			CORSOrigins:       []string{},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Env File: Optional .env file (if exists)
//  3. Environment Variables: Override any setting
//
// Environment variable names (APP_NAME, LOG_LEVEL, POSTGRES_HOST, ...) are
// case-insensitive and mapped to nested config paths by envTransformFunc.
// Unknown variables are ignored. The returned Config is fully validated;
// validation failures list every offending field.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load .env file (optional)
	if envFile := findEnvFile(); envFile != "" {
		if err := k.Load(file.Provider(envFile), dotenv.ParserEnv("", ".", envTransformFunc)); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// LOG_LEVEL -> logging.level
	// POSTGRES_HOST -> database.host
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.normalize()

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findEnvFile searches for a .env file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findEnvFile() string {
	// Check environment variable first
	if envPath := os.Getenv(EnvFileEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultEnvFiles {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as
// comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. This is necessary because env vars come in as strings,
// but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from defaults), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config
// paths. Keys are matched case-insensitively.
//
// Examples:
//   - APP_NAME -> app.name
//   - LOG_LEVEL -> logging.level
//   - POSTGRES_HOST -> database.host
//   - OPENAI_API_KEY -> openai.api_key
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Application mappings
		"app_name":     "app.name",
		"app_version":  "app.version",
		"debug":        "app.debug",
		"app_root_dir": "app.root_dir",

		// Logging mappings
		"log_level":             "logging.level",
		"log_format":            "logging.format",
		"log_file":              "logging.file",
		"log_file_max_bytes":    "logging.file_max_bytes",
		"log_file_backup_count": "logging.file_backup_count",
		"log_caller":            "logging.caller",

		// Database mappings
		"postgres_host":     "database.host",
		"postgres_port":     "database.port",
		"postgres_user":     "database.user",
		"postgres_password": "database.password",
		"postgres_db":       "database.name",

		// OpenAI mappings
		"openai_api_key": "openai.api_key",
		"openai_model":   "openai.model",

		// Server mappings
		"http_host":           "server.host",
		"http_port":           "server.port",
		"http_timeout":        "server.timeout",
		"cors_origins":        "server.cors_origins",
		"rate_limit_requests": "server.rate_limit_requests",
		"rate_limit_window":   "server.rate_limit_window",
		"disable_rate_limit":  "server.rate_limit_disabled",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them.
	// This prevents random environment variables from polluting config.
	return ""
}
