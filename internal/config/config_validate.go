// AutoInvoice - Invoice Processing API
// Copyright 2026 AutoInvoice Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/autoinvoice/autoinvoice

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. Struct tag parsing is cached,
// so a single instance is reused across Load calls.
var validate = validator.New(validator.WithRequiredStructEnabled())

// envVarNames maps validator struct namespaces to the environment variable
// a user must fix. Keeps validation messages actionable.
var envVarNames = map[string]string{
	"Config.App.Name":                 "APP_NAME",
	"Config.App.Version":              "APP_VERSION",
	"Config.Logging.Level":            "LOG_LEVEL",
	"Config.Logging.Format":           "LOG_FORMAT",
	"Config.Logging.FileMaxBytes":     "LOG_FILE_MAX_BYTES",
	"Config.Logging.FileBackupCount":  "LOG_FILE_BACKUP_COUNT",
	"Config.Database.Host":            "POSTGRES_HOST",
	"Config.Database.Port":            "POSTGRES_PORT",
	"Config.Database.User":            "POSTGRES_USER",
	"Config.Database.Password":        "POSTGRES_PASSWORD",
	"Config.Database.Name":            "POSTGRES_DB",
	"Config.OpenAI.Model":             "OPENAI_MODEL",
	"Config.Server.Host":              "HTTP_HOST",
	"Config.Server.Port":              "HTTP_PORT",
	"Config.Server.Timeout":           "HTTP_TIMEOUT",
	"Config.Server.RateLimitRequests": "RATE_LIMIT_REQUESTS",
	"Config.Server.RateLimitWindow":   "RATE_LIMIT_WINDOW",
}

// Validate checks that the loaded configuration is complete and in range.
// All invalid fields are reported in a single aggregated error so a
// misconfigured deployment can be fixed in one pass.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldErrorMessage(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// fieldErrorMessage renders one validation failure as a field-level message
// referencing the environment variable that controls the field.
func fieldErrorMessage(fe validator.FieldError) string {
	name := envVarNames[fe.Namespace()]
	if name == "" {
		name = fe.Namespace()
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", name, fe.Tag())
	}
}
