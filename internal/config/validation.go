package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	// Validate audit settings
	if err := c.validateAudit(); err != nil {
		errors = append(errors, err...)
	}

	// Validate report settings
	if err := c.validateReport(); err != nil {
		errors = append(errors, err...)
	}

	// Validate logging settings
	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateAudit() ValidationErrors {
	var errors ValidationErrors

	if c.Audit.CriticalData == "" {
		errors = append(errors, ValidationError{
			Field:   "audit.critical_data",
			Message: "critical_data is required",
		})
	}

	if c.Audit.DataDir == "" {
		errors = append(errors, ValidationError{
			Field:   "audit.data_dir",
			Message: "data_dir is required",
		})
	}

	if c.Audit.Threshold < 0 || c.Audit.Threshold > 1 {
		errors = append(errors, ValidationError{
			Field:   "audit.threshold",
			Message: "threshold must be between 0 and 1",
		})
	}

	return errors
}

func (c *Config) validateReport() ValidationErrors {
	var errors ValidationErrors

	if c.Report.OutputDir == "" {
		errors = append(errors, ValidationError{
			Field:   "report.output_dir",
			Message: "output_dir is required",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
