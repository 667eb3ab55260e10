package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateIngest(); err != nil {
		return err
	}
	if err := c.validateSearch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateIngest() error {
	if c.Ingest.Workers < 1 {
		return errors.New("ingest.workers must be at least 1")
	}
	if c.Ingest.MaxAttempts < 1 {
		return errors.New("ingest.max_attempts must be at least 1")
	}
	if c.Ingest.RetryBackoffSeconds < 0 {
		return errors.New("ingest.retry_backoff_seconds must not be negative")
	}
	if c.Ingest.FetchTimeoutSeconds < 1 {
		return errors.New("ingest.fetch_timeout_seconds must be at least 1")
	}
	if c.Ingest.Language == "" {
		return errors.New("ingest.language must be set")
	}
	return nil
}

func (c *Config) validateSearch() error {
	if c.Search.ContextRadius < 0 {
		return errors.New("search.context_radius must not be negative")
	}
	if c.Search.LeadInSeconds < 0 {
		return errors.New("search.lead_in_seconds must not be negative")
	}
	if c.Search.MaxResults < 1 {
		return errors.New("search.max_results must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
