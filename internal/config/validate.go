package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateAnalyzer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Backend {
	case "sqlite":
		if strings.TrimSpace(c.Catalog.DatabasePath) == "" {
			return errors.New("catalog.database_path must be set for the sqlite backend")
		}
	case "http":
		if strings.TrimSpace(c.Catalog.BaseURL) == "" {
			defaultPath, err := DefaultConfigPath()
			if err != nil {
				defaultPath = "~/.config/sagascan/config.toml"
			}
			return fmt.Errorf("catalog.base_url is required for the http backend; edit %s (create with 'sagascan config init')", defaultPath)
		}
	default:
		return fmt.Errorf("catalog.backend: unsupported value %q (use \"http\" or \"sqlite\")", c.Catalog.Backend)
	}
	return nil
}

func (c *Config) validateAnalyzer() error {
	if c.Analyzer.MinConfidence < 0 || c.Analyzer.MinConfidence > 100 {
		return errors.New("analyzer.min_confidence must be between 0 and 100")
	}
	if c.Analyzer.DelayMs < 0 {
		return errors.New("analyzer.delay_ms must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
