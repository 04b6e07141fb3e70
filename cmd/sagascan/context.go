package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sagascan/internal/catalog"
	"sagascan/internal/catalog/catalogdb"
	"sagascan/internal/config"
	"sagascan/internal/logging"
	"sagascan/internal/registry"
	"sagascan/internal/resolve"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	registryOnce sync.Once
	registry     *registry.Registry
	registryErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureRegistry() (*registry.Registry, error) {
	c.registryOnce.Do(func() {
		c.registry, c.registryErr = registry.Load()
	})
	return c.registry, c.registryErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) newResolver() (*resolve.Resolver, error) {
	reg, err := c.ensureRegistry()
	if err != nil {
		return nil, err
	}
	logger, err := c.newLogger()
	if err != nil {
		return nil, err
	}
	return resolve.NewResolver(reg, logger), nil
}

// withStore opens the configured catalog backend, runs fn against it, and
// closes it afterwards.
func (c *commandContext) withStore(fn func(catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	switch cfg.Catalog.Backend {
	case "sqlite":
		store, err := catalogdb.Open(cfg.Catalog.DatabasePath)
		if err != nil {
			return fmt.Errorf("open catalog database: %w", err)
		}
		defer store.Close()
		return fn(store)
	case "http":
		client, err := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIToken)
		if err != nil {
			return fmt.Errorf("create catalog client: %w", err)
		}
		return fn(client)
	default:
		return fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}
}

// withLocalStore is like withStore but requires the sqlite backend, for
// operations (add, import) the remote catalog does not expose.
func (c *commandContext) withLocalStore(fn func(*catalogdb.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if cfg.Catalog.Backend != "sqlite" {
		return fmt.Errorf("this command requires catalog.backend = \"sqlite\" (configured backend is %q)", cfg.Catalog.Backend)
	}
	store, err := catalogdb.Open(cfg.Catalog.DatabasePath)
	if err != nil {
		return fmt.Errorf("open catalog database: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// analyzerDelay resolves the effective inter-item delay from the flag (in
// milliseconds, -1 meaning "use config") and the configuration.
func (c *commandContext) analyzerDelay(flagMs int) time.Duration {
	if flagMs >= 0 {
		return time.Duration(flagMs) * time.Millisecond
	}
	if c.config != nil && c.config.Analyzer.DelayMs > 0 {
		return time.Duration(c.config.Analyzer.DelayMs) * time.Millisecond
	}
	return 0
}

// analyzerMinConfidence resolves the effective threshold from the flag (zero
// meaning "use config") and the configuration.
func (c *commandContext) analyzerMinConfidence(flag float64) float64 {
	if flag > 0 {
		return flag
	}
	if c.config != nil && c.config.Analyzer.MinConfidence > 0 {
		return c.config.Analyzer.MinConfidence
	}
	return 0
}

// signalContext derives a context cancelled by SIGINT or SIGTERM so a long
// batch run can be aborted between items.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
