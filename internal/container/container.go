// Package container provides dependency injection for the biztrack application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"fjacquet/biztrack/internal/config"
	"fjacquet/biztrack/internal/kvstore"
	"fjacquet/biztrack/internal/logging"
	"fjacquet/biztrack/internal/report"
	"fjacquet/biztrack/internal/share"
	"fjacquet/biztrack/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
// The ledger and settings store are owned here and handed to every command; nothing
// else keeps a package-level instance.
//
// Container is immutable after creation.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	kv        kvstore.Store
	ledger    *store.Ledger
	settings  *store.SettingsStore
	deliverer report.Deliverer
	exporter  *report.Exporter
	now       func() time.Time
}

// Option overrides a dependency NewContainer would otherwise build from the configuration.
type Option func(*options)

type options struct {
	logger   logging.Logger
	kv       kvstore.Store
	launcher share.Launcher
	now      func() time.Time
}

// WithLogger injects a logger instead of building one from cfg.Log.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithStore injects the key-value backend instead of opening cfg.Storage.
func WithStore(kv kvstore.Store) Option {
	return func(o *options) { o.kv = kv }
}

// WithLauncher injects the share hand-off used in share export mode.
func WithLauncher(l share.Launcher) Option {
	return func(o *options) { o.launcher = l }
}

// WithClock replaces time.Now for export naming and default date ranges.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewContainer creates and wires all application dependencies.
//
// Parameters:
//   - cfg: Application configuration
//   - opts: Optional dependency overrides, mostly for tests
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	kv := o.kv
	if kv == nil {
		var err error
		kv, err = kvstore.Open(cfg.StoreOptions(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
		}
	}

	deliverer, err := newDeliverer(cfg, o.launcher, logger)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}

	c := &Container{
		logger:    logger,
		config:    cfg,
		kv:        kv,
		ledger:    store.NewLedger(kv, logger),
		settings:  store.NewSettingsStore(kv, logger),
		deliverer: deliverer,
		exporter:  report.NewExporter(logger, cfg.CSVDelimiter(), deliverer),
		now:       o.now,
	}

	logger.Debug("Container initialized",
		logging.F(logging.FieldBackend, cfg.Storage.Backend),
		logging.F("export_mode", cfg.Export.Mode))

	return c, nil
}

func newDeliverer(cfg *config.Config, launcher share.Launcher, logger logging.Logger) (report.Deliverer, error) {
	if cfg.Export.Mode != share.ModeShare {
		return share.NewDirectSaver(cfg.Export.OutputDir, logger), nil
	}
	if launcher == nil {
		l, err := share.NewExecLauncher(cfg.Export.ShareCommand)
		if err != nil {
			return nil, err
		}
		launcher = l
	}
	return share.NewCacheSharer("", launcher, logger)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLedger returns the transaction ledger.
func (c *Container) GetLedger() *store.Ledger {
	return c.ledger
}

// GetSettings returns the settings store.
func (c *Container) GetSettings() *store.SettingsStore {
	return c.settings
}

// GetExporter returns the report exporter, already bound to the configured delivery mode.
func (c *Container) GetExporter() *report.Exporter {
	return c.exporter
}

// GetDeliverer returns the artifact destination selected by export.mode.
func (c *Container) GetDeliverer() report.Deliverer {
	return c.deliverer
}

// Now returns the container clock's current time.
func (c *Container) Now() time.Time {
	return c.now()
}

// Close releases the storage backend.
func (c *Container) Close() error {
	if err := c.kv.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
