// Package extension provides the Forge extension adapter for ClubSync.
//
// It implements the forge.Extension interface to integrate the portal
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.clubsync" or
// "clubsync" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "clubsync"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Multi-tenant club management core"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts ClubSync as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	portal     *clubsync.Portal
	store      store.Store
	portalOpts []clubsync.Option
	useGrove   bool
}

// New creates a new ClubSync Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Portal returns the underlying portal instance.
// This is nil until Register is called.
func (e *Extension) Portal() *clubsync.Portal { return e.portal }

// Register implements [forge.Extension]. It loads configuration,
// initializes the portal, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build portal options from resolved config.
	opts := e.buildPortalOpts()

	p := clubsync.New(e.store, opts...)
	e.portal = p

	return vessel.Provide(fapp.Container(), func() (*clubsync.Portal, error) {
		return e.portal, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.portal == nil {
		return errors.New("clubsync: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.portal.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.portal != nil {
		if err := e.portal.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("clubsync: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildPortalOpts constructs clubsync.Option values from the resolved config.
func (e *Extension) buildPortalOpts() []clubsync.Option {
	opts := make([]clubsync.Option, 0, len(e.portalOpts)+1)

	// Apply config-derived options.
	if e.config.UploadBatchSize > 0 || e.config.UploadFlushInterval > 0 {
		batchSize := e.config.UploadBatchSize
		flushInterval := e.config.UploadFlushInterval
		defaults := DefaultConfig()
		if batchSize == 0 {
			batchSize = defaults.UploadBatchSize
		}
		if flushInterval == 0 {
			flushInterval = defaults.UploadFlushInterval
		}
		opts = append(opts, clubsync.WithUploadMeterConfig(batchSize, flushInterval))
	}

	// Append any pass-through portal options.
	opts = append(opts, e.portalOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("clubsync: configuration is required but not found in config files; " +
				"ensure 'extensions.clubsync' or 'clubsync' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("clubsync: configuration loaded",
		forge.F("disable_routes", e.config.DisableRoutes),
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("base_path", e.config.BasePath),
		forge.F("upload_batch_size", e.config.UploadBatchSize),
		forge.F("upload_flush_interval", e.config.UploadFlushInterval),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.clubsync" first (namespaced pattern).
	if cm.IsSet("extensions.clubsync") {
		if err := cm.Bind("extensions.clubsync", &cfg); err == nil {
			e.Logger().Debug("clubsync: loaded config from file",
				forge.F("key", "extensions.clubsync"),
			)
			return cfg, true
		}
		e.Logger().Warn("clubsync: failed to bind extensions.clubsync config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "clubsync" key.
	if cm.IsSet("clubsync") {
		if err := cm.Bind("clubsync", &cfg); err == nil {
			e.Logger().Debug("clubsync: loaded config from file",
				forge.F("key", "clubsync"),
			)
			return cfg, true
		}
		e.Logger().Warn("clubsync: failed to bind clubsync config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.UploadBatchSize == 0 {
		cfg.UploadBatchSize = defaults.UploadBatchSize
	}
	if cfg.UploadFlushInterval == 0 {
		cfg.UploadFlushInterval = defaults.UploadFlushInterval
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableRoutes {
		yamlConfig.DisableRoutes = true
	}
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.BasePath == "" && programmaticConfig.BasePath != "" {
		yamlConfig.BasePath = programmaticConfig.BasePath
	}
	if yamlConfig.GroveDatabase == "" && programmaticConfig.GroveDatabase != "" {
		yamlConfig.GroveDatabase = programmaticConfig.GroveDatabase
	}

	// Duration/int fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.UploadBatchSize == 0 && programmaticConfig.UploadBatchSize != 0 {
		yamlConfig.UploadBatchSize = programmaticConfig.UploadBatchSize
	}
	if yamlConfig.UploadFlushInterval == 0 && programmaticConfig.UploadFlushInterval != 0 {
		yamlConfig.UploadFlushInterval = programmaticConfig.UploadFlushInterval
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
