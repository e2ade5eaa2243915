package extension

import (
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/plugin"
	"github.com/xraph/clubsync/store"
)

// Option configures the ClubSync Forge extension.
type Option func(*Extension)

// WithStore sets the store for the portal.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithPortalOption passes a clubsync.Option through to the underlying portal.
func WithPortalOption(opt clubsync.Option) Option {
	return func(e *Extension) {
		e.portalOpts = append(e.portalOpts, opt)
	}
}

// WithPlugin registers a portal plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.portalOpts = append(e.portalOpts, clubsync.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableRoutes prevents HTTP route registration.
func WithDisableRoutes() Option {
	return func(e *Extension) { e.config.DisableRoutes = true }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithBasePath sets the URL prefix for portal routes.
func WithBasePath(path string) Option {
	return func(e *Extension) { e.config.BasePath = path }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithUploadBatchSize sets the number of upload events to buffer before flushing.
func WithUploadBatchSize(size int) Option {
	return func(e *Extension) { e.config.UploadBatchSize = size }
}

// WithUploadFlushInterval sets how frequently the upload buffer is flushed.
func WithUploadFlushInterval(d time.Duration) Option {
	return func(e *Extension) { e.config.UploadFlushInterval = d }
}

// WithGroveDatabase sets the name of the grove.DB to resolve from the DI
// container. The extension constructs the mongo store from it. Pass an empty
// string to use the default (unnamed) grove.DB.
func WithGroveDatabase(name string) Option {
	return func(e *Extension) {
		e.config.GroveDatabase = name
		e.useGrove = true
	}
}
