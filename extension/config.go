package extension

import "time"

// Config holds the ClubSync extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.clubsync" or "clubsync" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// BasePath is the URL prefix for portal routes (default: "/clubsync").
	BasePath string `json:"base_path" mapstructure:"base_path" yaml:"base_path"`

	// UploadBatchSize is the number of upload events to buffer before
	// flushing to the store (default: 100).
	UploadBatchSize int `json:"upload_batch_size" mapstructure:"upload_batch_size" yaml:"upload_batch_size"`

	// UploadFlushInterval is how frequently the upload buffer is flushed
	// even if the batch size has not been reached (default: 5s).
	UploadFlushInterval time.Duration `json:"upload_flush_interval" mapstructure:"upload_flush_interval" yaml:"upload_flush_interval"`

	// GroveDatabase is the name of a grove.DB registered in the DI container.
	// When set, the extension resolves this named database and constructs the
	// mongo store from it. When empty and WithGroveDatabase was called, the
	// default (unnamed) DB is used.
	GroveDatabase string `json:"grove_database" mapstructure:"grove_database" yaml:"grove_database"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UploadBatchSize:     100,
		UploadFlushInterval: 5 * time.Second,
	}
}
