package clubsync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/plugin"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/types"
	"github.com/xraph/clubsync/usage"
)

// Portal is the club management engine. It owns the storage backend,
// the live data aggregators, and the background upload meter.
type Portal struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger
	clock   func() time.Time

	// Background workers
	uploadBuffer chan *usage.UploadEvent
	stopChan     chan struct{}
	wg           sync.WaitGroup

	// Aggregators, one per opened club
	aggMu       sync.Mutex
	aggregators map[string]*Aggregator

	// Configuration
	uploadBatchSize     int
	uploadFlushInterval time.Duration
}

// New creates a new Portal instance.
func New(s store.Store, opts ...Option) *Portal {
	p := &Portal{
		store:               s,
		plugins:             plugin.NewRegistry(),
		logger:              slog.Default(),
		clock:               time.Now,
		uploadBuffer:        make(chan *usage.UploadEvent, 10000),
		stopChan:            make(chan struct{}),
		aggregators:         make(map[string]*Aggregator),
		uploadBatchSize:     100,
		uploadFlushInterval: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Option configures a Portal instance.
type Option func(*Portal)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Portal) {
		p.logger = logger
		p.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(pl plugin.Plugin) Option {
	return func(p *Portal) {
		_ = p.plugins.Register(pl) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock overrides the time source. Used by dues generation and
// statement building; handy in tests.
func WithClock(clock func() time.Time) Option {
	return func(p *Portal) {
		p.clock = clock
	}
}

// WithUploadMeterConfig configures upload metering parameters.
func WithUploadMeterConfig(batchSize int, flushInterval time.Duration) Option {
	return func(p *Portal) {
		p.uploadBatchSize = batchSize
		p.uploadFlushInterval = flushInterval
	}
}

// Start migrates the store, initializes plugins, and begins the
// background workers.
func (p *Portal) Start(ctx context.Context) error {
	if err := p.store.Migrate(ctx); err != nil {
		return err
	}

	p.plugins.EmitInit(ctx, p)

	p.wg.Add(1)
	go p.uploadFlushWorker(ctx)

	p.logger.Info("portal started",
		"upload_batch_size", p.uploadBatchSize,
		"upload_flush_interval", p.uploadFlushInterval,
	)

	return nil
}

// Stop shuts down the Portal: aggregators are closed, the upload
// buffer is flushed, plugins are notified, and the store is closed.
func (p *Portal) Stop() error {
	p.aggMu.Lock()
	for key, agg := range p.aggregators {
		agg.Close()
		delete(p.aggregators, key)
	}
	p.aggMu.Unlock()

	close(p.stopChan)
	p.wg.Wait()

	ctx := context.Background()
	p.plugins.EmitShutdown(ctx)

	return p.store.Close()
}

// Store returns the underlying store.
func (p *Portal) Store() store.Store { return p.store }

// Plugins returns the plugin registry.
func (p *Portal) Plugins() *plugin.Registry { return p.plugins }

// ──────────────────────────────────────────────────
// Upload Metering
// ──────────────────────────────────────────────────

// RecordUpload records a file upload against the club's storage
// allowance (non-blocking). It rejects the upload when the club is
// over quota.
func (p *Portal) RecordUpload(ctx context.Context, clubID id.ClubID, kind usage.Kind, size int64, path string) error {
	if clubID.IsNil() || size < 0 {
		return ErrInvalidInput
	}

	used, limit, err := p.storageState(ctx, clubID)
	if err != nil {
		return err
	}
	if used+size > limit {
		p.plugins.EmitStorageQuota(ctx, clubID.String(), used, limit)
		return ErrStorageQuota
	}

	event := &usage.UploadEvent{
		Entity:   types.NewEntity(),
		ID:       id.NewUploadID(),
		ClubID:   clubID,
		Kind:     kind,
		Bytes:    size,
		Path:     path,
		Occurred: p.clock(),
	}

	select {
	case p.uploadBuffer <- event:
		return nil
	default:
		return ErrUploadBufferFull
	}
}

// StorageUsed returns the club's persisted upload byte total.
func (p *Portal) StorageUsed(ctx context.Context, clubID id.ClubID) (int64, error) {
	return p.store.StorageUsed(ctx, clubID)
}

// storageState resolves the club's current usage and effective limit.
// A club with no settings document gets the default allowance.
func (p *Portal) storageState(ctx context.Context, clubID id.ClubID) (used, limit int64, err error) {
	cfg, err := p.store.GetSettings(ctx, clubID)
	if err != nil {
		if !errors.Is(err, ErrSettingsNotFound) {
			return 0, 0, err
		}
		used, err = p.store.StorageUsed(ctx, clubID)
		if err != nil {
			return 0, 0, err
		}
		return used, settings.DefaultStorageLimit, nil
	}
	return cfg.StorageUsed, cfg.Limit(), nil
}

// uploadFlushWorker flushes upload events to the store.
func (p *Portal) uploadFlushWorker(ctx context.Context) {
	defer p.wg.Done()

	batch := make([]*usage.UploadEvent, 0, p.uploadBatchSize)
	ticker := time.NewTicker(p.uploadFlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopChan:
			// Final flush
			if len(batch) > 0 {
				p.flushUploadBatch(ctx, batch)
			}
			return

		case event := <-p.uploadBuffer:
			batch = append(batch, event)
			if len(batch) >= p.uploadBatchSize {
				p.flushUploadBatch(ctx, batch)
				batch = make([]*usage.UploadEvent, 0, p.uploadBatchSize)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				p.flushUploadBatch(ctx, batch)
				batch = make([]*usage.UploadEvent, 0, p.uploadBatchSize)
			}
		}
	}
}

func (p *Portal) flushUploadBatch(ctx context.Context, batch []*usage.UploadEvent) {
	start := time.Now()

	if err := p.store.IngestUploads(ctx, batch); err != nil {
		p.logger.Error("failed to flush upload batch",
			"error", err,
			"batch_size", len(batch),
		)
		return
	}

	elapsed := time.Since(start)
	p.plugins.EmitUploadsFlushed(ctx, len(batch), elapsed)

	p.logger.Debug("flushed upload batch",
		"batch_size", len(batch),
		"elapsed_ms", elapsed.Milliseconds(),
	)
}
