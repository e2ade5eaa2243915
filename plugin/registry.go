package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                  []OnInit
	onShutdown              []OnShutdown
	onMemberSaved           []OnMemberSaved
	onMemberArchived        []OnMemberArchived
	onAttendanceRecorded    []OnAttendanceRecorded
	onInstructorSaved       []OnInstructorSaved
	onDuesGenerated         []OnDuesGenerated
	onPaymentRegistered     []OnPaymentRegistered
	onPaymentEdited         []OnPaymentEdited
	onScheduleSaved         []OnScheduleSaved
	onScheduleStatusChanged []OnScheduleStatusChanged
	onEnrollmentChanged     []OnEnrollmentChanged
	onSnapshotRefreshed     []OnSnapshotRefreshed
	onUploadsFlushed        []OnUploadsFlushed
	onStorageQuota          []OnStorageQuota
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnMemberSaved); ok {
		r.onMemberSaved = append(r.onMemberSaved, v)
	}
	if v, ok := p.(OnMemberArchived); ok {
		r.onMemberArchived = append(r.onMemberArchived, v)
	}
	if v, ok := p.(OnAttendanceRecorded); ok {
		r.onAttendanceRecorded = append(r.onAttendanceRecorded, v)
	}
	if v, ok := p.(OnInstructorSaved); ok {
		r.onInstructorSaved = append(r.onInstructorSaved, v)
	}
	if v, ok := p.(OnDuesGenerated); ok {
		r.onDuesGenerated = append(r.onDuesGenerated, v)
	}
	if v, ok := p.(OnPaymentRegistered); ok {
		r.onPaymentRegistered = append(r.onPaymentRegistered, v)
	}
	if v, ok := p.(OnPaymentEdited); ok {
		r.onPaymentEdited = append(r.onPaymentEdited, v)
	}
	if v, ok := p.(OnScheduleSaved); ok {
		r.onScheduleSaved = append(r.onScheduleSaved, v)
	}
	if v, ok := p.(OnScheduleStatusChanged); ok {
		r.onScheduleStatusChanged = append(r.onScheduleStatusChanged, v)
	}
	if v, ok := p.(OnEnrollmentChanged); ok {
		r.onEnrollmentChanged = append(r.onEnrollmentChanged, v)
	}
	if v, ok := p.(OnSnapshotRefreshed); ok {
		r.onSnapshotRefreshed = append(r.onSnapshotRefreshed, v)
	}
	if v, ok := p.(OnUploadsFlushed); ok {
		r.onUploadsFlushed = append(r.onUploadsFlushed, v)
	}
	if v, ok := p.(OnStorageQuota); ok {
		r.onStorageQuota = append(r.onStorageQuota, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnMemberSaved)(nil)).Elem(), "OnMemberSaved")
	checkInterface(reflect.TypeOf((*OnDuesGenerated)(nil)).Elem(), "OnDuesGenerated")
	checkInterface(reflect.TypeOf((*OnPaymentRegistered)(nil)).Elem(), "OnPaymentRegistered")
	checkInterface(reflect.TypeOf((*OnScheduleSaved)(nil)).Elem(), "OnScheduleSaved")
	checkInterface(reflect.TypeOf((*OnSnapshotRefreshed)(nil)).Elem(), "OnSnapshotRefreshed")
	checkInterface(reflect.TypeOf((*OnUploadsFlushed)(nil)).Elem(), "OnUploadsFlushed")
	checkInterface(reflect.TypeOf((*OnStorageQuota)(nil)).Elem(), "OnStorageQuota")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, portal interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, portal)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitMemberSaved emits a member saved event.
func (r *Registry) EmitMemberSaved(ctx context.Context, member interface{}) {
	r.mu.RLock()
	plugins := r.onMemberSaved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMemberSaved(ctx, member)
		}); err != nil {
			r.logger.Warn("plugin OnMemberSaved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitMemberArchived emits a member archived event.
func (r *Registry) EmitMemberArchived(ctx context.Context, memberID string) {
	r.mu.RLock()
	plugins := r.onMemberArchived
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMemberArchived(ctx, memberID)
		}); err != nil {
			r.logger.Warn("plugin OnMemberArchived failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAttendanceRecorded emits an attendance check-in event.
func (r *Registry) EmitAttendanceRecorded(ctx context.Context, clubID, memberID string) {
	r.mu.RLock()
	plugins := r.onAttendanceRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAttendanceRecorded(ctx, clubID, memberID)
		}); err != nil {
			r.logger.Warn("plugin OnAttendanceRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInstructorSaved emits an instructor saved event.
func (r *Registry) EmitInstructorSaved(ctx context.Context, inst interface{}) {
	r.mu.RLock()
	plugins := r.onInstructorSaved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInstructorSaved(ctx, inst)
		}); err != nil {
			r.logger.Warn("plugin OnInstructorSaved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitDuesGenerated emits a dues generated event.
func (r *Registry) EmitDuesGenerated(ctx context.Context, clubID, period string, created int) {
	r.mu.RLock()
	plugins := r.onDuesGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnDuesGenerated(ctx, clubID, period, created)
		}); err != nil {
			r.logger.Warn("plugin OnDuesGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPaymentRegistered emits a payment registered event.
func (r *Registry) EmitPaymentRegistered(ctx context.Context, pay interface{}) {
	r.mu.RLock()
	plugins := r.onPaymentRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPaymentRegistered(ctx, pay)
		}); err != nil {
			r.logger.Warn("plugin OnPaymentRegistered failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPaymentEdited emits a payment edited event.
func (r *Registry) EmitPaymentEdited(ctx context.Context, paymentID string) {
	r.mu.RLock()
	plugins := r.onPaymentEdited
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPaymentEdited(ctx, paymentID)
		}); err != nil {
			r.logger.Warn("plugin OnPaymentEdited failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitScheduleSaved emits a schedule saved event.
func (r *Registry) EmitScheduleSaved(ctx context.Context, entry interface{}) {
	r.mu.RLock()
	plugins := r.onScheduleSaved
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnScheduleSaved(ctx, entry)
		}); err != nil {
			r.logger.Warn("plugin OnScheduleSaved failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitScheduleStatusChanged emits a schedule status changed event.
func (r *Registry) EmitScheduleStatusChanged(ctx context.Context, entryID, status string) {
	r.mu.RLock()
	plugins := r.onScheduleStatusChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnScheduleStatusChanged(ctx, entryID, status)
		}); err != nil {
			r.logger.Warn("plugin OnScheduleStatusChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEnrollmentChanged emits an enrollment changed event.
func (r *Registry) EmitEnrollmentChanged(ctx context.Context, entryID, memberID string, enrolled bool) {
	r.mu.RLock()
	plugins := r.onEnrollmentChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEnrollmentChanged(ctx, entryID, memberID, enrolled)
		}); err != nil {
			r.logger.Warn("plugin OnEnrollmentChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSnapshotRefreshed emits a snapshot refreshed event.
func (r *Registry) EmitSnapshotRefreshed(ctx context.Context, clubID, collection string, count int) {
	r.mu.RLock()
	plugins := r.onSnapshotRefreshed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSnapshotRefreshed(ctx, clubID, collection, count)
		}); err != nil {
			r.logger.Warn("plugin OnSnapshotRefreshed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitUploadsFlushed emits an uploads flushed event.
func (r *Registry) EmitUploadsFlushed(ctx context.Context, count int, elapsed time.Duration) {
	r.mu.RLock()
	plugins := r.onUploadsFlushed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnUploadsFlushed(ctx, count, elapsed)
		}); err != nil {
			r.logger.Warn("plugin OnUploadsFlushed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitStorageQuota emits a storage quota event.
func (r *Registry) EmitStorageQuota(ctx context.Context, clubID string, used, limit int64) {
	r.mu.RLock()
	plugins := r.onStorageQuota
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnStorageQuota(ctx, clubID, used, limit)
		}); err != nil {
			r.logger.Warn("plugin OnStorageQuota failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the portal pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
