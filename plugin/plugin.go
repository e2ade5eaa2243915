// Package plugin provides an extensible plugin system for the portal.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"
	"time"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, portal interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Membership hooks
// ──────────────────────────────────────────────────

// OnMemberSaved is called when a member is created or updated.
type OnMemberSaved interface {
	Plugin
	OnMemberSaved(ctx context.Context, member interface{}) error
}

// OnMemberArchived is called when a member is soft-deleted.
type OnMemberArchived interface {
	Plugin
	OnMemberArchived(ctx context.Context, memberID string) error
}

// OnAttendanceRecorded is called when a member checks in at the door.
type OnAttendanceRecorded interface {
	Plugin
	OnAttendanceRecorded(ctx context.Context, clubID, memberID string) error
}

// OnInstructorSaved is called when an instructor and its credential
// record are written.
type OnInstructorSaved interface {
	Plugin
	OnInstructorSaved(ctx context.Context, instructor interface{}) error
}

// ──────────────────────────────────────────────────
// Billing hooks
// ──────────────────────────────────────────────────

// OnDuesGenerated is called after a monthly dues generation run.
type OnDuesGenerated interface {
	Plugin
	OnDuesGenerated(ctx context.Context, clubID, period string, created int) error
}

// OnPaymentRegistered is called when a payment settles a due.
type OnPaymentRegistered interface {
	Plugin
	OnPaymentRegistered(ctx context.Context, payment interface{}) error
}

// OnPaymentEdited is called when a payment's free-text details change.
type OnPaymentEdited interface {
	Plugin
	OnPaymentEdited(ctx context.Context, paymentID string) error
}

// ──────────────────────────────────────────────────
// Schedule hooks
// ──────────────────────────────────────────────────

// OnScheduleSaved is called when a schedule entry is created or edited.
type OnScheduleSaved interface {
	Plugin
	OnScheduleSaved(ctx context.Context, entry interface{}) error
}

// OnScheduleStatusChanged is called when an instructor decides on a
// proposed slot or staff resets the decision.
type OnScheduleStatusChanged interface {
	Plugin
	OnScheduleStatusChanged(ctx context.Context, entryID, status string) error
}

// OnEnrollmentChanged is called when a member joins or leaves a class.
type OnEnrollmentChanged interface {
	Plugin
	OnEnrollmentChanged(ctx context.Context, entryID, memberID string, enrolled bool) error
}

// ──────────────────────────────────────────────────
// Data feed hooks
// ──────────────────────────────────────────────────

// OnSnapshotRefreshed is called when an aggregator collection receives
// a fresh replacement list.
type OnSnapshotRefreshed interface {
	Plugin
	OnSnapshotRefreshed(ctx context.Context, clubID, collection string, count int) error
}

// ──────────────────────────────────────────────────
// Storage hooks
// ──────────────────────────────────────────────────

// OnUploadsFlushed is called when buffered upload events are flushed
// to the store.
type OnUploadsFlushed interface {
	Plugin
	OnUploadsFlushed(ctx context.Context, count int, elapsed time.Duration) error
}

// OnStorageQuota is called when a club hits its storage allowance.
type OnStorageQuota interface {
	Plugin
	OnStorageQuota(ctx context.Context, clubID string, used, limit int64) error
}
