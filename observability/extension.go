// Package observability provides a metrics extension for the portal that
// records lifecycle event counts via a MetricFactory.
package observability

import (
	"context"
	"time"

	"github.com/xraph/clubsync/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                  = (*MetricsExtension)(nil)
	_ plugin.OnInit                  = (*MetricsExtension)(nil)
	_ plugin.OnMemberSaved           = (*MetricsExtension)(nil)
	_ plugin.OnMemberArchived        = (*MetricsExtension)(nil)
	_ plugin.OnAttendanceRecorded    = (*MetricsExtension)(nil)
	_ plugin.OnInstructorSaved       = (*MetricsExtension)(nil)
	_ plugin.OnDuesGenerated         = (*MetricsExtension)(nil)
	_ plugin.OnPaymentRegistered     = (*MetricsExtension)(nil)
	_ plugin.OnPaymentEdited         = (*MetricsExtension)(nil)
	_ plugin.OnScheduleSaved         = (*MetricsExtension)(nil)
	_ plugin.OnScheduleStatusChanged = (*MetricsExtension)(nil)
	_ plugin.OnEnrollmentChanged     = (*MetricsExtension)(nil)
	_ plugin.OnSnapshotRefreshed     = (*MetricsExtension)(nil)
	_ plugin.OnUploadsFlushed        = (*MetricsExtension)(nil)
	_ plugin.OnStorageQuota          = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a portal plugin to automatically track club activity.
type MetricsExtension struct {
	factory MetricFactory

	// Membership metrics
	MemberSaved     Counter
	MemberArchived  Counter
	InstructorSaved Counter

	// Billing metrics
	DuesGenerated     Counter
	DuesBatchSize     Histogram
	PaymentRegistered Counter
	PaymentEdited     Counter

	// Attendance metrics
	AttendanceRecorded Counter

	// Schedule metrics
	ScheduleSaved         Counter
	ScheduleStatusChanged Counter
	EnrollmentJoined      Counter
	EnrollmentLeft        Counter

	// Snapshot metrics
	SnapshotRefreshes      Counter
	SnapshotCollectionSize Histogram

	// Storage metrics
	UploadsFlushed     Counter
	UploadFlushLatency Histogram
	StorageQuotaHits   Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Membership metrics
		MemberSaved:     factory.Counter("clubsync.member.saved"),
		MemberArchived:  factory.Counter("clubsync.member.archived"),
		InstructorSaved: factory.Counter("clubsync.instructor.saved"),

		// Attendance metrics
		AttendanceRecorded: factory.Counter("clubsync.attendance.recorded"),

		// Billing metrics
		DuesGenerated:     factory.Counter("clubsync.dues.generated"),
		DuesBatchSize:     factory.Histogram("clubsync.dues.batch.size"),
		PaymentRegistered: factory.Counter("clubsync.payment.registered"),
		PaymentEdited:     factory.Counter("clubsync.payment.edited"),

		// Schedule metrics
		ScheduleSaved:         factory.Counter("clubsync.schedule.saved"),
		ScheduleStatusChanged: factory.Counter("clubsync.schedule.status.changed"),
		EnrollmentJoined:      factory.Counter("clubsync.enrollment.joined"),
		EnrollmentLeft:        factory.Counter("clubsync.enrollment.left"),

		// Snapshot metrics
		SnapshotRefreshes:      factory.Counter("clubsync.snapshot.refreshes"),
		SnapshotCollectionSize: factory.Histogram("clubsync.snapshot.collection.size"),

		// Storage metrics
		UploadsFlushed:     factory.Counter("clubsync.uploads.flushed"),
		UploadFlushLatency: factory.Histogram("clubsync.uploads.flush.latency_ms"),
		StorageQuotaHits:   factory.Counter("clubsync.storage.quota.hits"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Membership hooks
// ──────────────────────────────────────────────────

// OnMemberSaved implements plugin.OnMemberSaved.
func (m *MetricsExtension) OnMemberSaved(_ context.Context, _ interface{}) error {
	m.MemberSaved.Inc()
	return nil
}

// OnMemberArchived implements plugin.OnMemberArchived.
func (m *MetricsExtension) OnMemberArchived(_ context.Context, _ string) error {
	m.MemberArchived.Inc()
	return nil
}

// OnInstructorSaved implements plugin.OnInstructorSaved.
func (m *MetricsExtension) OnInstructorSaved(_ context.Context, _ interface{}) error {
	m.InstructorSaved.Inc()
	return nil
}

// OnAttendanceRecorded implements plugin.OnAttendanceRecorded.
func (m *MetricsExtension) OnAttendanceRecorded(_ context.Context, _, _ string) error {
	m.AttendanceRecorded.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Billing hooks
// ──────────────────────────────────────────────────

// OnDuesGenerated implements plugin.OnDuesGenerated.
func (m *MetricsExtension) OnDuesGenerated(_ context.Context, _, _ string, created int) error {
	m.DuesGenerated.Add(float64(created))
	m.DuesBatchSize.Observe(float64(created))
	return nil
}

// OnPaymentRegistered implements plugin.OnPaymentRegistered.
func (m *MetricsExtension) OnPaymentRegistered(_ context.Context, _ interface{}) error {
	m.PaymentRegistered.Inc()
	return nil
}

// OnPaymentEdited implements plugin.OnPaymentEdited.
func (m *MetricsExtension) OnPaymentEdited(_ context.Context, _ string) error {
	m.PaymentEdited.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Schedule hooks
// ──────────────────────────────────────────────────

// OnScheduleSaved implements plugin.OnScheduleSaved.
func (m *MetricsExtension) OnScheduleSaved(_ context.Context, _ interface{}) error {
	m.ScheduleSaved.Inc()
	return nil
}

// OnScheduleStatusChanged implements plugin.OnScheduleStatusChanged.
func (m *MetricsExtension) OnScheduleStatusChanged(_ context.Context, _, _ string) error {
	m.ScheduleStatusChanged.Inc()
	return nil
}

// OnEnrollmentChanged implements plugin.OnEnrollmentChanged.
func (m *MetricsExtension) OnEnrollmentChanged(_ context.Context, _, _ string, enrolled bool) error {
	if enrolled {
		m.EnrollmentJoined.Inc()
	} else {
		m.EnrollmentLeft.Inc()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Data feed hooks
// ──────────────────────────────────────────────────

// OnSnapshotRefreshed implements plugin.OnSnapshotRefreshed.
func (m *MetricsExtension) OnSnapshotRefreshed(_ context.Context, _, _ string, count int) error {
	m.SnapshotRefreshes.Inc()
	m.SnapshotCollectionSize.Observe(float64(count))
	return nil
}

// ──────────────────────────────────────────────────
// Storage hooks
// ──────────────────────────────────────────────────

// OnUploadsFlushed implements plugin.OnUploadsFlushed.
func (m *MetricsExtension) OnUploadsFlushed(_ context.Context, count int, elapsed time.Duration) error {
	m.UploadsFlushed.Add(float64(count))
	m.UploadFlushLatency.Observe(float64(elapsed.Milliseconds()))
	return nil
}

// OnStorageQuota implements plugin.OnStorageQuota.
func (m *MetricsExtension) OnStorageQuota(_ context.Context, _ string, _, _ int64) error {
	m.StorageQuotaHits.Inc()
	return nil
}
