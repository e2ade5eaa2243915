// Package audithook bridges portal lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on a
// concrete audit store. Callers inject a RecorderFunc adapter that bridges
// to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/clubsync/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                  = (*Extension)(nil)
	_ plugin.OnMemberSaved           = (*Extension)(nil)
	_ plugin.OnMemberArchived        = (*Extension)(nil)
	_ plugin.OnInstructorSaved       = (*Extension)(nil)
	_ plugin.OnDuesGenerated         = (*Extension)(nil)
	_ plugin.OnPaymentRegistered     = (*Extension)(nil)
	_ plugin.OnPaymentEdited         = (*Extension)(nil)
	_ plugin.OnScheduleSaved         = (*Extension)(nil)
	_ plugin.OnScheduleStatusChanged = (*Extension)(nil)
	_ plugin.OnEnrollmentChanged     = (*Extension)(nil)
	_ plugin.OnUploadsFlushed        = (*Extension)(nil)
	_ plugin.OnStorageQuota          = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so this package does not import any audit store
// directly; callers inject the concrete backend at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges portal lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Membership hooks
// ──────────────────────────────────────────────────

// OnMemberSaved implements plugin.OnMemberSaved.
func (e *Extension) OnMemberSaved(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionMemberSaved, SeverityInfo, OutcomeSuccess,
		ResourceMember, "", CategoryMembership, nil,
		"event", "member_saved",
	)
}

// OnMemberArchived implements plugin.OnMemberArchived.
func (e *Extension) OnMemberArchived(ctx context.Context, memberID string) error {
	return e.record(ctx, ActionMemberArchived, SeverityInfo, OutcomeSuccess,
		ResourceMember, memberID, CategoryMembership, nil,
		"member_id", memberID,
	)
}

// OnInstructorSaved implements plugin.OnInstructorSaved.
func (e *Extension) OnInstructorSaved(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionInstructorSaved, SeverityInfo, OutcomeSuccess,
		ResourceInstructor, "", CategoryMembership, nil,
		"event", "instructor_saved",
	)
}

// OnAttendanceRecorded implements plugin.OnAttendanceRecorded.
func (e *Extension) OnAttendanceRecorded(ctx context.Context, clubID, memberID string) error {
	return e.record(ctx, ActionAttendanceRecorded, SeverityInfo, OutcomeSuccess,
		ResourceAttendance, memberID, CategoryMembership, nil,
		"club_id", clubID,
		"member_id", memberID,
	)
}

// ──────────────────────────────────────────────────
// Billing hooks
// ──────────────────────────────────────────────────

// OnDuesGenerated implements plugin.OnDuesGenerated.
func (e *Extension) OnDuesGenerated(ctx context.Context, clubID, period string, created int) error {
	return e.record(ctx, ActionDuesGenerated, SeverityInfo, OutcomeSuccess,
		ResourceDue, "", CategoryBilling, nil,
		"club_id", clubID,
		"period", period,
		"created", created,
	)
}

// OnPaymentRegistered implements plugin.OnPaymentRegistered.
func (e *Extension) OnPaymentRegistered(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPaymentRegistered, SeverityInfo, OutcomeSuccess,
		ResourcePayment, "", CategoryBilling, nil,
		"event", "payment_registered",
	)
}

// OnPaymentEdited implements plugin.OnPaymentEdited.
func (e *Extension) OnPaymentEdited(ctx context.Context, paymentID string) error {
	return e.record(ctx, ActionPaymentEdited, SeverityInfo, OutcomeSuccess,
		ResourcePayment, paymentID, CategoryBilling, nil,
		"payment_id", paymentID,
	)
}

// ──────────────────────────────────────────────────
// Schedule hooks
// ──────────────────────────────────────────────────

// OnScheduleSaved implements plugin.OnScheduleSaved.
func (e *Extension) OnScheduleSaved(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionScheduleSaved, SeverityInfo, OutcomeSuccess,
		ResourceSchedule, "", CategorySchedule, nil,
		"event", "schedule_saved",
	)
}

// OnScheduleStatusChanged implements plugin.OnScheduleStatusChanged.
func (e *Extension) OnScheduleStatusChanged(ctx context.Context, entryID, status string) error {
	return e.record(ctx, ActionScheduleStatusChanged, SeverityInfo, OutcomeSuccess,
		ResourceSchedule, entryID, CategorySchedule, nil,
		"entry_id", entryID,
		"status", status,
	)
}

// OnEnrollmentChanged implements plugin.OnEnrollmentChanged.
func (e *Extension) OnEnrollmentChanged(ctx context.Context, entryID, memberID string, enrolled bool) error {
	action := ActionEnrollmentJoined
	if !enrolled {
		action = ActionEnrollmentLeft
	}
	return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
		ResourceSchedule, entryID, CategorySchedule, nil,
		"entry_id", entryID,
		"member_id", memberID,
	)
}

// ──────────────────────────────────────────────────
// Storage hooks
// ──────────────────────────────────────────────────

// OnUploadsFlushed implements plugin.OnUploadsFlushed.
func (e *Extension) OnUploadsFlushed(ctx context.Context, count int, elapsed time.Duration) error {
	return e.record(ctx, ActionUploadsFlushed, SeverityInfo, OutcomeSuccess,
		ResourceStorage, "", CategoryStorage, nil,
		"count", count,
		"elapsed_ms", elapsed.Milliseconds(),
	)
}

// OnStorageQuota implements plugin.OnStorageQuota.
func (e *Extension) OnStorageQuota(ctx context.Context, clubID string, used, limit int64) error {
	return e.record(ctx, ActionStorageQuota, SeverityWarning, OutcomeFailure,
		ResourceStorage, clubID, CategoryStorage, nil,
		"club_id", clubID,
		"used", used,
		"limit", limit,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
