package audithook

// Action constants for audit events.
const (
	// Membership actions
	ActionMemberSaved     = "member.saved"
	ActionMemberArchived  = "member.archived"
	ActionInstructorSaved = "instructor.saved"

	// Attendance actions
	ActionAttendanceRecorded = "attendance.recorded"

	// Billing actions
	ActionDuesGenerated     = "dues.generated"
	ActionPaymentRegistered = "payment.registered"
	ActionPaymentEdited     = "payment.edited"

	// Schedule actions
	ActionScheduleSaved         = "schedule.saved"
	ActionScheduleStatusChanged = "schedule.status_changed"
	ActionEnrollmentJoined      = "enrollment.joined"
	ActionEnrollmentLeft        = "enrollment.left"

	// Storage actions
	ActionUploadsFlushed = "uploads.flushed"
	ActionStorageQuota   = "storage.quota_exceeded"
)

// Resource constants for audit events.
const (
	ResourceMember     = "member"
	ResourceAttendance = "attendance"
	ResourceInstructor = "instructor"
	ResourceDue        = "due"
	ResourcePayment    = "payment"
	ResourceSchedule   = "schedule"
	ResourceStorage    = "storage"
)

// Category constants for audit events.
const (
	CategoryMembership = "membership"
	CategoryBilling    = "billing"
	CategorySchedule   = "schedule"
	CategoryStorage    = "storage"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
