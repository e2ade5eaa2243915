package clubsync

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound     = errors.New("clubsync: not found")
	ErrInvalidInput = errors.New("clubsync: invalid input")
	ErrWrongTenant  = errors.New("clubsync: record belongs to another club")

	// Member errors
	ErrMemberNotFound = errors.New("clubsync: member not found")
	ErrMemberArchived = errors.New("clubsync: member is archived")

	// Dues errors
	ErrDueNotFound = errors.New("clubsync: due not found")
	ErrDueExists   = errors.New("clubsync: due already exists for member and period")
	ErrDuePaid     = errors.New("clubsync: due is already paid")

	// Payment errors
	ErrPaymentNotFound = errors.New("clubsync: payment not found")

	// Schedule errors
	ErrScheduleNotFound  = errors.New("clubsync: schedule entry not found")
	ErrScheduleConflict  = errors.New("clubsync: instructor already has a class in that day and time range")
	ErrSpaceNotAllowed   = errors.New("clubsync: space is not permitted for the activity")
	ErrClassFull         = errors.New("clubsync: class is at capacity")
	ErrAlreadyEnrolled   = errors.New("clubsync: member is already enrolled")
	ErrNotEnrolled       = errors.New("clubsync: member is not enrolled")
	ErrInvalidTransition = errors.New("clubsync: invalid schedule status transition")

	// Activity / instructor errors
	ErrActivityNotFound   = errors.New("clubsync: activity not found")
	ErrInstructorNotFound = errors.New("clubsync: instructor not found")
	ErrUserNotFound       = errors.New("clubsync: credential record not found")
	ErrNewsNotFound       = errors.New("clubsync: announcement not found")

	// Settings / storage errors
	ErrSettingsNotFound = errors.New("clubsync: club settings not found")
	ErrNoFeeConfigured  = errors.New("clubsync: no fee configured for membership type")
	ErrStorageQuota     = errors.New("clubsync: storage quota exceeded")
	ErrUploadBufferFull = errors.New("clubsync: upload meter buffer full")

	// Store errors
	ErrStoreUnavailable = errors.New("clubsync: store unavailable")
	ErrStoreClosed      = errors.New("clubsync: store is closed")
	ErrBatchFailed      = errors.New("clubsync: atomic batch failed")
	ErrMigrationFailed  = errors.New("clubsync: migration failed")

	// Snapshot errors
	ErrSnapshotClosed = errors.New("clubsync: snapshot aggregator is closed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("clubsync: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrMemberNotFound) ||
		errors.Is(err, ErrDueNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrActivityNotFound) ||
		errors.Is(err, ErrInstructorNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrNewsNotFound) ||
		errors.Is(err, ErrSettingsNotFound)
}

// IsConflict returns true if the error reports a scheduling or
// duplicate-write conflict that refused a write before persistence.
func IsConflict(err error) bool {
	return errors.Is(err, ErrScheduleConflict) ||
		errors.Is(err, ErrDueExists) ||
		errors.Is(err, ErrDuePaid) ||
		errors.Is(err, ErrAlreadyEnrolled) ||
		errors.Is(err, ErrClassFull)
}

// IsValidation returns true if the error is a validation failure.
// ValidationError is matched in both pointer and value form.
func IsValidation(err error) bool {
	var pe *ValidationError
	if errors.As(err, &pe) {
		return true
	}
	var ve ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrSpaceNotAllowed) || errors.Is(err, ErrInvalidInput)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrBatchFailed) ||
		errors.Is(err, ErrUploadBufferFull)
}
