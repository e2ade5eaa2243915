// Package id defines TypeID-based identity types for all clubsync entities.
//
// Every entity uses a single ID struct with a prefix that identifies the
// entity type. IDs are K-sortable (UUIDv7-based), globally unique, and
// URL-safe in the format "prefix_suffix".
package id

import (
	"database/sql/driver"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

// Prefix constants for all clubsync entity types.
const (
	PrefixClub       Prefix = "club"  // Tenant (club)
	PrefixMember     Prefix = "mem"   // Club member
	PrefixDue        Prefix = "due"   // Monthly due
	PrefixPayment    Prefix = "pay"   // Payment record
	PrefixSchedule   Prefix = "sched" // Schedule entry (weekly class slot)
	PrefixActivity   Prefix = "act"   // Activity (discipline)
	PrefixInstructor Prefix = "inst"  // Instructor profile
	PrefixUser       Prefix = "user"  // Login credential record
	PrefixNews       Prefix = "news"  // Club announcement
	PrefixUpload     Prefix = "upl"   // File upload event
	PrefixAttendance Prefix = "att"   // Attendance check-in
)

// ID is the primary identifier type for all clubsync entities.
// It wraps a TypeID providing a prefix-qualified, globally unique,
// sortable, URL-safe identifier in the format "prefix_suffix".
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix.
// It panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}

	return ID{inner: tid, valid: true}
}

// Parse parses a TypeID string (e.g., "mem_01h2xcejqtf2nbrexx3vqjhp41")
// into an ID. Returns an error if the string is not valid.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}

	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}

	return ID{inner: tid, valid: true}, nil
}

// ParseWithPrefix parses a TypeID string and validates that its prefix
// matches the expected value.
func ParseWithPrefix(s string, expected Prefix) (ID, error) {
	parsed, err := Parse(s)
	if err != nil {
		return Nil, err
	}

	if parsed.Prefix() != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, parsed.Prefix())
	}

	return parsed, nil
}

// MustParse is like Parse but panics on error. Use for hardcoded ID values.
func MustParse(s string) ID {
	parsed, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("id: must parse %q: %v", s, err))
	}

	return parsed
}

// MustParseWithPrefix is like ParseWithPrefix but panics on error.
func MustParseWithPrefix(s string, expected Prefix) ID {
	parsed, err := ParseWithPrefix(s, expected)
	if err != nil {
		panic(fmt.Sprintf("id: must parse with prefix %q: %v", expected, err))
	}

	return parsed
}

// ──────────────────────────────────────────────────
// Entity-specific aliases
// ──────────────────────────────────────────────────

// ClubID is a type-safe identifier for clubs (prefix: "club").
type ClubID = ID

// MemberID is a type-safe identifier for members (prefix: "mem").
type MemberID = ID

// DueID is a type-safe identifier for dues (prefix: "due").
type DueID = ID

// PaymentID is a type-safe identifier for payments (prefix: "pay").
type PaymentID = ID

// ScheduleID is a type-safe identifier for schedule entries (prefix: "sched").
type ScheduleID = ID

// ActivityID is a type-safe identifier for activities (prefix: "act").
type ActivityID = ID

// InstructorID is a type-safe identifier for instructors (prefix: "inst").
type InstructorID = ID

// UserID is a type-safe identifier for credential records (prefix: "user").
type UserID = ID

// NewsID is a type-safe identifier for announcements (prefix: "news").
type NewsID = ID

// UploadID is a type-safe identifier for upload events (prefix: "upl").
type UploadID = ID

// AttendanceID is a type-safe identifier for attendance check-ins (prefix: "att").
type AttendanceID = ID

// AnyID is a type alias that accepts any valid prefix.
type AnyID = ID

// ──────────────────────────────────────────────────
// Convenience constructors
// ──────────────────────────────────────────────────

// NewClubID generates a new unique club ID.
func NewClubID() ID { return New(PrefixClub) }

// NewMemberID generates a new unique member ID.
func NewMemberID() ID { return New(PrefixMember) }

// NewDueID generates a new unique due ID.
func NewDueID() ID { return New(PrefixDue) }

// NewPaymentID generates a new unique payment ID.
func NewPaymentID() ID { return New(PrefixPayment) }

// NewScheduleID generates a new unique schedule entry ID.
func NewScheduleID() ID { return New(PrefixSchedule) }

// NewActivityID generates a new unique activity ID.
func NewActivityID() ID { return New(PrefixActivity) }

// NewInstructorID generates a new unique instructor ID.
func NewInstructorID() ID { return New(PrefixInstructor) }

// NewUserID generates a new unique credential record ID.
func NewUserID() ID { return New(PrefixUser) }

// NewNewsID generates a new unique announcement ID.
func NewNewsID() ID { return New(PrefixNews) }

// NewUploadID generates a new unique upload event ID.
func NewUploadID() ID { return New(PrefixUpload) }

// NewAttendanceID generates a new unique attendance check-in ID.
func NewAttendanceID() ID { return New(PrefixAttendance) }

// ──────────────────────────────────────────────────
// Convenience parsers
// ──────────────────────────────────────────────────

// ParseClubID parses a string and validates the "club" prefix.
func ParseClubID(s string) (ID, error) { return ParseWithPrefix(s, PrefixClub) }

// ParseMemberID parses a string and validates the "mem" prefix.
func ParseMemberID(s string) (ID, error) { return ParseWithPrefix(s, PrefixMember) }

// ParseDueID parses a string and validates the "due" prefix.
func ParseDueID(s string) (ID, error) { return ParseWithPrefix(s, PrefixDue) }

// ParsePaymentID parses a string and validates the "pay" prefix.
func ParsePaymentID(s string) (ID, error) { return ParseWithPrefix(s, PrefixPayment) }

// ParseScheduleID parses a string and validates the "sched" prefix.
func ParseScheduleID(s string) (ID, error) { return ParseWithPrefix(s, PrefixSchedule) }

// ParseActivityID parses a string and validates the "act" prefix.
func ParseActivityID(s string) (ID, error) { return ParseWithPrefix(s, PrefixActivity) }

// ParseInstructorID parses a string and validates the "inst" prefix.
func ParseInstructorID(s string) (ID, error) { return ParseWithPrefix(s, PrefixInstructor) }

// ParseUserID parses a string and validates the "user" prefix.
func ParseUserID(s string) (ID, error) { return ParseWithPrefix(s, PrefixUser) }

// ParseNewsID parses a string and validates the "news" prefix.
func ParseNewsID(s string) (ID, error) { return ParseWithPrefix(s, PrefixNews) }

// ParseUploadID parses a string and validates the "upl" prefix.
func ParseUploadID(s string) (ID, error) { return ParseWithPrefix(s, PrefixUpload) }

// ParseAttendanceID parses a string and validates the "att" prefix.
func ParseAttendanceID(s string) (ID, error) { return ParseWithPrefix(s, PrefixAttendance) }

// ParseAny parses a string into an ID without type checking the prefix.
func ParseAny(s string) (ID, error) { return Parse(s) }

// ──────────────────────────────────────────────────
// ID methods
// ──────────────────────────────────────────────────

// String returns the full TypeID string representation (prefix_suffix).
// Returns an empty string for the Nil ID.
func (i ID) String() string {
	if !i.valid {
		return ""
	}

	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}

	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool {
	return !i.valid
}

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	if !i.valid {
		return []byte{}, nil
	}

	return []byte(i.inner.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil

		return nil
	}

	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}

	*i = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// Returns nil for the Nil ID so that optional foreign key columns store NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return i.inner.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (i *ID) Scan(src any) error {
	if src == nil {
		*i = Nil

		return nil
	}

	switch v := src.(type) {
	case string:
		if v == "" {
			*i = Nil

			return nil
		}

		return i.UnmarshalText([]byte(v))
	case []byte:
		if len(v) == 0 {
			*i = Nil

			return nil
		}

		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
