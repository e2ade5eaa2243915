// Package schedule defines the recurring weekly class slot entity.
package schedule

import (
	"time"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Status is the instructor's decision on a proposed slot. Entries are
// created Pending; the instructor moves them to Accepted, Rejected, or
// Suggested. Staff edits preserve the status unless explicitly reset.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusSuggested Status = "suggested"
)

// Entry is a recurring weekly class slot bound to an instructor,
// activity, and space. For a fixed instructor, no two entries may
// overlap on the same weekday; ranges are half-open [Start, End).
type Entry struct {
	types.Entity
	ID              id.ScheduleID   `json:"id"`
	ClubID          id.ClubID       `json:"club_id"`
	ActivityID      id.ActivityID   `json:"activity_id"`
	InstructorID    id.InstructorID `json:"instructor_id"`
	Space           string          `json:"space"`
	DayOfWeek       time.Weekday    `json:"day_of_week"`
	StartTime       types.TimeOfDay `json:"start_time"`
	EndTime         types.TimeOfDay `json:"end_time"`
	MaxCapacity     int             `json:"max_capacity"`
	EnrolledMembers []id.MemberID   `json:"enrolled_members"`
	Status          Status          `json:"status"`
	RejectionComment string         `json:"rejection_comment,omitempty"`
}

// ConflictsWith reports whether the entry collides with other: same
// instructor, same weekday, and overlapping half-open time ranges.
// Boundary-touching slots (one ends exactly when the other starts) do
// not conflict. An entry never conflicts with itself.
func (e *Entry) ConflictsWith(other *Entry) bool {
	if e.ID == other.ID {
		return false
	}
	if e.InstructorID != other.InstructorID {
		return false
	}
	if e.DayOfWeek != other.DayOfWeek {
		return false
	}
	return types.RangesOverlap(e.StartTime, e.EndTime, other.StartTime, other.EndTime)
}

// IsFull reports whether enrollment has reached capacity.
// A non-positive MaxCapacity means unlimited.
func (e *Entry) IsFull() bool {
	return e.MaxCapacity > 0 && len(e.EnrolledMembers) >= e.MaxCapacity
}

// IsEnrolled reports whether the member is in the enrollment set.
func (e *Entry) IsEnrolled(memberID id.MemberID) bool {
	for _, m := range e.EnrolledMembers {
		if m == memberID {
			return true
		}
	}
	return false
}
