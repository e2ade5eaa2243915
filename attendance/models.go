// Package attendance records member check-ins at the club door,
// typically triggered by a QR scan at the front desk.
package attendance

import (
	"time"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Entry is a single check-in. MemberName is snapshotted at check-in
// time so the log stays readable after member edits.
type Entry struct {
	types.Entity
	ID          id.AttendanceID `json:"id"`
	ClubID      id.ClubID       `json:"club_id"`
	MemberID    id.MemberID     `json:"member_id"`
	MemberName  string          `json:"member_name"`
	CheckedInAt time.Time       `json:"checked_in_at"`
}
