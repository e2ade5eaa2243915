// Package member defines the club member entity.
package member

import (
	"time"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Status is the membership state. Only Active members are billed.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Member is one person belonging to a club. Every member is scoped to
// exactly one club and is never visible across tenants.
type Member struct {
	types.Entity
	ID         id.MemberID    `json:"id"`
	ClubID     id.ClubID      `json:"club_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone,omitempty"`
	DNI        string         `json:"dni"`
	MemberType string         `json:"member_type"`
	Status     Status         `json:"status"`
	ActivityID id.ActivityID  `json:"activity_id,omitempty"`
	ArchivedAt *time.Time     `json:"archived_at,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// IsBillable reports whether the member should receive generated dues:
// active and not archived. The fee lookup decides the rest.
func (m *Member) IsBillable() bool {
	return m.Status == StatusActive && m.ArchivedAt == nil
}
