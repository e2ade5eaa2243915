// Package due defines the monthly billing obligation entity.
package due

import (
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Status is the lifecycle of a due. A due is created Pending and moves
// to Paid exactly once, atomically with the creation of its Payment.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Due is a billing obligation for one member for one calendar-month
// period. The generator creates at most one Due per (member, period)
// pair; the storage layer enforces that key.
type Due struct {
	types.Entity
	ID       id.DueID     `json:"id"`
	ClubID   id.ClubID    `json:"club_id"`
	MemberID id.MemberID  `json:"member_id"`
	Period   types.Period `json:"period"`
	Amount   types.Money  `json:"amount"`
	Status   Status       `json:"status"`
}

// IsPending reports whether the due can still accept a payment.
func (d *Due) IsPending() bool { return d.Status == StatusPending }
