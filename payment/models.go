// Package payment defines the settlement record entity.
package payment

import (
	"time"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/types"
)

// Method records how a payment was taken.
type Method string

const (
	MethodManual Method = "manual"
)

// Payment is a settlement against a Due. It is created only together
// with the due's Pending→Paid transition, never independently, and is
// immutable afterwards except for the free-text Details field.
//
// ReceiptConfig is a snapshot of the club's receipt template at payment
// time, so later template edits never retroactively alter historical
// receipts.
type Payment struct {
	types.Entity
	ID            id.PaymentID             `json:"id"`
	ClubID        id.ClubID                `json:"club_id"`
	MemberID      id.MemberID              `json:"member_id"`
	DueID         id.DueID                 `json:"due_id"`
	Period        types.Period             `json:"period"`
	Amount        types.Money              `json:"amount"`
	Date          time.Time                `json:"date"`
	Method        Method                   `json:"method"`
	Details       string                   `json:"details,omitempty"`
	ProofURL      string                   `json:"proof_url,omitempty"`
	ReceiptConfig settings.ReceiptTemplate `json:"receipt_config"`
}
