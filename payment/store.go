package payment

import (
	"context"
	"time"

	"github.com/xraph/clubsync/id"
)

// Store is the persistence contract for payments.
type Store interface {
	Get(ctx context.Context, paymentID id.PaymentID) (*Payment, error)
	List(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*Payment, error)
	ListByMember(ctx context.Context, clubID id.ClubID, memberID id.MemberID) ([]*Payment, error)
	UpdateDetails(ctx context.Context, paymentID id.PaymentID, details string) error
}

// ListOpts filters payment listings.
type ListOpts struct {
	Start  time.Time
	End    time.Time
	Limit  int
	Offset int
}
