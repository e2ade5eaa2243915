package due

import (
	"context"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Store is the persistence contract for dues.
type Store interface {
	Get(ctx context.Context, dueID id.DueID) (*Due, error)
	List(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*Due, error)
	ListByMember(ctx context.Context, clubID id.ClubID, memberID id.MemberID) ([]*Due, error)
	ListByPeriod(ctx context.Context, clubID id.ClubID, period types.Period) ([]*Due, error)
}

// ListOpts filters due listings.
type ListOpts struct {
	Status Status
	Period types.Period
	Limit  int
	Offset int
}
