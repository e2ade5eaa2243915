package member

import (
	"context"

	"github.com/xraph/clubsync/id"
)

// Store is the persistence contract for members.
type Store interface {
	Create(ctx context.Context, m *Member) error
	Get(ctx context.Context, memberID id.MemberID) (*Member, error)
	List(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*Member, error)
	Update(ctx context.Context, m *Member) error
}

// ListOpts filters member listings.
type ListOpts struct {
	Status Status
	Limit  int
	Offset int
}
