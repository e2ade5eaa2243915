package attendance

import (
	"context"

	"github.com/xraph/clubsync/id"
)

// Store is the check-in log persistence contract.
type Store interface {
	// Create appends one check-in to the log.
	Create(ctx context.Context, e *Entry) error

	// List returns the club's check-ins, newest first.
	List(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*Entry, error)
}

// ListOpts filters check-in listings.
type ListOpts struct {
	Limit  int
	Offset int
}
