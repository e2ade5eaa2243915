package news

import (
	"context"

	"github.com/xraph/clubsync/id"
)

// Store is the announcement persistence contract.
type Store interface {
	// Get returns an announcement by ID.
	Get(ctx context.Context, newsID id.NewsID) (*Item, error)

	// List returns the club's announcements, newest first.
	List(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*Item, error)

	// Update replaces an announcement.
	Update(ctx context.Context, item *Item) error

	// Delete removes an announcement.
	Delete(ctx context.Context, newsID id.NewsID) error
}

// ListOpts filters announcement listings.
type ListOpts struct {
	Limit  int
	Offset int
}
