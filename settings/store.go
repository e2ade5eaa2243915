package settings

import (
	"context"

	"github.com/xraph/clubsync/id"
)

// Store is the configuration persistence contract. Settings are keyed
// by club; reads on a club that has never been configured return the
// not-found error so callers can fall back to Default.
type Store interface {
	// Get returns the club's configuration document.
	Get(ctx context.Context, clubID id.ClubID) (*Settings, error)

	// Save upserts the club's configuration document.
	Save(ctx context.Context, s *Settings) error
}
