package activity

import (
	"context"

	"github.com/xraph/clubsync/id"
)

// Store is the persistence contract for activities.
type Store interface {
	Get(ctx context.Context, activityID id.ActivityID) (*Activity, error)
	List(ctx context.Context, clubID id.ClubID) ([]*Activity, error)
	Update(ctx context.Context, a *Activity) error
	Delete(ctx context.Context, activityID id.ActivityID) error
}
