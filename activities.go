package clubsync

import (
	"context"

	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// SaveActivity creates or updates an activity. The write is an upsert;
// saves with a fresh ID create, saves with an existing ID replace.
func (p *Portal) SaveActivity(ctx context.Context, a *activity.Activity) (*activity.Activity, error) {
	if a == nil || a.ClubID.IsNil() {
		return nil, ErrInvalidInput
	}
	if a.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "required"}
	}

	saved := *a
	if saved.ID.IsNil() {
		saved.ID = id.NewActivityID()
		saved.Entity = types.NewEntity()
	} else {
		prev, err := p.store.GetActivity(ctx, saved.ID)
		if err != nil {
			return nil, err
		}
		if prev.ClubID != saved.ClubID {
			return nil, ErrWrongTenant
		}
		saved.Entity = prev.Entity
		saved.Touch()
	}

	if err := p.store.UpdateActivity(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteActivity removes an activity. Schedule entries that reference
// it keep their activity ID; resolution of the dangling reference is
// left to the caller.
func (p *Portal) DeleteActivity(ctx context.Context, activityID id.ActivityID) error {
	return p.store.DeleteActivity(ctx, activityID)
}

// GetActivity returns an activity by ID.
func (p *Portal) GetActivity(ctx context.Context, activityID id.ActivityID) (*activity.Activity, error) {
	return p.store.GetActivity(ctx, activityID)
}

// ListActivities returns the club's activities.
func (p *Portal) ListActivities(ctx context.Context, clubID id.ClubID) ([]*activity.Activity, error) {
	return p.store.ListActivities(ctx, clubID)
}
