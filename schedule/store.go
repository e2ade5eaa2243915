package schedule

import (
	"context"

	"github.com/xraph/clubsync/id"
)

// Store is the persistence contract for schedule entries.
type Store interface {
	Get(ctx context.Context, entryID id.ScheduleID) (*Entry, error)
	List(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*Entry, error)
	ListByInstructor(ctx context.Context, clubID id.ClubID, instructorID id.InstructorID) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, entryID id.ScheduleID) error
}

// ListOpts filters schedule listings.
type ListOpts struct {
	Status Status
	Limit  int
	Offset int
}
