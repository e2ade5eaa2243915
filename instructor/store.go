package instructor

import (
	"context"

	"github.com/xraph/clubsync/id"
)

// Store is the instructor persistence contract. Writes that must pair
// an instructor with its credential record go through the batch API on
// the parent store instead.
type Store interface {
	// Get returns an instructor by ID.
	Get(ctx context.Context, instructorID id.InstructorID) (*Instructor, error)

	// List returns the club's instructors.
	List(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*Instructor, error)

	// GetUser returns a credential record by ID.
	GetUser(ctx context.Context, userID id.UserID) (*User, error)

	// GetUserByInstructor returns the credential record linked to an
	// instructor, if any.
	GetUserByInstructor(ctx context.Context, instructorID id.InstructorID) (*User, error)

	// ListUsers returns the club's credential records.
	ListUsers(ctx context.Context, clubID id.ClubID, opts ListOpts) ([]*User, error)
}

// ListOpts filters instructor and user listings.
type ListOpts struct {
	Limit  int
	Offset int
}
