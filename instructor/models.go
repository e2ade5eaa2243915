// Package instructor defines the instructor profile and its linked
// login credential record.
package instructor

import (
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Instructor is a teaching profile. Each instructor is linked to a
// separate User credential record; the two are always written together
// in one atomic batch.
type Instructor struct {
	types.Entity
	ID          id.InstructorID `json:"id"`
	ClubID      id.ClubID       `json:"club_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone,omitempty"`
	Disciplines []id.ActivityID `json:"disciplines"`
}

// FullName returns "First Last".
func (i *Instructor) FullName() string {
	if i.FirstName == "" {
		return i.LastName
	}
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}

// Role distinguishes club staff accounts from instructor accounts.
type Role string

const (
	RoleStaff      Role = "staff"
	RoleInstructor Role = "instructor"
)

// User is a login credential record for the club portal. Instructor
// users carry the InstructorID linkage; staff users do not.
type User struct {
	types.Entity
	ID           id.UserID       `json:"id"`
	ClubID       id.ClubID       `json:"club_id"`
	Email        string          `json:"email"`
	Password     string          `json:"password,omitempty"`
	Role         Role            `json:"role"`
	InstructorID id.InstructorID `json:"instructor_id,omitempty"`
}
