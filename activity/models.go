// Package activity defines the club activity (discipline) entity.
package activity

import (
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Activity is a discipline a club offers (e.g. swimming, judo). Its
// AllowedSpaces set constrains where schedule entries may place it.
type Activity struct {
	types.Entity
	ID            id.ActivityID `json:"id"`
	ClubID        id.ClubID     `json:"club_id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	IconTag       string        `json:"icon_tag,omitempty"`
	AllowedSpaces []string      `json:"allowed_spaces"`
}

// AllowsSpace reports whether the space belongs to the permitted set.
// An empty set permits any space.
func (a *Activity) AllowsSpace(space string) bool {
	if len(a.AllowedSpaces) == 0 {
		return true
	}
	for _, s := range a.AllowedSpaces {
		if s == space {
			return true
		}
	}
	return false
}
