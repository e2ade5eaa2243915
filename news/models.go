// Package news defines club announcements shown on the portal
// dashboard.
package news

import (
	"time"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Item is a single announcement.
type Item struct {
	types.Entity
	ID          id.NewsID `json:"id"`
	ClubID      id.ClubID `json:"club_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Pinned      bool      `json:"pinned,omitempty"`
}
