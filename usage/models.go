// Package usage records file-upload events and aggregates them into
// the per-club storage counter.
package usage

import (
	"time"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// Kind labels where an upload came from.
type Kind string

const (
	KindPaymentProof Kind = "payment_proof"
	KindNewsImage    Kind = "news_image"
	KindClubLogo     Kind = "club_logo"
	KindOther        Kind = "other"
)

// UploadEvent is a single recorded upload. Events are buffered in
// memory and flushed to the store in batches.
type UploadEvent struct {
	types.Entity
	ID       id.UploadID `json:"id"`
	ClubID   id.ClubID   `json:"club_id"`
	Kind     Kind        `json:"kind"`
	Bytes    int64       `json:"bytes"`
	Path     string      `json:"path,omitempty"`
	Occurred time.Time   `json:"occurred"`
}
