package usage

import (
	"context"
	"time"

	"github.com/xraph/clubsync/id"
)

// Store is the upload-event persistence contract.
type Store interface {
	// IngestUploads persists a flushed batch of events and bumps the
	// club storage counters by the batch totals in one write.
	IngestUploads(ctx context.Context, events []*UploadEvent) error

	// ListUploads returns a club's upload events in a time range.
	ListUploads(ctx context.Context, clubID id.ClubID, start, end time.Time) ([]*UploadEvent, error)

	// StorageUsed returns the club's persisted byte total.
	StorageUsed(ctx context.Context, clubID id.ClubID) (int64, error)
}
