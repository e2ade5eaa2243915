package clubsync

import (
	"context"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/news"
	"github.com/xraph/clubsync/types"
)

// SaveNews creates or updates an announcement. PublishedAt defaults
// to the portal clock when unset.
func (p *Portal) SaveNews(ctx context.Context, item *news.Item) (*news.Item, error) {
	if item == nil || item.ClubID.IsNil() {
		return nil, ErrInvalidInput
	}
	if item.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "required"}
	}

	saved := *item
	if saved.PublishedAt.IsZero() {
		saved.PublishedAt = p.clock()
	}
	if saved.ID.IsNil() {
		saved.ID = id.NewNewsID()
		saved.Entity = types.NewEntity()
	} else {
		prev, err := p.store.GetNews(ctx, saved.ID)
		if err != nil {
			return nil, err
		}
		if prev.ClubID != saved.ClubID {
			return nil, ErrWrongTenant
		}
		saved.Entity = prev.Entity
		saved.Touch()
	}

	if err := p.store.UpdateNews(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteNews removes an announcement.
func (p *Portal) DeleteNews(ctx context.Context, newsID id.NewsID) error {
	return p.store.DeleteNews(ctx, newsID)
}

// GetNews returns an announcement by ID.
func (p *Portal) GetNews(ctx context.Context, newsID id.NewsID) (*news.Item, error) {
	return p.store.GetNews(ctx, newsID)
}

// ListNews returns the club's announcements, newest first.
func (p *Portal) ListNews(ctx context.Context, clubID id.ClubID, opts news.ListOpts) ([]*news.Item, error) {
	return p.store.ListNews(ctx, clubID, opts)
}
