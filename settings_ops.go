package clubsync

import (
	"context"
	"errors"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/types"
)

// ClubSettings returns the club's configuration document, falling
// back to defaults when the club has never been configured.
func (p *Portal) ClubSettings(ctx context.Context, clubID id.ClubID) (*settings.Settings, error) {
	cfg, err := p.store.GetSettings(ctx, clubID)
	if errors.Is(err, ErrSettingsNotFound) {
		return settings.Default(clubID), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveClubSettings upserts the club's configuration document. The
// storage counters are owned by the upload meter, so values already
// on record win over whatever the caller passed in.
func (p *Portal) SaveClubSettings(ctx context.Context, cfg *settings.Settings) (*settings.Settings, error) {
	if cfg == nil || cfg.ClubID.IsNil() {
		return nil, ErrInvalidInput
	}

	saved := *cfg
	prev, err := p.store.GetSettings(ctx, cfg.ClubID)
	switch {
	case err == nil:
		saved.Entity = prev.Entity
		saved.StorageUsed = prev.StorageUsed
		saved.Touch()
	case errors.Is(err, ErrSettingsNotFound):
		saved.Entity = types.NewEntity()
		saved.StorageUsed = 0
	default:
		return nil, err
	}

	if err := p.store.SaveSettings(ctx, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
