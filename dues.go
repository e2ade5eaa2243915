package clubsync

import (
	"context"
	"errors"

	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/types"
)

// GenerateDues creates the month's pending dues for every billable
// member of the club and returns how many were created. A member is
// skipped when they already hold a due for the period, when they are
// inactive or archived, or when their member type has no positive fee
// configured. Running the same period twice is a no-op for members
// covered by the first run.
//
// A zero period means the current calendar month.
func (p *Portal) GenerateDues(ctx context.Context, clubID id.ClubID, period types.Period) (int, error) {
	if clubID.IsNil() {
		return 0, ErrInvalidInput
	}
	if period.IsZero() {
		period = types.PeriodOf(p.clock())
	}
	if _, err := types.ParsePeriod(period.String()); err != nil {
		return 0, err
	}

	cfg, err := p.store.GetSettings(ctx, clubID)
	if err != nil {
		return 0, err
	}

	members, err := p.store.ListMembers(ctx, clubID, member.ListOpts{})
	if err != nil {
		return 0, err
	}

	writes, err := p.buildDueWrites(ctx, clubID, period, members, cfg.FeeFor)
	if err != nil {
		return 0, err
	}
	if len(writes) == 0 {
		return 0, nil
	}

	if err := p.store.ApplyBatch(ctx, writes); err != nil {
		if !errors.Is(err, ErrDueExists) {
			return 0, err
		}
		// Another session generated part of this period between our
		// read and the write. Re-read and retry once with the losers
		// excluded; the unique (club, member, period) key keeps the
		// outcome exactly-once either way.
		writes, err = p.buildDueWrites(ctx, clubID, period, members, cfg.FeeFor)
		if err != nil {
			return 0, err
		}
		if len(writes) == 0 {
			return 0, nil
		}
		if err := p.store.ApplyBatch(ctx, writes); err != nil {
			return 0, err
		}
	}

	created := len(writes)
	p.logger.Info("dues generated",
		"club_id", clubID.String(),
		"period", period.String(),
		"created", created,
	)
	p.plugins.EmitDuesGenerated(ctx, clubID.String(), period.String(), created)

	return created, nil
}

// buildDueWrites computes the create set for one generation attempt.
func (p *Portal) buildDueWrites(ctx context.Context, clubID id.ClubID, period types.Period, members []*member.Member, feeFor func(string) (types.Money, bool)) ([]store.Write, error) {
	existing, err := p.store.ListDuesByPeriod(ctx, clubID, period)
	if err != nil {
		return nil, err
	}
	covered := make(map[string]bool, len(existing))
	for _, d := range existing {
		covered[d.MemberID.String()] = true
	}

	now := p.clock()
	writes := make([]store.Write, 0, len(members))
	for _, m := range members {
		if !m.IsBillable() || covered[m.ID.String()] {
			continue
		}
		fee, ok := feeFor(m.MemberType)
		if !ok {
			continue
		}
		d := &due.Due{
			Entity:   types.Entity{CreatedAt: now, UpdatedAt: now},
			ID:       id.NewDueID(),
			ClubID:   clubID,
			MemberID: m.ID,
			Period:   period,
			Amount:   fee,
			Status:   due.StatusPending,
		}
		writes = append(writes, store.Write{
			Collection: store.CollectionDues,
			Op:         store.OpCreate,
			ID:         d.ID,
			Entity:     d,
		})
	}
	return writes, nil
}

// ListDues returns the club's dues with optional status and period
// filters.
func (p *Portal) ListDues(ctx context.Context, clubID id.ClubID, opts due.ListOpts) ([]*due.Due, error) {
	return p.store.ListDues(ctx, clubID, opts)
}

// MemberDues returns one member's dues in chronological period order.
func (p *Portal) MemberDues(ctx context.Context, clubID id.ClubID, memberID id.MemberID) ([]*due.Due, error) {
	return p.store.ListDuesByMember(ctx, clubID, memberID)
}
