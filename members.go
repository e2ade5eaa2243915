package clubsync

import (
	"context"

	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/types"
)

// SaveMember creates or updates a member. New members start Active.
func (p *Portal) SaveMember(ctx context.Context, m *member.Member) (*member.Member, error) {
	if m == nil || m.ClubID.IsNil() {
		return nil, ErrInvalidInput
	}
	if m.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "required"}
	}

	saved := *m
	if saved.ID.IsNil() {
		saved.ID = id.NewMemberID()
		saved.Entity = types.NewEntity()
		if saved.Status == "" {
			saved.Status = member.StatusActive
		}
		if err := p.store.CreateMember(ctx, &saved); err != nil {
			return nil, err
		}
	} else {
		prev, err := p.store.GetMember(ctx, saved.ID)
		if err != nil {
			return nil, err
		}
		if prev.ClubID != saved.ClubID {
			return nil, ErrWrongTenant
		}
		saved.Entity = prev.Entity
		saved.ArchivedAt = prev.ArchivedAt
		saved.Touch()
		if err := p.store.UpdateMember(ctx, &saved); err != nil {
			return nil, err
		}
	}

	p.plugins.EmitMemberSaved(ctx, &saved)
	return &saved, nil
}

// DeleteMember archives a member instead of removing the record, so
// their dues and payments stay attributable. Archived members stop
// receiving generated dues.
func (p *Portal) DeleteMember(ctx context.Context, memberID id.MemberID) error {
	m, err := p.store.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if m.ArchivedAt != nil {
		return ErrMemberArchived
	}

	now := p.clock()
	m.Status = member.StatusInactive
	m.ArchivedAt = &now
	m.Touch()

	if err := p.store.UpdateMember(ctx, m); err != nil {
		return err
	}

	p.logger.Info("member archived",
		"club_id", m.ClubID.String(),
		"member_id", memberID.String(),
	)
	p.plugins.EmitMemberArchived(ctx, memberID.String())
	return nil
}

// GetMember returns a member by ID.
func (p *Portal) GetMember(ctx context.Context, memberID id.MemberID) (*member.Member, error) {
	return p.store.GetMember(ctx, memberID)
}

// ListMembers returns the club's members with an optional status
// filter.
func (p *Portal) ListMembers(ctx context.Context, clubID id.ClubID, opts member.ListOpts) ([]*member.Member, error) {
	return p.store.ListMembers(ctx, clubID, opts)
}
