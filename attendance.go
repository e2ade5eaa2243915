package clubsync

import (
	"context"

	"github.com/xraph/clubsync/attendance"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// RecordAttendance logs a member check-in, as produced by the door QR
// scanner or the front-desk list. The member must belong to the club;
// the member's name is snapshotted so the log survives later edits.
func (p *Portal) RecordAttendance(ctx context.Context, clubID id.ClubID, memberID id.MemberID) (*attendance.Entry, error) {
	if clubID.IsNil() || memberID.IsNil() {
		return nil, ErrInvalidInput
	}

	m, err := p.store.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m.ClubID != clubID {
		return nil, ErrWrongTenant
	}

	now := p.clock()
	entry := &attendance.Entry{
		Entity:      types.Entity{CreatedAt: now, UpdatedAt: now},
		ID:          id.NewAttendanceID(),
		ClubID:      clubID,
		MemberID:    memberID,
		MemberName:  m.Name,
		CheckedInAt: now,
	}
	if err := p.store.CreateAttendance(ctx, entry); err != nil {
		return nil, err
	}

	p.logger.Info("attendance recorded",
		"club_id", clubID.String(),
		"member_id", memberID.String(),
	)
	p.plugins.EmitAttendanceRecorded(ctx, clubID.String(), memberID.String())
	return entry, nil
}

// ListAttendance returns the club's check-in log, newest first.
func (p *Portal) ListAttendance(ctx context.Context, clubID id.ClubID, opts attendance.ListOpts) ([]*attendance.Entry, error) {
	return p.store.ListAttendance(ctx, clubID, opts)
}
