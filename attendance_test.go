package clubsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/attendance"
	"github.com/xraph/clubsync/id"
)

func TestRecordAttendance(t *testing.T) {
	ctx := context.Background()

	t.Run("LogsCheckIn", func(t *testing.T) {
		checkin := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)
		p := newTestPortal(t, clubsync.WithClock(func() time.Time { return checkin }))
		clubID := seedClub(t, p, nil)
		m := seedMember(t, p, clubID, "Ana Suárez", "cadet")

		entry, err := p.RecordAttendance(ctx, clubID, m.ID)
		if err != nil {
			t.Fatal(err)
		}
		if entry.MemberName != "Ana Suárez" {
			t.Errorf("member name = %q, want Ana Suárez", entry.MemberName)
		}
		if !entry.CheckedInAt.Equal(checkin) {
			t.Errorf("checked in at = %v, want %v", entry.CheckedInAt, checkin)
		}

		log, err := p.ListAttendance(ctx, clubID, attendance.ListOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != 1 || log[0].ID != entry.ID {
			t.Fatalf("log = %d entries, want the recorded one", len(log))
		}
	})

	t.Run("NameSnapshotSurvivesRename", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, nil)
		m := seedMember(t, p, clubID, "Ana", "cadet")

		if _, err := p.RecordAttendance(ctx, clubID, m.ID); err != nil {
			t.Fatal(err)
		}
		m.Name = "Ana Suárez"
		if _, err := p.SaveMember(ctx, m); err != nil {
			t.Fatal(err)
		}

		log, err := p.ListAttendance(ctx, clubID, attendance.ListOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if log[0].MemberName != "Ana" {
			t.Errorf("member name = %q, want the name at check-in time", log[0].MemberName)
		}
	})

	t.Run("NewestFirst", func(t *testing.T) {
		now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
		p := newTestPortal(t, clubsync.WithClock(func() time.Time { return now }))
		clubID := seedClub(t, p, nil)
		m := seedMember(t, p, clubID, "Ana", "cadet")

		for i := 0; i < 3; i++ {
			if _, err := p.RecordAttendance(ctx, clubID, m.ID); err != nil {
				t.Fatal(err)
			}
			now = now.Add(time.Hour)
		}

		log, err := p.ListAttendance(ctx, clubID, attendance.ListOpts{Limit: 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != 2 {
			t.Fatalf("log = %d entries, want 2", len(log))
		}
		if !log[0].CheckedInAt.After(log[1].CheckedInAt) {
			t.Errorf("log not newest first: %v then %v", log[0].CheckedInAt, log[1].CheckedInAt)
		}
	})

	t.Run("CrossTenantRejected", func(t *testing.T) {
		p := newTestPortal(t)
		clubA := seedClub(t, p, nil)
		clubB := seedClub(t, p, nil)
		m := seedMember(t, p, clubA, "Ana", "cadet")

		if _, err := p.RecordAttendance(ctx, clubB, m.ID); !errors.Is(err, clubsync.ErrWrongTenant) {
			t.Fatalf("err = %v, want ErrWrongTenant", err)
		}

		log, err := p.ListAttendance(ctx, clubB, attendance.ListOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != 0 {
			t.Errorf("log = %d entries, want 0", len(log))
		}
	})

	t.Run("UnknownMemberRejected", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, nil)

		_, err := p.RecordAttendance(ctx, clubID, id.NewMemberID())
		if !errors.Is(err, clubsync.ErrMemberNotFound) {
			t.Fatalf("err = %v, want ErrMemberNotFound", err)
		}
	})
}
