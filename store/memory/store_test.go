package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/types"
)

func testMember(clubID id.ClubID) *member.Member {
	return &member.Member{
		Entity: types.NewEntity(),
		ID:     id.NewMemberID(),
		ClubID: clubID,
		Name:   "Ana",
		Status: member.StatusActive,
	}
}

func testDueWrite(clubID id.ClubID, memberID id.MemberID, period string) store.Write {
	d := &due.Due{
		Entity:   types.NewEntity(),
		ID:       id.NewDueID(),
		ClubID:   clubID,
		MemberID: memberID,
		Period:   types.Period(period),
		Amount:   types.ARS(100),
		Status:   due.StatusPending,
	}
	return store.Write{Collection: store.CollectionDues, Op: store.OpCreate, ID: d.ID, Entity: d}
}

func TestApplyBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("DuplicateDueKeyRejected", func(t *testing.T) {
		s := New()
		defer s.Close()

		clubID := id.NewClubID()
		m := testMember(clubID)
		if err := s.CreateMember(ctx, m); err != nil {
			t.Fatal(err)
		}

		if err := s.ApplyBatch(ctx, []store.Write{testDueWrite(clubID, m.ID, "2026-09")}); err != nil {
			t.Fatal(err)
		}
		err := s.ApplyBatch(ctx, []store.Write{testDueWrite(clubID, m.ID, "2026-09")})
		if !errors.Is(err, clubsync.ErrDueExists) {
			t.Fatalf("err = %v, want ErrDueExists", err)
		}

		// Different period is fine.
		if err := s.ApplyBatch(ctx, []store.Write{testDueWrite(clubID, m.ID, "2026-10")}); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("PaidDueCannotBeUpdatedAgain", func(t *testing.T) {
		s := New()
		defer s.Close()

		clubID := id.NewClubID()
		m := testMember(clubID)
		if err := s.CreateMember(ctx, m); err != nil {
			t.Fatal(err)
		}

		w := testDueWrite(clubID, m.ID, "2026-09")
		if err := s.ApplyBatch(ctx, []store.Write{w}); err != nil {
			t.Fatal(err)
		}

		settle := func() error {
			d := *(w.Entity.(*due.Due))
			d.Status = due.StatusPaid
			return s.ApplyBatch(ctx, []store.Write{{
				Collection: store.CollectionDues,
				Op:         store.OpUpdate,
				ID:         d.ID,
				Entity:     &d,
			}})
		}
		if err := settle(); err != nil {
			t.Fatal(err)
		}
		if err := settle(); !errors.Is(err, clubsync.ErrDuePaid) {
			t.Fatalf("err = %v, want ErrDuePaid", err)
		}
	})

	t.Run("IntraBatchDuplicateRejected", func(t *testing.T) {
		s := New()
		defer s.Close()

		clubID := id.NewClubID()
		m := testMember(clubID)
		if err := s.CreateMember(ctx, m); err != nil {
			t.Fatal(err)
		}

		err := s.ApplyBatch(ctx, []store.Write{
			testDueWrite(clubID, m.ID, "2026-09"),
			testDueWrite(clubID, m.ID, "2026-09"),
		})
		if !errors.Is(err, clubsync.ErrDueExists) {
			t.Fatalf("err = %v, want ErrDueExists", err)
		}

		// Nothing from the failed batch landed.
		dues, err := s.ListDuesByPeriod(ctx, clubID, types.Period("2026-09"))
		if err != nil {
			t.Fatal(err)
		}
		if len(dues) != 0 {
			t.Fatalf("dues = %d after failed batch, want 0", len(dues))
		}
	})

	t.Run("FailedBatchLeavesStoreUntouched", func(t *testing.T) {
		s := New()
		defer s.Close()

		clubID := id.NewClubID()
		m := testMember(clubID)
		if err := s.CreateMember(ctx, m); err != nil {
			t.Fatal(err)
		}

		// Second write deletes a member that does not exist; the valid
		// due create before it must not apply.
		err := s.ApplyBatch(ctx, []store.Write{
			testDueWrite(clubID, m.ID, "2026-09"),
			{Collection: store.CollectionMembers, Op: store.OpDelete, ID: id.NewMemberID()},
		})
		if err == nil {
			t.Fatal("expected batch failure")
		}

		dues, err := s.ListDuesByPeriod(ctx, clubID, types.Period("2026-09"))
		if err != nil {
			t.Fatal(err)
		}
		if len(dues) != 0 {
			t.Fatalf("dues = %d after failed batch, want 0", len(dues))
		}
	})

	t.Run("ClosedStoreRejectsWrites", func(t *testing.T) {
		s := New()
		clubID := id.NewClubID()
		if err := s.Close(); err != nil {
			t.Fatal(err)
		}

		err := s.ApplyBatch(ctx, []store.Write{testDueWrite(clubID, id.NewMemberID(), "2026-09")})
		if !errors.Is(err, clubsync.ErrStoreClosed) {
			t.Fatalf("err = %v, want ErrStoreClosed", err)
		}
	})
}

func TestWatchMembers(t *testing.T) {
	ctx := context.Background()

	recv := func(t *testing.T, feed *store.Feed[member.Member]) []*member.Member {
		t.Helper()
		select {
		case list := <-feed.Updates:
			return list
		case err := <-feed.Errs:
			t.Fatalf("feed error: %v", err)
		case <-time.After(2 * time.Second):
			t.Fatal("no feed delivery")
		}
		return nil
	}

	t.Run("InitialListThenUpdates", func(t *testing.T) {
		s := New()
		defer s.Close()

		clubID := id.NewClubID()
		first := testMember(clubID)
		if err := s.CreateMember(ctx, first); err != nil {
			t.Fatal(err)
		}

		feed, err := s.WatchMembers(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		defer feed.Cancel()

		if got := recv(t, feed); len(got) != 1 {
			t.Fatalf("initial list = %d, want 1", len(got))
		}

		if err := s.CreateMember(ctx, testMember(clubID)); err != nil {
			t.Fatal(err)
		}
		if got := recv(t, feed); len(got) != 2 {
			t.Fatalf("updated list = %d, want 2", len(got))
		}
	})

	t.Run("ScopedToClub", func(t *testing.T) {
		s := New()
		defer s.Close()

		clubA := id.NewClubID()
		clubB := id.NewClubID()

		feed, err := s.WatchMembers(ctx, clubA)
		if err != nil {
			t.Fatal(err)
		}
		defer feed.Cancel()
		recv(t, feed) // initial empty list

		if err := s.CreateMember(ctx, testMember(clubB)); err != nil {
			t.Fatal(err)
		}

		select {
		case list := <-feed.Updates:
			t.Fatalf("foreign write reached feed: %d members", len(list))
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("CancelClosesChannels", func(t *testing.T) {
		s := New()
		defer s.Close()

		feed, err := s.WatchMembers(ctx, id.NewClubID())
		if err != nil {
			t.Fatal(err)
		}
		feed.Cancel()
		feed.Cancel() // safe to repeat

		select {
		case _, ok := <-feed.Updates:
			if ok {
				// Drain the initial delivery if it raced the cancel.
				if _, ok := <-feed.Updates; ok {
					t.Fatal("updates channel still open after cancel")
				}
			}
		case <-time.After(2 * time.Second):
			t.Fatal("updates channel not closed")
		}
	})
}
