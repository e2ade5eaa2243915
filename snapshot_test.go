package clubsync_test

import (
	"context"
	"testing"
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/types"
)

func TestAggregator(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadyAfterInitialLists", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		seedMember(t, p, clubID, "Ana", "cadet")

		agg, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}

		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := agg.WaitReady(waitCtx); err != nil {
			t.Fatalf("wait ready: %v", err)
		}

		snap := agg.Snapshot()
		if len(snap.Members) != 1 {
			t.Fatalf("members = %d, want 1", len(snap.Members))
		}
		if snap.ClubID != clubID {
			t.Errorf("club = %s, want %s", snap.ClubID, clubID)
		}
	})

	t.Run("SnapshotFollowsWrites", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})

		agg, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := agg.WaitReady(waitCtx); err != nil {
			t.Fatal(err)
		}

		seedMember(t, p, clubID, "Ana", "cadet")

		waitFor(t, 2*time.Second, func() bool {
			return len(agg.Snapshot().Members) == 1
		})
	})

	t.Run("OnChangeFires", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})

		agg, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := agg.WaitReady(waitCtx); err != nil {
			t.Fatal(err)
		}

		changes := make(chan int, 16)
		unsub := agg.OnChange(func(s *clubsync.Snapshot) {
			changes <- len(s.Members)
		})
		defer unsub()

		seedMember(t, p, clubID, "Ana", "cadet")

		deadline := time.After(2 * time.Second)
		for {
			select {
			case n := <-changes:
				if n == 1 {
					return
				}
			case <-deadline:
				t.Fatal("no change notification with the new member")
			}
		}
	})

	t.Run("TenantIsolation", func(t *testing.T) {
		p := newTestPortal(t)
		clubA := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		clubB := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		seedMember(t, p, clubA, "Ana", "cadet")
		seedMember(t, p, clubB, "Bruno", "cadet")
		seedMember(t, p, clubB, "Carla", "cadet")

		agg, err := p.Open(ctx, clubA)
		if err != nil {
			t.Fatal(err)
		}
		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := agg.WaitReady(waitCtx); err != nil {
			t.Fatal(err)
		}

		snap := agg.Snapshot()
		if len(snap.Members) != 1 {
			t.Fatalf("members = %d, want 1", len(snap.Members))
		}
		if snap.Members[0].Name != "Ana" {
			t.Errorf("member = %s, want Ana", snap.Members[0].Name)
		}

		// Writes against the other club never surface here.
		seedMember(t, p, clubB, "Dora", "cadet")
		time.Sleep(50 * time.Millisecond)
		if got := len(agg.Snapshot().Members); got != 1 {
			t.Errorf("members = %d after foreign write, want 1", got)
		}
	})

	t.Run("RevisionIsMonotonic", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})

		agg, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := agg.WaitReady(waitCtx); err != nil {
			t.Fatal(err)
		}

		before := agg.Snapshot().Revision
		seedMember(t, p, clubID, "Ana", "cadet")
		waitFor(t, 2*time.Second, func() bool {
			return agg.Snapshot().Revision > before
		})
	})

	t.Run("OpenIsIdempotentPerClub", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, nil)

		a1, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		a2, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		if a1 != a2 {
			t.Fatal("second open returned a different aggregator")
		}
	})

	t.Run("CloseStopsUpdates", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})

		agg, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := agg.WaitReady(waitCtx); err != nil {
			t.Fatal(err)
		}

		agg.Close()
		agg.Close() // safe to repeat

		rev := agg.Snapshot().Revision
		seedMember(t, p, clubID, "Ana", "cadet")
		time.Sleep(50 * time.Millisecond)
		if agg.Snapshot().Revision != rev {
			t.Fatal("snapshot advanced after close")
		}

		// Reopening the club starts a fresh aggregator.
		fresh, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		if fresh == agg {
			t.Fatal("open returned the closed aggregator")
		}
	})
}
