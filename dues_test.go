package clubsync_test

import (
	"context"
	"sync"
	"testing"

	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/types"
)

func TestGenerateDues(t *testing.T) {
	ctx := context.Background()
	period := types.Period("2026-09")

	t.Run("CreatesOneDuePerBillableMember", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{
			"cadet": types.ARS(150000),
			"full":  types.ARS(250000),
		})
		a := seedMember(t, p, clubID, "Ana", "cadet")
		b := seedMember(t, p, clubID, "Bruno", "full")

		created, err := p.GenerateDues(ctx, clubID, period)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if created != 2 {
			t.Fatalf("created = %d, want 2", created)
		}

		dues, err := p.ListDues(ctx, clubID, due.ListOpts{Period: period})
		if err != nil {
			t.Fatal(err)
		}
		amounts := map[string]int64{}
		for _, d := range dues {
			if d.Status != due.StatusPending {
				t.Errorf("due %s status = %s, want pending", d.ID, d.Status)
			}
			amounts[d.MemberID.String()] = d.Amount.Amount
		}
		if amounts[a.ID.String()] != 150000 {
			t.Errorf("cadet amount = %d, want 150000", amounts[a.ID.String()])
		}
		if amounts[b.ID.String()] != 250000 {
			t.Errorf("full amount = %d, want 250000", amounts[b.ID.String()])
		}
	})

	t.Run("RerunIsNoOp", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		seedMember(t, p, clubID, "Ana", "cadet")

		if created, err := p.GenerateDues(ctx, clubID, period); err != nil || created != 1 {
			t.Fatalf("first run: created=%d err=%v", created, err)
		}
		created, err := p.GenerateDues(ctx, clubID, period)
		if err != nil {
			t.Fatalf("second run: %v", err)
		}
		if created != 0 {
			t.Fatalf("second run created = %d, want 0", created)
		}

		dues, err := p.ListDues(ctx, clubID, due.ListOpts{Period: period})
		if err != nil {
			t.Fatal(err)
		}
		if len(dues) != 1 {
			t.Fatalf("dues = %d, want 1", len(dues))
		}
	})

	t.Run("SkipsNonBillableMembers", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})

		seedMember(t, p, clubID, "Active", "cadet")

		inactive, err := p.SaveMember(ctx, &member.Member{
			ClubID:     clubID,
			Name:       "Inactive",
			MemberType: "cadet",
			Status:     member.StatusInactive,
		})
		if err != nil {
			t.Fatal(err)
		}

		archived := seedMember(t, p, clubID, "Archived", "cadet")
		if err := p.DeleteMember(ctx, archived.ID); err != nil {
			t.Fatal(err)
		}

		// No fee configured for this type.
		seedMember(t, p, clubID, "Guest", "guest")

		created, err := p.GenerateDues(ctx, clubID, period)
		if err != nil {
			t.Fatal(err)
		}
		if created != 1 {
			t.Fatalf("created = %d, want 1", created)
		}

		if dues, _ := p.MemberDues(ctx, clubID, inactive.ID); len(dues) != 0 {
			t.Errorf("inactive member got %d dues", len(dues))
		}
	})

	t.Run("NewMemberPicksUpLaterRun", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		seedMember(t, p, clubID, "Ana", "cadet")

		if _, err := p.GenerateDues(ctx, clubID, period); err != nil {
			t.Fatal(err)
		}

		late := seedMember(t, p, clubID, "Late", "cadet")
		created, err := p.GenerateDues(ctx, clubID, period)
		if err != nil {
			t.Fatal(err)
		}
		if created != 1 {
			t.Fatalf("created = %d, want 1", created)
		}
		if dues, _ := p.MemberDues(ctx, clubID, late.ID); len(dues) != 1 {
			t.Errorf("late member dues = %d, want 1", len(dues))
		}
	})

	t.Run("InvalidPeriodRejected", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})

		if _, err := p.GenerateDues(ctx, clubID, types.Period("september")); err == nil {
			t.Fatal("expected error for malformed period")
		}
	})

	t.Run("ConcurrentGenerationStaysExactlyOnce", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		for i := 0; i < 20; i++ {
			seedMember(t, p, clubID, "m", "cadet")
		}

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := p.GenerateDues(ctx, clubID, period); err != nil {
					t.Errorf("concurrent generate: %v", err)
				}
			}()
		}
		wg.Wait()

		dues, err := p.ListDues(ctx, clubID, due.ListOpts{Period: period})
		if err != nil {
			t.Fatal(err)
		}
		if len(dues) != 20 {
			t.Fatalf("dues = %d, want 20", len(dues))
		}
		seen := map[string]bool{}
		for _, d := range dues {
			if seen[d.MemberID.String()] {
				t.Fatalf("member %s has duplicate dues for %s", d.MemberID, period)
			}
			seen[d.MemberID.String()] = true
		}
	})
}
