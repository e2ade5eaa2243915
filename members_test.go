package clubsync_test

import (
	"context"
	"errors"
	"testing"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/types"
)

func TestSaveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateDefaultsToActive", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, nil)

		m, err := p.SaveMember(ctx, &member.Member{
			ClubID: clubID,
			Name:   "Ana",
		})
		if err != nil {
			t.Fatal(err)
		}
		if m.Status != member.StatusActive {
			t.Errorf("status = %s, want active", m.Status)
		}
		if m.ID.IsNil() || m.CreatedAt.IsZero() {
			t.Error("identity fields not populated")
		}
	})

	t.Run("EditPreservesCreation", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, nil)
		m := seedMember(t, p, clubID, "Ana", "cadet")

		m.Email = "ana@example.com"
		edited, err := p.SaveMember(ctx, m)
		if err != nil {
			t.Fatal(err)
		}
		if edited.ID != m.ID {
			t.Errorf("edit changed ID")
		}
		if !edited.CreatedAt.Equal(m.CreatedAt) {
			t.Errorf("edit changed CreatedAt")
		}

		stored, err := p.GetMember(ctx, m.ID)
		if err != nil {
			t.Fatal(err)
		}
		if stored.Email != "ana@example.com" {
			t.Errorf("email = %q, want updated", stored.Email)
		}
	})

	t.Run("EmptyNameRejected", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, nil)

		_, err := p.SaveMember(ctx, &member.Member{ClubID: clubID})
		var verr *clubsync.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want ValidationError", err)
		}
	})

	t.Run("CrossTenantEditRejected", func(t *testing.T) {
		p := newTestPortal(t)
		clubA := seedClub(t, p, nil)
		clubB := seedClub(t, p, nil)
		m := seedMember(t, p, clubA, "Ana", "cadet")

		m.ClubID = clubB
		if _, err := p.SaveMember(ctx, m); !errors.Is(err, clubsync.ErrWrongTenant) {
			t.Fatalf("err = %v, want ErrWrongTenant", err)
		}
	})
}

func TestDeleteMember(t *testing.T) {
	ctx := context.Background()

	t.Run("ArchivesInsteadOfRemoving", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		m := seedMember(t, p, clubID, "Ana", "cadet")

		if err := p.DeleteMember(ctx, m.ID); err != nil {
			t.Fatal(err)
		}

		stored, err := p.GetMember(ctx, m.ID)
		if err != nil {
			t.Fatalf("archived member unreadable: %v", err)
		}
		if stored.Status != member.StatusInactive {
			t.Errorf("status = %s, want inactive", stored.Status)
		}
		if stored.ArchivedAt == nil {
			t.Error("ArchivedAt not set")
		}

		// Archived members get no new dues.
		created, err := p.GenerateDues(ctx, clubID, types.Period("2026-09"))
		if err != nil {
			t.Fatal(err)
		}
		if created != 0 {
			t.Errorf("created = %d dues for archived member", created)
		}
	})

	t.Run("DoubleArchiveRejected", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, nil)
		m := seedMember(t, p, clubID, "Ana", "cadet")

		if err := p.DeleteMember(ctx, m.ID); err != nil {
			t.Fatal(err)
		}
		if err := p.DeleteMember(ctx, m.ID); !errors.Is(err, clubsync.ErrMemberArchived) {
			t.Fatalf("err = %v, want ErrMemberArchived", err)
		}
	})
}
