package clubsync_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/activity"
	"github.com/xraph/clubsync/instructor"
	"github.com/xraph/clubsync/member"
	"github.com/xraph/clubsync/news"
	"github.com/xraph/clubsync/schedule"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/store/memory"
	"github.com/xraph/clubsync/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use mongo in production)
		store := memory.New()

		// Initialize the portal
		p := clubsync.New(store,
			clubsync.WithLogger(slog.Default()),
			clubsync.WithUploadMeterConfig(100, 5*time.Second),
		)

		// Start the portal
		ctx := context.Background()
		if err := p.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer p.Stop()

		// Configure a club: fee table, spaces, templates
		clubID := seedClub(t, p, nil)
		cfg, err := p.ClubSettings(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		cfg.FeeTable["cadet"] = types.ARS(150000)
		cfg.Spaces = append(cfg.Spaces, settings.Space{Name: "pool", Color: "#3366ff"})
		if _, err := p.SaveClubSettings(ctx, cfg); err != nil {
			t.Fatal(err)
		}

		// Register a member
		m, err := p.SaveMember(ctx, &member.Member{
			ClubID:     clubID,
			Name:       "Ana Suárez",
			Email:      "ana@example.com",
			DNI:        "30123456",
			MemberType: "cadet",
		})
		if err != nil {
			t.Fatal(err)
		}

		// Register an instructor with a portal login
		inst, err := p.SaveInstructor(ctx, &instructor.Instructor{
			ClubID:    clubID,
			FirstName: "Marta",
			LastName:  "Gómez",
			Email:     "marta@example.com",
		}, "changeme")
		if err != nil {
			t.Fatal(err)
		}

		// Create an activity and schedule a weekly class
		act, err := p.SaveActivity(ctx, &activity.Activity{
			ClubID: clubID,
			Name:   "Swimming",
		})
		if err != nil {
			t.Fatal(err)
		}
		entry, err := p.SaveScheduleEntry(ctx, &schedule.Entry{
			ClubID:       clubID,
			ActivityID:   act.ID,
			InstructorID: inst.ID,
			Space:        "pool",
			DayOfWeek:    time.Monday,
			StartTime:    types.MustTimeOfDay("10:00"),
			EndTime:      types.MustTimeOfDay("11:00"),
			MaxCapacity:  20,
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := p.EnrollMember(ctx, entry.ID, m.ID); err != nil {
			t.Fatal(err)
		}

		// Generate the month's dues and settle one
		created, err := p.GenerateDues(ctx, clubID, types.Period("2026-09"))
		if err != nil {
			t.Fatal(err)
		}
		if created != 1 {
			t.Fatalf("created = %d, want 1", created)
		}
		dues, err := p.MemberDues(ctx, clubID, m.ID)
		if err != nil {
			t.Fatal(err)
		}
		pay, err := p.RegisterPayment(ctx, clubID, dues[0].ID, clubsync.PaymentInput{
			Details: "front desk",
		})
		if err != nil {
			t.Fatal(err)
		}
		if pay.ReceiptConfig.Title == "" {
			t.Fatal("payment missing frozen receipt template")
		}

		// Publish an announcement
		if _, err := p.SaveNews(ctx, &news.Item{
			ClubID: clubID,
			Title:  "Pileta cerrada el lunes",
			Body:   "Mantenimiento programado.",
		}); err != nil {
			t.Fatal(err)
		}

		// Open the live view
		agg, err := p.Open(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := agg.WaitReady(waitCtx); err != nil {
			t.Fatal(err)
		}

		snap := agg.Snapshot()
		if len(snap.Members) != 1 || len(snap.Dues) != 1 || len(snap.Payments) != 1 {
			t.Fatalf("snapshot = %d members, %d dues, %d payments",
				len(snap.Members), len(snap.Dues), len(snap.Payments))
		}

		// The member's account statement nets to zero
		st, err := p.AccountStatement(ctx, clubID, m.ID, clubsync.StatementOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if !st.Balance.IsZero() {
			t.Fatalf("balance = %s, want zero", st.Balance)
		}
	})
}
