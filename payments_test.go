package clubsync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	clubsync "github.com/xraph/clubsync"
	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/types"
)

// pendingDue generates one due for a fresh member and returns it.
func pendingDue(t *testing.T, p *clubsync.Portal, clubID id.ClubID) *due.Due {
	t.Helper()
	ctx := context.Background()

	m := seedMember(t, p, clubID, "Payer", "cadet")
	if _, err := p.GenerateDues(ctx, clubID, types.Period("2026-09")); err != nil {
		t.Fatal(err)
	}
	dues, err := p.MemberDues(ctx, clubID, m.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(dues) != 1 {
		t.Fatalf("dues = %d, want 1", len(dues))
	}
	return dues[0]
}

func TestRegisterPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("SettlesDueAtomically", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(150000)})
		d := pendingDue(t, p, clubID)

		pay, err := p.RegisterPayment(ctx, clubID, d.ID, clubsync.PaymentInput{
			Details: "front desk",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		if !pay.Amount.Equal(d.Amount) {
			t.Errorf("amount = %s, want %s", pay.Amount, d.Amount)
		}
		if pay.Period != d.Period {
			t.Errorf("period = %s, want %s", pay.Period, d.Period)
		}
		if pay.Method != payment.MethodManual {
			t.Errorf("method = %s, want manual", pay.Method)
		}
		if pay.Date.IsZero() {
			t.Error("date not defaulted")
		}

		settled, err := p.Store().GetDue(ctx, d.ID)
		if err != nil {
			t.Fatal(err)
		}
		if settled.Status != due.StatusPaid {
			t.Errorf("due status = %s, want paid", settled.Status)
		}
	})

	t.Run("RejectsAlreadyPaidDue", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		d := pendingDue(t, p, clubID)

		if _, err := p.RegisterPayment(ctx, clubID, d.ID, clubsync.PaymentInput{}); err != nil {
			t.Fatal(err)
		}
		_, err := p.RegisterPayment(ctx, clubID, d.ID, clubsync.PaymentInput{})
		if !errors.Is(err, clubsync.ErrDuePaid) {
			t.Fatalf("err = %v, want ErrDuePaid", err)
		}

		payments, err := p.ListPayments(ctx, clubID, payment.ListOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if len(payments) != 1 {
			t.Fatalf("payments = %d, want 1", len(payments))
		}
	})

	t.Run("RejectsCrossTenantDue", func(t *testing.T) {
		p := newTestPortal(t)
		clubA := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		clubB := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		d := pendingDue(t, p, clubA)

		_, err := p.RegisterPayment(ctx, clubB, d.ID, clubsync.PaymentInput{})
		if !errors.Is(err, clubsync.ErrWrongTenant) {
			t.Fatalf("err = %v, want ErrWrongTenant", err)
		}
	})

	t.Run("FreezesReceiptTemplate", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})

		cfg, err := p.ClubSettings(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		cfg.Receipt.Title = "Recibo 2026"
		if _, err := p.SaveClubSettings(ctx, cfg); err != nil {
			t.Fatal(err)
		}

		d := pendingDue(t, p, clubID)
		pay, err := p.RegisterPayment(ctx, clubID, d.ID, clubsync.PaymentInput{})
		if err != nil {
			t.Fatal(err)
		}
		if pay.ReceiptConfig.Title != "Recibo 2026" {
			t.Fatalf("frozen title = %q, want %q", pay.ReceiptConfig.Title, "Recibo 2026")
		}

		// Editing the template afterwards must not reach issued receipts.
		cfg, err = p.ClubSettings(ctx, clubID)
		if err != nil {
			t.Fatal(err)
		}
		cfg.Receipt.Title = "Recibo 2027"
		if _, err := p.SaveClubSettings(ctx, cfg); err != nil {
			t.Fatal(err)
		}

		stored, err := p.GetPayment(ctx, pay.ID)
		if err != nil {
			t.Fatal(err)
		}
		if stored.ReceiptConfig.Title != "Recibo 2026" {
			t.Fatalf("stored title = %q, want frozen %q", stored.ReceiptConfig.Title, "Recibo 2026")
		}
	})

	t.Run("ExplicitDateAndMethodKept", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		d := pendingDue(t, p, clubID)

		date := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
		pay, err := p.RegisterPayment(ctx, clubID, d.ID, clubsync.PaymentInput{
			Date:   date,
			Method: payment.MethodManual,
		})
		if err != nil {
			t.Fatal(err)
		}
		if !pay.Date.Equal(date) {
			t.Errorf("date = %s, want %s", pay.Date, date)
		}
	})
}

func TestEditPaymentDetails(t *testing.T) {
	ctx := context.Background()
	p := newTestPortal(t)
	clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
	d := pendingDue(t, p, clubID)

	pay, err := p.RegisterPayment(ctx, clubID, d.ID, clubsync.PaymentInput{Details: "original"})
	if err != nil {
		t.Fatal(err)
	}

	if err := p.EditPaymentDetails(ctx, pay.ID, "corrected concept"); err != nil {
		t.Fatal(err)
	}

	stored, err := p.GetPayment(ctx, pay.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Details != "corrected concept" {
		t.Errorf("details = %q, want %q", stored.Details, "corrected concept")
	}
	// Everything else stays untouched.
	if !stored.Amount.Equal(pay.Amount) || stored.Period != pay.Period || !stored.Date.Equal(pay.Date) {
		t.Error("edit changed immutable payment fields")
	}
}
