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

func testDue(memberID id.MemberID, created time.Time, period string, amount int64) *due.Due {
	return &due.Due{
		Entity:   types.Entity{CreatedAt: created, UpdatedAt: created},
		ID:       id.NewDueID(),
		MemberID: memberID,
		Period:   types.Period(period),
		Amount:   types.ARS(amount),
		Status:   due.StatusPending,
	}
}

func testPayment(memberID id.MemberID, date time.Time, period string, amount int64) *payment.Payment {
	return &payment.Payment{
		ID:       id.NewPaymentID(),
		MemberID: memberID,
		Period:   types.Period(period),
		Amount:   types.ARS(amount),
		Date:     date,
	}
}

func TestBuildStatement(t *testing.T) {
	memberID := id.NewMemberID()

	t.Run("RunningBalance", func(t *testing.T) {
		dues := []*due.Due{
			testDue(memberID, types.Period("2026-08").Start(), "2026-08", 10000),
			testDue(memberID, types.Period("2026-09").Start(), "2026-09", 10000),
		}
		payments := []*payment.Payment{
			testPayment(memberID, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), "2026-08", 10000),
		}

		st := clubsync.BuildStatement(memberID, dues, payments, clubsync.StatementOpts{})
		if len(st.Lines) != 3 {
			t.Fatalf("lines = %d, want 3", len(st.Lines))
		}

		wantBalances := []int64{-10000, 0, -10000}
		for i, want := range wantBalances {
			if st.Lines[i].Balance.Amount != want {
				t.Errorf("line %d balance = %d, want %d", i, st.Lines[i].Balance.Amount, want)
			}
		}
		if st.TotalDebit.Amount != 20000 || st.TotalCredit.Amount != 10000 {
			t.Errorf("totals = %d/%d, want 20000/10000", st.TotalDebit.Amount, st.TotalCredit.Amount)
		}
		if st.Balance.Amount != -10000 {
			t.Errorf("final balance = %d, want -10000", st.Balance.Amount)
		}
	})

	t.Run("DueBeforePaymentOnEqualDates", func(t *testing.T) {
		// The payment lands at the exact instant the due was created.
		created := time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC)
		dues := []*due.Due{testDue(memberID, created, "2026-09", 5000)}
		payments := []*payment.Payment{
			testPayment(memberID, created, "2026-09", 5000),
		}

		st := clubsync.BuildStatement(memberID, dues, payments, clubsync.StatementOpts{})
		if st.Lines[0].Kind != clubsync.LineDue || st.Lines[1].Kind != clubsync.LinePayment {
			t.Fatalf("order = %s,%s, want due,payment", st.Lines[0].Kind, st.Lines[1].Kind)
		}
		if st.Lines[0].Balance.Amount != -5000 || st.Lines[1].Balance.Amount != 0 {
			t.Errorf("balances = %d,%d, want -5000,0",
				st.Lines[0].Balance.Amount, st.Lines[1].Balance.Amount)
		}
	})

	t.Run("HalfOpenRangeFilter", func(t *testing.T) {
		dues := []*due.Due{
			testDue(memberID, types.Period("2026-08").Start(), "2026-08", 1000),
			testDue(memberID, types.Period("2026-09").Start(), "2026-09", 2000),
			testDue(memberID, types.Period("2026-10").Start(), "2026-10", 3000),
		}

		st := clubsync.BuildStatement(memberID, dues, nil, clubsync.StatementOpts{
			From: types.Period("2026-09").Start(),
			To:   types.Period("2026-10").Start(),
		})
		if len(st.Lines) != 1 {
			t.Fatalf("lines = %d, want 1", len(st.Lines))
		}
		if st.Lines[0].Debit.Amount != 2000 {
			t.Errorf("debit = %d, want 2000", st.Lines[0].Debit.Amount)
		}
		// The balance is computed over the filtered window only.
		if st.Balance.Amount != -2000 {
			t.Errorf("balance = %d, want -2000", st.Balance.Amount)
		}
	})

	t.Run("PresentationSortKeepsBalances", func(t *testing.T) {
		dues := []*due.Due{
			testDue(memberID, types.Period("2026-08").Start(), "2026-08", 1000),
			testDue(memberID, types.Period("2026-09").Start(), "2026-09", 3000),
			testDue(memberID, types.Period("2026-10").Start(), "2026-10", 2000),
		}

		chrono := clubsync.BuildStatement(memberID, dues, nil, clubsync.StatementOpts{})
		byDebit := clubsync.BuildStatement(memberID, dues, nil, clubsync.StatementOpts{
			Sort: clubsync.SortByDebit,
			Desc: true,
		})

		if byDebit.Lines[0].Debit.Amount != 3000 {
			t.Fatalf("first debit = %d, want 3000", byDebit.Lines[0].Debit.Amount)
		}

		// Every row keeps the balance from the chronological scan.
		balances := map[string]int64{}
		for _, ln := range chrono.Lines {
			balances[ln.RefID.String()] = ln.Balance.Amount
		}
		for _, ln := range byDebit.Lines {
			if ln.Balance.Amount != balances[ln.RefID.String()] {
				t.Errorf("row %s balance changed by re-sort: %d != %d",
					ln.RefID, ln.Balance.Amount, balances[ln.RefID.String()])
			}
		}
		if !byDebit.Balance.Equal(chrono.Balance) {
			t.Errorf("summary balance changed by re-sort")
		}
	})

	t.Run("MidMonthDueFollowsEarlierPayment", func(t *testing.T) {
		// A due generated mid-month must not be pulled back to the
		// period start: a payment made earlier in the month comes
		// first in the chronological scan.
		created := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		dues := []*due.Due{testDue(memberID, created, "2026-09", 8000)}
		payments := []*payment.Payment{
			testPayment(memberID, time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), "2026-08", 3000),
		}

		st := clubsync.BuildStatement(memberID, dues, payments, clubsync.StatementOpts{})
		if st.Lines[0].Kind != clubsync.LinePayment || st.Lines[1].Kind != clubsync.LineDue {
			t.Fatalf("order = %s,%s, want payment,due", st.Lines[0].Kind, st.Lines[1].Kind)
		}
		if !st.Lines[1].Date.Equal(created) {
			t.Errorf("due line date = %v, want %v", st.Lines[1].Date, created)
		}
		if st.Lines[0].Balance.Amount != 3000 || st.Lines[1].Balance.Amount != -5000 {
			t.Errorf("balances = %d,%d, want 3000,-5000",
				st.Lines[0].Balance.Amount, st.Lines[1].Balance.Amount)
		}
	})

	t.Run("EmptyCurrencyAmountsNormalized", func(t *testing.T) {
		// A fee table filled with bare amounts must not break the
		// running balance arithmetic.
		d := testDue(memberID, types.Period("2026-09").Start(), "2026-09", 4000)
		d.Amount = types.Money{Amount: 4000}
		payments := []*payment.Payment{
			testPayment(memberID, time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC), "2026-09", 4000),
		}

		st := clubsync.BuildStatement(memberID, []*due.Due{d}, payments, clubsync.StatementOpts{})
		if st.Lines[0].Debit.Currency != "ars" {
			t.Errorf("debit currency = %q, want ars", st.Lines[0].Debit.Currency)
		}
		if st.Balance.Amount != 0 {
			t.Errorf("balance = %d, want 0", st.Balance.Amount)
		}
	})

	t.Run("EmptyInputs", func(t *testing.T) {
		st := clubsync.BuildStatement(memberID, nil, nil, clubsync.StatementOpts{})
		if len(st.Lines) != 0 {
			t.Fatalf("lines = %d, want 0", len(st.Lines))
		}
		if !st.Balance.IsZero() {
			t.Errorf("balance = %d, want 0", st.Balance.Amount)
		}
	})
}

func TestAccountStatement(t *testing.T) {
	ctx := context.Background()

	t.Run("EndToEnd", func(t *testing.T) {
		p := newTestPortal(t)
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(10000)})
		m := seedMember(t, p, clubID, "Ana", "cadet")

		if _, err := p.GenerateDues(ctx, clubID, types.Period("2026-08")); err != nil {
			t.Fatal(err)
		}
		if _, err := p.GenerateDues(ctx, clubID, types.Period("2026-09")); err != nil {
			t.Fatal(err)
		}

		dues, err := p.MemberDues(ctx, clubID, m.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(dues) != 2 {
			t.Fatalf("dues = %d, want 2", len(dues))
		}
		if _, err := p.RegisterPayment(ctx, clubID, dues[0].ID, clubsync.PaymentInput{}); err != nil {
			t.Fatal(err)
		}

		st, err := p.AccountStatement(ctx, clubID, m.ID, clubsync.StatementOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if len(st.Lines) != 3 {
			t.Fatalf("lines = %d, want 3", len(st.Lines))
		}
		if st.Balance.Amount != -10000 {
			t.Errorf("balance = %d, want -10000", st.Balance.Amount)
		}
	})

	t.Run("DueLineDatedAtGeneration", func(t *testing.T) {
		generated := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
		p := newTestPortal(t, clubsync.WithClock(func() time.Time { return generated }))
		clubID := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(10000)})
		m := seedMember(t, p, clubID, "Ana", "cadet")

		if _, err := p.GenerateDues(ctx, clubID, types.Period("2026-09")); err != nil {
			t.Fatal(err)
		}

		st, err := p.AccountStatement(ctx, clubID, m.ID, clubsync.StatementOpts{})
		if err != nil {
			t.Fatal(err)
		}
		if len(st.Lines) != 1 {
			t.Fatalf("lines = %d, want 1", len(st.Lines))
		}
		if !st.Lines[0].Date.Equal(generated) {
			t.Errorf("due line date = %v, want %v", st.Lines[0].Date, generated)
		}
	})

	t.Run("CrossTenantRejected", func(t *testing.T) {
		p := newTestPortal(t)
		clubA := seedClub(t, p, map[string]types.Money{"cadet": types.ARS(100)})
		clubB := seedClub(t, p, nil)
		m := seedMember(t, p, clubA, "Ana", "cadet")

		if _, err := p.AccountStatement(ctx, clubB, m.ID, clubsync.StatementOpts{}); !errors.Is(err, clubsync.ErrWrongTenant) {
			t.Fatalf("err = %v, want ErrWrongTenant", err)
		}
	})
}
