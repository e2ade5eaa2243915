package clubsync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/types"
)

// LineKind labels a statement row's origin.
type LineKind string

const (
	LineDue     LineKind = "due"
	LinePayment LineKind = "payment"
)

// StatementLine is one row of a member's account statement. Exactly
// one of Debit and Credit is non-zero.
type StatementLine struct {
	Date    time.Time   `json:"date"`
	Concept string      `json:"concept"`
	Kind    LineKind    `json:"kind"`
	RefID   id.AnyID    `json:"ref_id"`
	Debit   types.Money `json:"debit"`
	Credit  types.Money `json:"credit"`
	Balance types.Money `json:"balance"`
}

// SortKey selects the presentation order of statement lines. Balances
// are always computed chronologically first, so re-sorting never
// changes any Balance cell.
type SortKey string

const (
	SortByDate    SortKey = "date"
	SortByConcept SortKey = "concept"
	SortByDebit   SortKey = "debit"
	SortByCredit  SortKey = "credit"
	SortByBalance SortKey = "balance"
)

// StatementOpts filters and orders a statement. A zero From or To
// leaves that end of the range open; the range is half-open [From, To).
type StatementOpts struct {
	From time.Time
	To   time.Time
	Sort SortKey
	Desc bool
}

// Statement is a member's account history: dues as debits, payments as
// credits, with a running balance. A negative balance means the member
// owes the club.
type Statement struct {
	MemberID    id.MemberID     `json:"member_id"`
	Lines       []StatementLine `json:"lines"`
	TotalDebit  types.Money     `json:"total_debit"`
	TotalCredit types.Money     `json:"total_credit"`
	Balance     types.Money     `json:"balance"`
}

// BuildStatement assembles a statement from a member's dues and
// payments. It is a pure function of its inputs. Dues are dated at
// their creation time; the running balance at each row is the balance
// after that row, scanning the filtered rows in chronological order
// with dues before payments on equal dates. Amounts with no currency
// set are treated as the statement currency.
func BuildStatement(memberID id.MemberID, dues []*due.Due, payments []*payment.Payment, opts StatementOpts) *Statement {
	currency := statementCurrency(dues, payments)
	zero := types.Zero(currency)

	normalize := func(m types.Money) types.Money {
		if m.Currency == "" {
			m.Currency = currency
		}
		return m
	}

	lines := make([]StatementLine, 0, len(dues)+len(payments))
	for _, d := range dues {
		lines = append(lines, StatementLine{
			Date:    d.CreatedAt,
			Concept: fmt.Sprintf("Due %s", d.Period),
			Kind:    LineDue,
			RefID:   d.ID,
			Debit:   normalize(d.Amount),
			Credit:  zero,
		})
	}
	for _, p := range payments {
		lines = append(lines, StatementLine{
			Date:    p.Date,
			Concept: fmt.Sprintf("Payment %s", p.Period),
			Kind:    LinePayment,
			RefID:   p.ID,
			Debit:   zero,
			Credit:  normalize(p.Amount),
		})
	}

	filtered := lines[:0]
	for _, ln := range lines {
		if !opts.From.IsZero() && ln.Date.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && !ln.Date.Before(opts.To) {
			continue
		}
		filtered = append(filtered, ln)
	}
	lines = filtered

	sort.SliceStable(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		return lines[i].Kind == LineDue && lines[j].Kind == LinePayment
	})

	st := &Statement{
		MemberID:    memberID,
		TotalDebit:  zero,
		TotalCredit: zero,
		Balance:     zero,
	}
	for i := range lines {
		st.Balance = st.Balance.Subtract(lines[i].Debit).Add(lines[i].Credit)
		st.TotalDebit = st.TotalDebit.Add(lines[i].Debit)
		st.TotalCredit = st.TotalCredit.Add(lines[i].Credit)
		lines[i].Balance = st.Balance
	}

	sortLines(lines, opts.Sort, opts.Desc)
	st.Lines = lines
	return st
}

// AccountStatement builds the statement of one member from the store.
func (p *Portal) AccountStatement(ctx context.Context, clubID id.ClubID, memberID id.MemberID, opts StatementOpts) (*Statement, error) {
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

	dues, err := p.store.ListDuesByMember(ctx, clubID, memberID)
	if err != nil {
		return nil, err
	}
	payments, err := p.store.ListPaymentsByMember(ctx, clubID, memberID)
	if err != nil {
		return nil, err
	}

	return BuildStatement(memberID, dues, payments, opts), nil
}

func statementCurrency(dues []*due.Due, payments []*payment.Payment) string {
	for _, d := range dues {
		if d.Amount.Currency != "" {
			return d.Amount.Currency
		}
	}
	for _, p := range payments {
		if p.Amount.Currency != "" {
			return p.Amount.Currency
		}
	}
	return "ars"
}

func sortLines(lines []StatementLine, key SortKey, desc bool) {
	var less func(i, j int) bool
	switch key {
	case SortByConcept:
		less = func(i, j int) bool { return lines[i].Concept < lines[j].Concept }
	case SortByDebit:
		less = func(i, j int) bool { return lines[i].Debit.LessThan(lines[j].Debit) }
	case SortByCredit:
		less = func(i, j int) bool { return lines[i].Credit.LessThan(lines[j].Credit) }
	case SortByBalance:
		less = func(i, j int) bool { return lines[i].Balance.LessThan(lines[j].Balance) }
	case SortByDate, "":
		less = func(i, j int) bool { return lines[i].Date.Before(lines[j].Date) }
	default:
		less = func(i, j int) bool { return lines[i].Date.Before(lines[j].Date) }
	}
	if desc {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(lines, less)
}
