package clubsync

import (
	"context"
	"errors"
	"time"

	"github.com/xraph/clubsync/due"
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/payment"
	"github.com/xraph/clubsync/settings"
	"github.com/xraph/clubsync/store"
	"github.com/xraph/clubsync/types"
)

// PaymentInput carries the operator-supplied fields of a payment
// registration.
type PaymentInput struct {
	Date     time.Time
	Method   payment.Method
	Details  string
	ProofURL string
}

// RegisterPayment settles a pending due: the due's Pending→Paid
// transition and the payment record are written in one atomic batch,
// so no observer ever sees one without the other. The club's receipt
// template is frozen onto the payment at this moment.
func (p *Portal) RegisterPayment(ctx context.Context, clubID id.ClubID, dueID id.DueID, in PaymentInput) (*payment.Payment, error) {
	if clubID.IsNil() || dueID.IsNil() {
		return nil, ErrInvalidInput
	}

	d, err := p.store.GetDue(ctx, dueID)
	if err != nil {
		return nil, err
	}
	if d.ClubID != clubID {
		return nil, ErrWrongTenant
	}
	if !d.IsPending() {
		return nil, ErrDuePaid
	}

	receipt := settings.DefaultReceipt()
	cfg, err := p.store.GetSettings(ctx, clubID)
	switch {
	case err == nil:
		receipt = cfg.Receipt
	case !errors.Is(err, ErrSettingsNotFound):
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = p.clock()
	}
	method := in.Method
	if method == "" {
		method = payment.MethodManual
	}

	pay := &payment.Payment{
		Entity:        types.NewEntity(),
		ID:            id.NewPaymentID(),
		ClubID:        clubID,
		MemberID:      d.MemberID,
		DueID:         d.ID,
		Period:        d.Period,
		Amount:        d.Amount,
		Date:          date,
		Method:        method,
		Details:       in.Details,
		ProofURL:      in.ProofURL,
		ReceiptConfig: receipt,
	}

	paid := *d
	paid.Status = due.StatusPaid
	paid.Touch()

	writes := []store.Write{
		{Collection: store.CollectionDues, Op: store.OpUpdate, ID: paid.ID, Entity: &paid},
		{Collection: store.CollectionPayments, Op: store.OpCreate, ID: pay.ID, Entity: pay},
	}
	if err := p.store.ApplyBatch(ctx, writes); err != nil {
		return nil, err
	}

	p.logger.Info("payment registered",
		"club_id", clubID.String(),
		"due_id", dueID.String(),
		"payment_id", pay.ID.String(),
		"amount", pay.Amount.String(),
	)
	p.plugins.EmitPaymentRegistered(ctx, pay)

	return pay, nil
}

// EditPaymentDetails updates a payment's free-text details. Amount,
// date, period, and the frozen receipt template are immutable.
func (p *Portal) EditPaymentDetails(ctx context.Context, paymentID id.PaymentID, details string) error {
	if paymentID.IsNil() {
		return ErrInvalidInput
	}
	if err := p.store.UpdatePaymentDetails(ctx, paymentID, details); err != nil {
		return err
	}
	p.plugins.EmitPaymentEdited(ctx, paymentID.String())
	return nil
}

// GetPayment returns a payment by ID.
func (p *Portal) GetPayment(ctx context.Context, paymentID id.PaymentID) (*payment.Payment, error) {
	return p.store.GetPayment(ctx, paymentID)
}

// ListPayments returns the club's payments with an optional date
// range.
func (p *Portal) ListPayments(ctx context.Context, clubID id.ClubID, opts payment.ListOpts) ([]*payment.Payment, error) {
	return p.store.ListPayments(ctx, clubID, opts)
}
