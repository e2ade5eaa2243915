// Package settings defines the per-club configuration document: the
// membership fee table, schedule spaces, printable document templates,
// dashboard layout, and the storage usage counter.
package settings

import (
	"github.com/xraph/clubsync/id"
	"github.com/xraph/clubsync/types"
)

// DefaultStorageLimit is the per-club upload allowance in bytes.
const DefaultStorageLimit = 5 << 30 // 5 GiB

// Space is a bookable physical location with a display color for the
// schedule grid.
type Space struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ReceiptTemplate controls the layout of a printable payment receipt.
// A copy of the club's template is frozen onto every payment at
// registration time, so later template edits never alter issued
// receipts.
type ReceiptTemplate struct {
	Title        string `json:"title"`
	Observations string `json:"observations,omitempty"`
	ShowLogo     bool   `json:"show_logo"`
	ShowMember   bool   `json:"show_member"`
	ShowDNI      bool   `json:"show_dni"`
	ShowPeriod   bool   `json:"show_period"`
	ShowAmount   bool   `json:"show_amount"`
	ShowMethod   bool   `json:"show_method"`
	ShowDate     bool   `json:"show_date"`
}

// CouponTemplate controls the layout of a payment coupon handed to a
// member before paying.
type CouponTemplate struct {
	Title        string `json:"title"`
	Observations string `json:"observations,omitempty"`
	ShowLogo     bool   `json:"show_logo"`
	ShowMember   bool   `json:"show_member"`
	ShowDNI      bool   `json:"show_dni"`
	ShowPeriod   bool   `json:"show_period"`
	ShowAmount   bool   `json:"show_amount"`
	ShowDueDate  bool   `json:"show_due_date"`
}

// Dashboard toggles the widgets rendered on the portal home screen.
type Dashboard struct {
	ShowIncome     bool `json:"show_income"`
	ShowDebtors    bool `json:"show_debtors"`
	ShowBirthdays  bool `json:"show_birthdays"`
	ShowSchedule   bool `json:"show_schedule"`
	ShowNews       bool `json:"show_news"`
	ShowEnrollment bool `json:"show_enrollment"`
}

// Settings is the club configuration document. There is exactly one
// per club.
type Settings struct {
	types.Entity
	ClubID id.ClubID `json:"club_id"`

	// FeeTable maps a member type to its monthly due amount. A zero or
	// missing amount exempts that member type from dues generation.
	FeeTable map[string]types.Money `json:"fee_table"`

	Spaces []Space `json:"spaces"`

	Receipt   ReceiptTemplate `json:"receipt"`
	Coupon    CouponTemplate  `json:"coupon"`
	Dashboard Dashboard       `json:"dashboard"`

	// StorageUsed is the running total of uploaded bytes, maintained
	// by the upload meter. StorageLimit of zero means the default.
	StorageUsed  int64 `json:"storage_used"`
	StorageLimit int64 `json:"storage_limit,omitempty"`
}

// Limit returns the effective storage allowance in bytes.
func (s *Settings) Limit() int64 {
	if s.StorageLimit > 0 {
		return s.StorageLimit
	}
	return DefaultStorageLimit
}

// FeeFor returns the monthly amount for a member type and whether one
// is configured. Zero amounts count as not configured.
func (s *Settings) FeeFor(memberType string) (types.Money, bool) {
	fee, ok := s.FeeTable[memberType]
	if !ok || !fee.IsPositive() {
		return types.Money{}, false
	}
	return fee, true
}

// HasSpace reports whether the named space is configured for the club.
func (s *Settings) HasSpace(name string) bool {
	for _, sp := range s.Spaces {
		if sp.Name == name {
			return true
		}
	}
	return false
}

// DefaultReceipt returns the receipt template new clubs start with.
func DefaultReceipt() ReceiptTemplate {
	return ReceiptTemplate{
		Title:      "Recibo de pago",
		ShowLogo:   true,
		ShowMember: true,
		ShowDNI:    true,
		ShowPeriod: true,
		ShowAmount: true,
		ShowMethod: true,
		ShowDate:   true,
	}
}

// DefaultCoupon returns the coupon template new clubs start with.
func DefaultCoupon() CouponTemplate {
	return CouponTemplate{
		Title:      "Cupón de pago",
		ShowLogo:   true,
		ShowMember: true,
		ShowDNI:    true,
		ShowPeriod: true,
		ShowAmount: true,
	}
}

// Default returns a fresh configuration document for a club.
func Default(clubID id.ClubID) *Settings {
	return &Settings{
		Entity:   types.NewEntity(),
		ClubID:   clubID,
		FeeTable: map[string]types.Money{},
		Receipt:  DefaultReceipt(),
		Coupon:   DefaultCoupon(),
		Dashboard: Dashboard{
			ShowIncome:   true,
			ShowDebtors:  true,
			ShowSchedule: true,
			ShowNews:     true,
		},
	}
}
