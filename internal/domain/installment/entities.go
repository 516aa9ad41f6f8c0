package installment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"edupay-backend/pkg/fault"
)

var (
	ErrNotFound = fault.Wrap(fault.KindNotFound, "installment not found", errors.New("installment: no rows"))
)

type Status string

const (
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
	// StatusPaid means a payment is claimed (voucher submitted or manual
	// entry) but not yet ledger-verified by a cashier.
	StatusPaid Status = "paid"
	// StatusVerified and StatusCancelled are terminal for the normal flow.
	StatusVerified  Status = "verified"
	StatusCancelled Status = "cancelled"
)

type PaymentType string

const (
	PaymentTypeFull PaymentType = "full"
	// PaymentTypePartial: the first partial payment on an installment.
	PaymentTypePartial PaymentType = "partial"
	// PaymentTypeCombined: two or more partial payments accumulated.
	PaymentTypeCombined PaymentType = "combined"
)

// Installment is one scheduled payment of an enrollment's plan total.
// Invariant: paid_amount + remaining_amount == amount + late_fee.
type Installment struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	InstallmentID string `gorm:"size:32;uniqueIndex:ux_installments_installment_id" json:"installment_id"`
	EnrollmentID  uint64 `gorm:"column:enrollment_id;index:idx_installments_enrollment" json:"-"`
	// Seq runs 1..N, unique within the enrollment's live schedule. Plan
	// changes retire a schedule by cancelling it, so uniqueness is enforced
	// at generation time rather than by a database index.
	Seq             int             `gorm:"column:seq" json:"seq"`
	DueDate         time.Time       `gorm:"type:date" json:"due_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	LateFee         decimal.Decimal `gorm:"type:decimal(18,2)" json:"late_fee"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"paid_amount"`
	RemainingAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"remaining_amount"`
	PaymentType     PaymentType     `gorm:"size:16" json:"payment_type,omitempty"`
	Status          Status          `gorm:"size:16;default:'pending'" json:"status"`
	PaidDate        *time.Time      `gorm:"type:date" json:"paid_date,omitempty"`
	VerifiedBy      string          `gorm:"size:32" json:"verified_by,omitempty"`
	VerifiedAt      *time.Time      `json:"verified_at,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Installment) TableName() string { return "installments" }

// TotalDue is the full obligation on the installment as of its stored fee.
func (i *Installment) TotalDue() decimal.Decimal { return i.Amount.Add(i.LateFee) }

// Open reports whether money state may still move forward on the installment.
func (i *Installment) Open() bool {
	return i.Status == StatusPending || i.Status == StatusOverdue
}

// CheckConservation verifies paid + remaining == amount + late_fee and that
// remaining is non-negative. A breach is an internal invariant violation and
// must abort the enclosing transaction.
func (i *Installment) CheckConservation() error {
	if i.RemainingAmount.IsNegative() {
		return fault.Newf(fault.KindInvariant, "installment %s: negative remaining amount %s", i.InstallmentID, i.RemainingAmount)
	}
	if !i.PaidAmount.Add(i.RemainingAmount).Equal(i.TotalDue()) {
		return fault.Newf(fault.KindInvariant, "installment %s: paid %s + remaining %s != due %s",
			i.InstallmentID, i.PaidAmount, i.RemainingAmount, i.TotalDue())
	}
	return nil
}
