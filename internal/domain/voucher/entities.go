package voucher

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"edupay-backend/pkg/fault"
)

var (
	ErrNotFound = fault.Wrap(fault.KindNotFound, "voucher not found", errors.New("voucher: no rows"))
	// ErrAlreadyReviewed: the voucher already left pending; a second reviewer
	// lost the race and must re-fetch.
	ErrAlreadyReviewed = fault.New(fault.KindConflict, "voucher has already been reviewed")
	// ErrPendingExists: only one voucher may await review on an installment.
	ErrPendingExists = fault.New(fault.KindConflict, "a voucher is already awaiting review on this installment")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Voucher is a claimed proof of payment against one installment. An
// installment accumulates vouchers over time — rejected ones stay as history —
// and each voucher transitions out of pending exactly once.
type Voucher struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	VoucherID     string `gorm:"size:32;uniqueIndex:ux_vouchers_voucher_id" json:"voucher_id"`
	InstallmentID uint64 `gorm:"column:installment_id;index" json:"-"`
	// FileRef is the opaque blob-store reference for the uploaded proof.
	FileRef string `gorm:"type:text" json:"file_ref"`
	// FileURL is best-effort; blob-store URL failures leave it empty and
	// never abort the surrounding transaction.
	FileURL        string          `gorm:"type:text" json:"file_url,omitempty"`
	DeclaredAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"declared_amount"`
	PaymentDate    time.Time       `gorm:"type:date" json:"payment_date"`
	Method         string          `gorm:"size:32" json:"method"`
	Reference      string          `gorm:"size:64" json:"reference,omitempty"`
	Status         Status          `gorm:"size:16;default:'pending'" json:"status"`
	UploadedBy     string          `gorm:"size:32" json:"uploaded_by"`
	ReviewedBy     string          `gorm:"size:32" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time      `json:"reviewed_at,omitempty"`
	RejectReason   string          `gorm:"type:text" json:"reject_reason,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Voucher) TableName() string { return "installment_vouchers" }
