package plan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"edupay-backend/pkg/fault"
)

var (
	ErrNotFound = fault.Wrap(fault.KindNotFound, "payment plan not found", errors.New("plan: no rows"))
)

// PaymentPlan is an immutable-per-enrollment template. Administrators create
// and edit plans; an enrollment references one and never mutates it.
type PaymentPlan struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	PlanID            string          `gorm:"size:32;uniqueIndex:ux_plans_plan_id" json:"plan_id"`
	Name              string          `gorm:"size:128" json:"name"`
	InstallmentsCount int             `gorm:"column:installments_count" json:"installments_count"`
	MonthlyAmount     decimal.Decimal `gorm:"type:decimal(18,2)" json:"monthly_amount"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	GraceDays         int             `gorm:"column:grace_days" json:"grace_days"`
	// LateFeeRate is a percentage of the installment amount per 30-day month,
	// prorated daily once the grace period elapses.
	LateFeeRate decimal.Decimal `gorm:"type:decimal(6,2)" json:"late_fee_rate"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (PaymentPlan) TableName() string { return "payment_plans" }

// PlanChange is the append-only audit record of a student switching plans.
// Old/new snapshots are copied in so the record survives later plan edits.
type PlanChange struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	ChangeID        string          `gorm:"size:32;uniqueIndex:ux_plan_changes_change_id" json:"change_id"`
	StudentID       uint64          `gorm:"column:student_id;index" json:"-"`
	OldPlanID       uint64          `gorm:"column:old_plan_id" json:"-"`
	NewPlanID       uint64          `gorm:"column:new_plan_id" json:"-"`
	OldInstallments int             `gorm:"column:old_installments" json:"old_installments"`
	NewInstallments int             `gorm:"column:new_installments" json:"new_installments"`
	OldTotal        decimal.Decimal `gorm:"type:decimal(18,2);column:old_total" json:"old_total"`
	NewTotal        decimal.Decimal `gorm:"type:decimal(18,2);column:new_total" json:"new_total"`
	ChangedBy       string          `gorm:"size:32;column:changed_by" json:"changed_by"`
	Reason          string          `gorm:"type:text" json:"reason"`
	ChangedAt       time.Time       `gorm:"column:changed_at" json:"changed_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (PlanChange) TableName() string { return "plan_changes" }
