package enrollment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"edupay-backend/pkg/fault"
)

var (
	ErrNotFound = fault.Wrap(fault.KindNotFound, "enrollment not found", errors.New("enrollment: no rows"))
	// ErrAlreadyActive guards the one-active-enrollment-per-student invariant.
	ErrAlreadyActive = fault.New(fault.KindConflict, "student already has an active enrollment")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Enrollment is one student's active commitment to a payment plan. It owns its
// installments (created as a batch in the same transaction) and is the unit
// the aggregate rolls up over.
type Enrollment struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"-"`
	EnrollmentID string `gorm:"size:32;uniqueIndex:ux_enrollments_enrollment_id" json:"enrollment_id"`
	StudentID    uint64 `gorm:"column:student_id;index:idx_enrollments_student" json:"-"`
	PlanID       uint64 `gorm:"column:plan_id" json:"-"`
	// EnrollmentFee is verifiable separately from the installment ledger.
	EnrollmentFee  decimal.Decimal `gorm:"type:decimal(18,2)" json:"enrollment_fee"`
	EnrollmentDate time.Time       `gorm:"type:date" json:"enrollment_date"`
	Status         Status          `gorm:"size:16;default:'pending'" json:"status"`
	VerifiedBy     string          `gorm:"size:32" json:"verified_by,omitempty"`
	VerifiedAt     *time.Time      `json:"verified_at,omitempty"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Enrollment) TableName() string { return "enrollments" }
