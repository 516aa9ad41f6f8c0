package student

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"edupay-backend/pkg/fault"
)

var (
	ErrNotFound = fault.Wrap(fault.KindNotFound, "student not found", errors.New("student: no rows"))
)

type ProspectStatus string

const (
	StatusRegistered         ProspectStatus = "registered"
	StatusProposalSent       ProspectStatus = "proposal_sent"
	StatusPaymentUnderReview ProspectStatus = "payment_under_review"
	StatusEnrolled           ProspectStatus = "enrolled"
)

func (s ProspectStatus) Valid() bool {
	switch s {
	case StatusRegistered, StatusProposalSent, StatusPaymentUnderReview, StatusEnrolled:
		return true
	}
	return false
}

type Student struct {
	ID        uint64         `gorm:"primaryKey;column:id" json:"-"`
	StudentID string         `gorm:"size:32;uniqueIndex:ux_students_student_id" json:"student_id"`
	FullName  string         `gorm:"size:160" json:"full_name"`
	Email     string         `gorm:"size:160" json:"email"`
	Status    ProspectStatus `gorm:"size:32;default:'registered'" json:"status"`
	// PaymentDate is recorded when the prospect reports their first payment;
	// required (or auto-derived) before the cashier may enroll them.
	PaymentDate *time.Time `gorm:"type:date" json:"payment_date,omitempty"`
	// FirstPaymentDate is the declared anchor for the installment schedule.
	// When nil the enrollment date anchors the schedule instead.
	FirstPaymentDate *time.Time     `gorm:"type:date" json:"first_payment_date,omitempty"`
	EnrollmentCode   string         `gorm:"size:32" json:"enrollment_code,omitempty"`
	StatusUpdatedAt  time.Time      `gorm:"column:status_updated_at" json:"status_updated_at"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string { return "students" }
