package enrollment

import (
	"time"

	"github.com/shopspring/decimal"

	domainEnrollment "edupay-backend/internal/domain/enrollment"
	domainInstallment "edupay-backend/internal/domain/installment"
	domainPlan "edupay-backend/internal/domain/plan"
)

type CreateInput struct {
	StudentID      string
	PlanID         string
	EnrollmentFee  decimal.Decimal
	EnrollmentDate time.Time
	// FirstPaymentDate anchors the schedule when declared; the enrollment
	// date anchors it otherwise.
	FirstPaymentDate *time.Time
	// VerifiedBy is the cashier who committed the enrollment.
	VerifiedBy string
}

type InstallmentDTO struct {
	InstallmentID   string          `json:"installment_id"`
	Seq             int             `json:"seq"`
	DueDate         time.Time       `json:"due_date"`
	Amount          decimal.Decimal `json:"amount"`
	LateFee         decimal.Decimal `json:"late_fee"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentType     string          `json:"payment_type,omitempty"`
	Status          string          `json:"status"`
	PaidDate        *time.Time      `json:"paid_date,omitempty"`
}

type View struct {
	EnrollmentID   string                   `json:"enrollment_id"`
	StudentID      string                   `json:"student_id"`
	PlanID         string                   `json:"plan_id"`
	PlanName       string                   `json:"plan_name"`
	EnrollmentFee  decimal.Decimal          `json:"enrollment_fee"`
	EnrollmentDate time.Time                `json:"enrollment_date"`
	Status         string                   `json:"status"`
	Installments   []InstallmentDTO         `json:"installments"`
	Summary        domainEnrollment.Summary `json:"summary"`
}

type EligibilityResult struct {
	Allowed       bool                    `json:"allowed"`
	Reason        string                  `json:"reason,omitempty"`
	DaysRemaining int                     `json:"days_remaining,omitempty"`
	History       []domainPlan.PlanChange `json:"history,omitempty"`
}

type ChangePlanInput struct {
	StudentID string
	NewPlanID string
	Reason    string
	ChangedBy string
}

func toInstallmentDTO(i *domainInstallment.Installment) InstallmentDTO {
	return InstallmentDTO{
		InstallmentID:   i.InstallmentID,
		Seq:             i.Seq,
		DueDate:         i.DueDate,
		Amount:          i.Amount,
		LateFee:         i.LateFee,
		PaidAmount:      i.PaidAmount,
		RemainingAmount: i.RemainingAmount,
		PaymentType:     string(i.PaymentType),
		Status:          string(i.Status),
		PaidDate:        i.PaidDate,
	}
}
