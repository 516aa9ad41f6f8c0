package installment

import (
	"time"

	"github.com/shopspring/decimal"

	"edupay-backend/internal/domain/plan"
	"edupay-backend/pkg/clock"
	"edupay-backend/pkg/fault"
	"edupay-backend/pkg/id"
)

// GenerateSchedule builds the full batch of installment drafts for a plan.
// Installment i is due at anchor + (i-1) months — the first one falls on the
// anchor day itself, not one month later. Month addition clamps to shorter
// months (Jan 31 anchors a Feb 28 due date).
//
// Runs exactly once per enrollment, inside the transaction that creates the
// enrollment row; the caller persists the whole batch or nothing.
func GenerateSchedule(p *plan.PaymentPlan, anchor time.Time) ([]Installment, error) {
	if p.InstallmentsCount <= 0 {
		return nil, fault.Newf(fault.KindValidation, "plan %s has no installments to schedule", p.PlanID)
	}
	if p.MonthlyAmount.IsNegative() {
		return nil, fault.Newf(fault.KindValidation, "plan %s has a negative monthly amount", p.PlanID)
	}

	out := make([]Installment, 0, p.InstallmentsCount)
	for i := 1; i <= p.InstallmentsCount; i++ {
		out = append(out, Installment{
			InstallmentID:   id.NewID32(),
			Seq:             i,
			DueDate:         clock.AddMonths(anchor, i-1),
			Amount:          p.MonthlyAmount,
			LateFee:         decimal.Zero,
			PaidAmount:      decimal.Zero,
			RemainingAmount: p.MonthlyAmount,
			Status:          StatusPending,
		})
	}
	return out, nil
}
