package installment

import (
	"time"

	"github.com/shopspring/decimal"

	"edupay-backend/pkg/fault"
)

// ApplyResult reports how an incoming payment landed on an installment.
type ApplyResult struct {
	Accepted bool            `json:"accepted"`
	Applied  decimal.Decimal `json:"applied"`
	// Overflow is the excess beyond what the installment owed. Disposition
	// (refund vs. carrying to the next installment) is the caller's decision;
	// it is never auto-applied here.
	Overflow decimal.Decimal `json:"overflow"`
}

// Apply records an incoming payment against an open installment. The caller
// must hold row-level exclusivity on the installment for the duration: two
// concurrent payments must serialize, never interleave their read-modify-write.
//
// A payment that covers the full remaining obligation settles the installment
// (status paid, awaiting verification); a smaller one accumulates, leaving the
// installment pending — partially paid is not paid.
func Apply(inst *Installment, incoming decimal.Decimal, today time.Time) (ApplyResult, error) {
	if incoming.LessThanOrEqual(decimal.Zero) {
		return ApplyResult{}, fault.Newf(fault.KindValidation, "payment amount must be positive, got %s", incoming)
	}
	if !inst.Open() {
		return ApplyResult{}, fault.Newf(fault.KindConflict, "installment %s is %s and no longer payable", inst.InstallmentID, inst.Status)
	}

	owed := inst.TotalDue().Sub(inst.PaidAmount)
	if incoming.GreaterThanOrEqual(owed) {
		inst.PaidAmount = inst.TotalDue()
		inst.RemainingAmount = decimal.Zero
		inst.PaymentType = PaymentTypeFull
		inst.Status = StatusPaid
		paid := today
		inst.PaidDate = &paid
		if err := inst.CheckConservation(); err != nil {
			return ApplyResult{}, err
		}
		return ApplyResult{Accepted: true, Applied: owed, Overflow: incoming.Sub(owed)}, nil
	}

	if inst.PaidAmount.IsPositive() {
		inst.PaymentType = PaymentTypeCombined
	} else {
		inst.PaymentType = PaymentTypePartial
	}
	inst.PaidAmount = inst.PaidAmount.Add(incoming)
	inst.RemainingAmount = inst.TotalDue().Sub(inst.PaidAmount)
	if err := inst.CheckConservation(); err != nil {
		return ApplyResult{}, err
	}
	return ApplyResult{Accepted: true, Applied: incoming, Overflow: decimal.Zero}, nil
}
