package enrollment

import (
	"github.com/shopspring/decimal"

	"edupay-backend/internal/domain/installment"
)

// Summary is the read-model rollup over an enrollment's installments. It is
// recomputed on every read and never stored, so it cannot drift from ledger
// state.
type Summary struct {
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
	// ProgressPct is 0..100 with 2 decimals, against the plan total.
	ProgressPct decimal.Decimal `json:"progress_pct"`
}

// Summarize rolls installments up against the plan total. Paid amounts count
// once an installment is paid or verified; provisional and verified money are
// both progress from the student's perspective.
func Summarize(planTotal decimal.Decimal, installments []installment.Installment) Summary {
	totalPaid := decimal.Zero
	for _, inst := range installments {
		switch inst.Status {
		case installment.StatusPaid, installment.StatusVerified:
			totalPaid = totalPaid.Add(inst.PaidAmount)
		}
	}

	pending := planTotal.Sub(totalPaid)
	if pending.IsNegative() {
		pending = decimal.Zero
	}

	progress := decimal.Zero
	if planTotal.IsPositive() {
		progress = totalPaid.Div(planTotal).Mul(decimal.NewFromInt(100)).Round(2)
		if progress.GreaterThan(decimal.NewFromInt(100)) {
			progress = decimal.NewFromInt(100)
		}
	}

	return Summary{TotalPaid: totalPaid, TotalPending: pending, ProgressPct: progress}
}
