package installment

import (
	"time"

	"github.com/shopspring/decimal"

	"edupay-backend/pkg/clock"
)

var thirty = decimal.NewFromInt(30)
var hundred = decimal.NewFromInt(100)

// GraceDeadline is the last day on which no late fee accrues.
func GraceDeadline(dueDate time.Time, graceDays int) time.Time {
	return dueDate.AddDate(0, 0, graceDays)
}

// IsOverdue reports whether today has passed the grace deadline.
func IsOverdue(dueDate time.Time, graceDays int, today time.Time) bool {
	return today.After(GraceDeadline(dueDate, graceDays))
}

// DaysLate counts days past the grace deadline, never negative.
func DaysLate(dueDate time.Time, graceDays int, today time.Time) int {
	d := clock.DaysBetween(GraceDeadline(dueDate, graceDays), today)
	if d < 0 {
		return 0
	}
	return d
}

// AccrueLateFee recomputes the fee from scratch: the monthly rate (ratePct% of
// the base amount) prorated over a 30-day month, times days late, rounded to 2
// decimals. Inside the grace window the fee is zero even when a previously
// stored fee was non-zero, so a plan edit or clock rollback zeroes it out.
// Recomputing is idempotent; the fee is never incremented.
//
// Only meaningful for pending/overdue installments; callers must not invoke it
// for paid/verified/cancelled ones.
func AccrueLateFee(dueDate time.Time, graceDays int, ratePct, baseAmount decimal.Decimal, today time.Time) decimal.Decimal {
	days := DaysLate(dueDate, graceDays, today)
	if days == 0 {
		return decimal.Zero
	}
	dailyRate := baseAmount.Mul(ratePct).Div(hundred).Div(thirty)
	return dailyRate.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// Reprice refreshes the stored fee and status of an open installment for the
// given plan terms. No-op for closed installments. Idempotent, so it is safe
// to run on every read.
func Reprice(inst *Installment, graceDays int, ratePct decimal.Decimal, today time.Time) bool {
	if !inst.Open() {
		return false
	}
	fee := AccrueLateFee(inst.DueDate, graceDays, ratePct, inst.Amount, today)
	status := StatusPending
	if IsOverdue(inst.DueDate, graceDays, today) {
		status = StatusOverdue
	}
	changed := !inst.LateFee.Equal(fee) || inst.Status != status
	inst.LateFee = fee
	inst.Status = status
	remaining := inst.TotalDue().Sub(inst.PaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	changed = changed || !inst.RemainingAmount.Equal(remaining)
	inst.RemainingAmount = remaining
	return changed
}
