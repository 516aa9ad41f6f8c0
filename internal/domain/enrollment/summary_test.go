package enrollment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"edupay-backend/internal/domain/installment"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize_CountsPaidAndVerified(t *testing.T) {
	insts := []installment.Installment{
		{Status: installment.StatusVerified, PaidAmount: d("100.00")},
		{Status: installment.StatusPaid, PaidAmount: d("100.00")},
		{Status: installment.StatusPending, PaidAmount: d("40.00")}, // partial, not counted
	}

	s := Summarize(d("300.00"), insts)
	assert.True(t, s.TotalPaid.Equal(d("200.00")), "total paid = %s", s.TotalPaid)
	assert.True(t, s.TotalPending.Equal(d("100.00")))
	assert.True(t, s.ProgressPct.Equal(d("66.67")), "progress = %s", s.ProgressPct)
}

// One verified 100.00 installment of a 300.00 plan.
func TestSummarize_OneThirdProgress(t *testing.T) {
	s := Summarize(d("300.00"), []installment.Installment{
		{Status: installment.StatusVerified, PaidAmount: d("100.00")},
	})
	assert.True(t, s.TotalPaid.Equal(d("100.00")))
	assert.True(t, s.ProgressPct.Equal(d("33.33")))
}

func TestSummarize_ZeroTotalPlan(t *testing.T) {
	s := Summarize(decimal.Zero, nil)
	assert.True(t, s.TotalPaid.IsZero())
	assert.True(t, s.TotalPending.IsZero())
	assert.True(t, s.ProgressPct.IsZero())
}

func TestSummarize_ProgressCappedAt100(t *testing.T) {
	// late fees can push paid amounts past the plan total
	s := Summarize(d("100.00"), []installment.Installment{
		{Status: installment.StatusVerified, PaidAmount: d("105.83")},
	})
	assert.True(t, s.ProgressPct.Equal(d("100")), "progress = %s", s.ProgressPct)
	assert.True(t, s.TotalPending.IsZero())
}
