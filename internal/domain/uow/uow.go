package uow

import (
	"context"

	"edupay-backend/internal/domain/enrollment"
	"edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/plan"
	"edupay-backend/internal/domain/student"
	"edupay-backend/internal/domain/voucher"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Students     student.Repository
	Plans        plan.Repository
	PlanChanges  plan.ChangeRepository
	Enrollments  enrollment.Repository
	Installments installment.Repository
	Vouchers     voucher.Repository
}

// UnitOfWork maps every "one atomic unit" in the billing flows to a single
// database transaction. fn either commits whole or rolls back whole.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinInstallmentTx locks the installment row up-front so concurrent
	// payments and voucher flows on it serialize, then passes it in.
	WithinInstallmentTx(ctx context.Context, installmentID string, fn func(r Repos, inst *installment.Installment) error) error
}
