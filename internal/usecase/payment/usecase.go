package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	domainInstallment "edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/uow"
	"edupay-backend/pkg/clock"
	"edupay-backend/pkg/fault"
)

// Usecase covers the cashier's direct payment entry, bypassing the voucher
// workflow.
type Usecase struct {
	uow uow.UnitOfWork
	clk clock.Clock
	log *logrus.Logger
}

func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, log *logrus.Logger) *Usecase {
	return &Usecase{uow: tx, clk: clk, log: log}
}

type ApplyInput struct {
	InstallmentID string
	Amount        decimal.Decimal
	Role          actor.Role
	ActorID       string
}

type ApplyDTO struct {
	Result      domainInstallment.ApplyResult `json:"result"`
	Installment InstallmentState              `json:"installment"`
}

type InstallmentState struct {
	InstallmentID   string          `json:"installment_id"`
	Seq             int             `json:"seq"`
	Amount          decimal.Decimal `json:"amount"`
	LateFee         decimal.Decimal `json:"late_fee"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	PaymentType     string          `json:"payment_type,omitempty"`
	Status          string          `json:"status"`
}

// ApplyManual serializes on the installment row lock; the fee is repriced
// first so the payment lands on today's total due, then the ledger applies it.
// Overflow is reported back for out-of-band refund, never rolled forward.
func (u *Usecase) ApplyManual(ctx context.Context, in ApplyInput) (*ApplyDTO, error) {
	if in.Role != actor.RoleCashier {
		return nil, fault.Newf(fault.KindAuthorization, "role %q may not record manual payments", in.Role)
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fault.Newf(fault.KindValidation, "payment amount must be positive, got %s", in.Amount)
	}

	var dto *ApplyDTO
	err := u.uow.WithinInstallmentTx(ctx, in.InstallmentID, func(r uow.Repos, inst *domainInstallment.Installment) error {
		e, err := r.Enrollments.GetByID(ctx, inst.EnrollmentID)
		if err != nil {
			return err
		}
		p, err := r.Plans.GetByID(ctx, e.PlanID)
		if err != nil {
			return err
		}

		today := u.clk.Today()
		domainInstallment.Reprice(inst, p.GraceDays, p.LateFeeRate, today)

		res, err := domainInstallment.Apply(inst, in.Amount, today)
		if err != nil {
			return err
		}
		if err := r.Installments.Save(ctx, inst); err != nil {
			return err
		}
		dto = &ApplyDTO{
			Result: res,
			Installment: InstallmentState{
				InstallmentID:   inst.InstallmentID,
				Seq:             inst.Seq,
				Amount:          inst.Amount,
				LateFee:         inst.LateFee,
				PaidAmount:      inst.PaidAmount,
				RemainingAmount: inst.RemainingAmount,
				PaymentType:     string(inst.PaymentType),
				Status:          string(inst.Status),
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"installment_id": in.InstallmentID,
		"amount":         in.Amount.String(),
		"overflow":       dto.Result.Overflow.String(),
		"cashier":        in.ActorID,
	}).Info("manual payment applied")
	return dto, nil
}
