package plan

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	domainPlan "edupay-backend/internal/domain/plan"
	"edupay-backend/internal/domain/uow"
	"edupay-backend/pkg/fault"
	"edupay-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *logrus.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *logrus.Logger) *Usecase {
	return &Usecase{uow: tx, log: log}
}

type CreateInput struct {
	Name              string
	InstallmentsCount int
	MonthlyAmount     decimal.Decimal
	TotalAmount       decimal.Decimal
	GraceDays         int
	LateFeeRate       decimal.Decimal
	Role              actor.Role
}

type PlanDTO struct {
	PlanID            string          `json:"plan_id"`
	Name              string          `json:"name"`
	InstallmentsCount int             `json:"installments_count"`
	MonthlyAmount     decimal.Decimal `json:"monthly_amount"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	GraceDays         int             `json:"grace_days"`
	LateFeeRate       decimal.Decimal `json:"late_fee_rate"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*PlanDTO, error) {
	if in.Role != actor.RoleAdmin {
		return nil, fault.Newf(fault.KindAuthorization, "role %q may not manage payment plans", in.Role)
	}
	if in.Name == "" {
		return nil, fault.New(fault.KindValidation, "plan name is required")
	}
	if in.InstallmentsCount <= 0 {
		return nil, fault.New(fault.KindValidation, "installments count must be positive")
	}
	if in.MonthlyAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fault.New(fault.KindValidation, "monthly amount must be positive")
	}
	if in.GraceDays < 0 {
		return nil, fault.New(fault.KindValidation, "grace days cannot be negative")
	}
	if in.LateFeeRate.IsNegative() {
		return nil, fault.New(fault.KindValidation, "late fee rate cannot be negative")
	}

	derived := in.MonthlyAmount.Mul(decimal.NewFromInt(int64(in.InstallmentsCount)))
	if in.TotalAmount.IsZero() {
		in.TotalAmount = derived
	} else if !in.TotalAmount.Equal(derived) {
		return nil, fault.Newf(fault.KindValidation, "total amount %s does not match %d x %s", in.TotalAmount, in.InstallmentsCount, in.MonthlyAmount)
	}

	p := &domainPlan.PaymentPlan{
		PlanID:            id.NewID32(),
		Name:              in.Name,
		InstallmentsCount: in.InstallmentsCount,
		MonthlyAmount:     in.MonthlyAmount,
		TotalAmount:       in.TotalAmount,
		GraceDays:         in.GraceDays,
		LateFeeRate:       in.LateFeeRate,
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Plans.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{"plan_id": p.PlanID, "name": p.Name}).Info("payment plan created")
	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, planID string) (*PlanDTO, error) {
	var dto *PlanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Plans.GetByPlanID(ctx, planID)
		if err != nil {
			return err
		}
		dto = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]PlanDTO, error) {
	var out []PlanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		plans, err := r.Plans.List(ctx)
		if err != nil {
			return err
		}
		out = make([]PlanDTO, 0, len(plans))
		for i := range plans {
			out = append(out, *toDTO(&plans[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(p *domainPlan.PaymentPlan) *PlanDTO {
	return &PlanDTO{
		PlanID:            p.PlanID,
		Name:              p.Name,
		InstallmentsCount: p.InstallmentsCount,
		MonthlyAmount:     p.MonthlyAmount,
		TotalAmount:       p.TotalAmount,
		GraceDays:         p.GraceDays,
		LateFeeRate:       p.LateFeeRate,
	}
}
