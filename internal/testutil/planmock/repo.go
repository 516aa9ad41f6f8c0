package planmock

import (
	"context"

	domain "edupay-backend/internal/domain/plan"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, p *domain.PaymentPlan) error
	GetByPlanIDFn func(ctx context.Context, planID string) (*domain.PaymentPlan, error)
	GetByIDFn     func(ctx context.Context, id uint64) (*domain.PaymentPlan, error)
	ListFn        func(ctx context.Context) ([]domain.PaymentPlan, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.PaymentPlan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPlanID(ctx context.Context, planID string) (*domain.PaymentPlan, error) {
	if m.GetByPlanIDFn != nil {
		return m.GetByPlanIDFn(ctx, planID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.PaymentPlan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.PaymentPlan, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

// ChangeRepo is a function-backed mock that satisfies domain.ChangeRepository.
type ChangeRepo struct {
	AppendFn          func(ctx context.Context, c *domain.PlanChange) error
	ListByStudentIDFn func(ctx context.Context, studentID uint64) ([]domain.PlanChange, error)
}

func (m *ChangeRepo) Append(ctx context.Context, c *domain.PlanChange) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, c)
	}
	return nil
}

func (m *ChangeRepo) ListByStudentID(ctx context.Context, studentID uint64) ([]domain.PlanChange, error) {
	if m.ListByStudentIDFn != nil {
		return m.ListByStudentIDFn(ctx, studentID)
	}
	return nil, nil
}
