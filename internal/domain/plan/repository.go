package plan

import "context"

type Repository interface {
	Create(ctx context.Context, p *PaymentPlan) error
	GetByPlanID(ctx context.Context, planID string) (*PaymentPlan, error)
	GetByID(ctx context.Context, id uint64) (*PaymentPlan, error)
	List(ctx context.Context) ([]PaymentPlan, error)
}

// ChangeRepository is append-only: audit rows are never updated or deleted.
type ChangeRepository interface {
	Append(ctx context.Context, c *PlanChange) error
	ListByStudentID(ctx context.Context, studentID uint64) ([]PlanChange, error)
}
