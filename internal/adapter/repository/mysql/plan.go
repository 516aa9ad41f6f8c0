package mysql

import (
	"context"

	"gorm.io/gorm"

	planDomain "edupay-backend/internal/domain/plan"
)

type PlanRepository struct{ db *gorm.DB }

func NewPlanRepository(db *gorm.DB) *PlanRepository { return &PlanRepository{db: db} }

func (r *PlanRepository) Create(ctx context.Context, p *planDomain.PaymentPlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PlanRepository) GetByPlanID(ctx context.Context, planID string) (*planDomain.PaymentPlan, error) {
	var out planDomain.PaymentPlan
	res := r.db.WithContext(ctx).Where("plan_id = ?", planID).First(&out)
	return &out, translate(res.Error, planDomain.ErrNotFound)
}

func (r *PlanRepository) GetByID(ctx context.Context, id uint64) (*planDomain.PaymentPlan, error) {
	var out planDomain.PaymentPlan
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, translate(res.Error, planDomain.ErrNotFound)
}

func (r *PlanRepository) List(ctx context.Context) ([]planDomain.PaymentPlan, error) {
	var out []planDomain.PaymentPlan
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

// PlanChangeRepository is append-only; there is no update or delete path.
type PlanChangeRepository struct{ db *gorm.DB }

func NewPlanChangeRepository(db *gorm.DB) *PlanChangeRepository {
	return &PlanChangeRepository{db: db}
}

func (r *PlanChangeRepository) Append(ctx context.Context, c *planDomain.PlanChange) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PlanChangeRepository) ListByStudentID(ctx context.Context, studentID uint64) ([]planDomain.PlanChange, error) {
	var out []planDomain.PlanChange
	res := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
