package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	installmentDomain "edupay-backend/internal/domain/installment"
)

type InstallmentRepository struct{ db *gorm.DB }

func NewInstallmentRepository(db *gorm.DB) *InstallmentRepository {
	return &InstallmentRepository{db: db}
}

// CreateBatch inserts the whole schedule in one statement; inside the caller's
// transaction a failed draft rolls back the batch.
func (r *InstallmentRepository) CreateBatch(ctx context.Context, batch []installmentDomain.Installment) error {
	if len(batch) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&batch).Error
}

func (r *InstallmentRepository) Save(ctx context.Context, i *installmentDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InstallmentRepository) GetByInstallmentID(ctx context.Context, installmentID string) (*installmentDomain.Installment, error) {
	var out installmentDomain.Installment
	res := r.db.WithContext(ctx).Where("installment_id = ?", installmentID).First(&out)
	return &out, translate(res.Error, installmentDomain.ErrNotFound)
}

func (r *InstallmentRepository) GetByInstallmentIDForUpdate(ctx context.Context, installmentID string) (*installmentDomain.Installment, error) {
	var out installmentDomain.Installment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("installment_id = ?", installmentID).
		First(&out)
	return &out, translate(res.Error, installmentDomain.ErrNotFound)
}

func (r *InstallmentRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*installmentDomain.Installment, error) {
	var out installmentDomain.Installment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out, id)
	return &out, translate(res.Error, installmentDomain.ErrNotFound)
}

func (r *InstallmentRepository) ListByEnrollmentID(ctx context.Context, enrollmentID uint64) ([]installmentDomain.Installment, error) {
	var out []installmentDomain.Installment
	res := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("seq ASC, id ASC").
		Find(&out)
	return out, res.Error
}
