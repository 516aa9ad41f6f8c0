package mysql

import (
	"context"

	"gorm.io/gorm"

	"edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func bind(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Students:     &StudentRepository{db: tx},
		Plans:        &PlanRepository{db: tx},
		PlanChanges:  &PlanChangeRepository{db: tx},
		Enrollments:  &EnrollmentRepository{db: tx},
		Installments: &InstallmentRepository{db: tx},
		Vouchers:     &VoucherRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(bind(tx))
	})
}

func (u *GormUoW) WithinInstallmentTx(ctx context.Context, installmentID string, fn func(r uow.Repos, inst *installment.Installment) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := bind(tx)
		// lock the installment row up-front so concurrent money movements
		// serialize on it
		inst, err := r.Installments.GetByInstallmentIDForUpdate(ctx, installmentID)
		if err != nil {
			return err
		}
		return fn(r, inst)
	})
}
