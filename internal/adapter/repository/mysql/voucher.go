package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	voucherDomain "edupay-backend/internal/domain/voucher"
)

type VoucherRepository struct{ db *gorm.DB }

func NewVoucherRepository(db *gorm.DB) *VoucherRepository { return &VoucherRepository{db: db} }

func (r *VoucherRepository) Create(ctx context.Context, v *voucherDomain.Voucher) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VoucherRepository) Save(ctx context.Context, v *voucherDomain.Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VoucherRepository) GetByVoucherID(ctx context.Context, voucherID string) (*voucherDomain.Voucher, error) {
	var out voucherDomain.Voucher
	res := r.db.WithContext(ctx).Where("voucher_id = ?", voucherID).First(&out)
	return &out, translate(res.Error, voucherDomain.ErrNotFound)
}

func (r *VoucherRepository) GetByVoucherIDForUpdate(ctx context.Context, voucherID string) (*voucherDomain.Voucher, error) {
	var out voucherDomain.Voucher
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("voucher_id = ?", voucherID).
		First(&out)
	return &out, translate(res.Error, voucherDomain.ErrNotFound)
}

func (r *VoucherRepository) GetPendingByInstallmentID(ctx context.Context, installmentID uint64) (*voucherDomain.Voucher, error) {
	var out voucherDomain.Voucher
	res := r.db.WithContext(ctx).
		Where("installment_id = ? AND status = ?", installmentID, voucherDomain.StatusPending).
		First(&out)
	return &out, translate(res.Error, voucherDomain.ErrNotFound)
}

func (r *VoucherRepository) ListByInstallmentID(ctx context.Context, installmentID uint64) ([]voucherDomain.Voucher, error) {
	var out []voucherDomain.Voucher
	res := r.db.WithContext(ctx).
		Where("installment_id = ?", installmentID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
