package vouchermock

import (
	"context"

	domain "edupay-backend/internal/domain/voucher"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, v *domain.Voucher) error
	GetByVoucherIDFn            func(ctx context.Context, voucherID string) (*domain.Voucher, error)
	GetByVoucherIDForUpdateFn   func(ctx context.Context, voucherID string) (*domain.Voucher, error)
	GetPendingByInstallmentIDFn func(ctx context.Context, installmentID uint64) (*domain.Voucher, error)
	ListByInstallmentIDFn       func(ctx context.Context, installmentID uint64) ([]domain.Voucher, error)
	SaveFn                      func(ctx context.Context, v *domain.Voucher) error
}

func (m *Repo) Create(ctx context.Context, v *domain.Voucher) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetByVoucherID(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	if m.GetByVoucherIDFn != nil {
		return m.GetByVoucherIDFn(ctx, voucherID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByVoucherIDForUpdate(ctx context.Context, voucherID string) (*domain.Voucher, error) {
	if m.GetByVoucherIDForUpdateFn != nil {
		return m.GetByVoucherIDForUpdateFn(ctx, voucherID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetPendingByInstallmentID(ctx context.Context, installmentID uint64) (*domain.Voucher, error) {
	if m.GetPendingByInstallmentIDFn != nil {
		return m.GetPendingByInstallmentIDFn(ctx, installmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByInstallmentID(ctx context.Context, installmentID uint64) ([]domain.Voucher, error) {
	if m.ListByInstallmentIDFn != nil {
		return m.ListByInstallmentIDFn(ctx, installmentID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, v *domain.Voucher) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, v)
	}
	return nil
}
