package voucher

import "context"

type Repository interface {
	Create(ctx context.Context, v *Voucher) error
	GetByVoucherID(ctx context.Context, voucherID string) (*Voucher, error)
	// GetByVoucherIDForUpdate locks the row so two reviewers cannot both
	// observe pending.
	GetByVoucherIDForUpdate(ctx context.Context, voucherID string) (*Voucher, error)
	// GetPendingByInstallmentID returns the one voucher awaiting review, if any.
	GetPendingByInstallmentID(ctx context.Context, installmentID uint64) (*Voucher, error)
	ListByInstallmentID(ctx context.Context, installmentID uint64) ([]Voucher, error)
	Save(ctx context.Context, v *Voucher) error
}
