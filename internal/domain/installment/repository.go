package installment

import "context"

type Repository interface {
	// CreateBatch persists a full schedule. Must run inside the transaction
	// that creates the owning enrollment; a failed draft rolls back the batch.
	CreateBatch(ctx context.Context, batch []Installment) error
	GetByInstallmentID(ctx context.Context, installmentID string) (*Installment, error)
	// GetByIDForUpdate locks by internal numeric ID (voucher FK path).
	GetByIDForUpdate(ctx context.Context, id uint64) (*Installment, error)
	// GetByInstallmentIDForUpdate locks the row so concurrent payments on the
	// same installment serialize.
	GetByInstallmentIDForUpdate(ctx context.Context, installmentID string) (*Installment, error)
	ListByEnrollmentID(ctx context.Context, enrollmentID uint64) ([]Installment, error)
	Save(ctx context.Context, i *Installment) error
}
