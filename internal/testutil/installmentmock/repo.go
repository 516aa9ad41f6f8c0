package installmentmock

import (
	"context"

	domain "edupay-backend/internal/domain/installment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateBatchFn                 func(ctx context.Context, batch []domain.Installment) error
	GetByInstallmentIDFn          func(ctx context.Context, installmentID string) (*domain.Installment, error)
	GetByIDForUpdateFn            func(ctx context.Context, id uint64) (*domain.Installment, error)
	GetByInstallmentIDForUpdateFn func(ctx context.Context, installmentID string) (*domain.Installment, error)
	ListByEnrollmentIDFn          func(ctx context.Context, enrollmentID uint64) ([]domain.Installment, error)
	SaveFn                        func(ctx context.Context, i *domain.Installment) error
}

func (m *Repo) CreateBatch(ctx context.Context, batch []domain.Installment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, batch)
	}
	return nil
}

func (m *Repo) GetByInstallmentID(ctx context.Context, installmentID string) (*domain.Installment, error) {
	if m.GetByInstallmentIDFn != nil {
		return m.GetByInstallmentIDFn(ctx, installmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Installment, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByInstallmentIDForUpdate(ctx context.Context, installmentID string) (*domain.Installment, error) {
	if m.GetByInstallmentIDForUpdateFn != nil {
		return m.GetByInstallmentIDForUpdateFn(ctx, installmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByEnrollmentID(ctx context.Context, enrollmentID uint64) ([]domain.Installment, error) {
	if m.ListByEnrollmentIDFn != nil {
		return m.ListByEnrollmentIDFn(ctx, enrollmentID)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, i *domain.Installment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}
