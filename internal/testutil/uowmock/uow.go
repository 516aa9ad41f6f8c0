package uowmock

import (
	"context"
	"errors"

	"edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinInstallmentTxFn func(ctx context.Context, installmentID string, fn func(r uow.Repos, inst *installment.Installment) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinInstallmentTx(fn func(context.Context, string, func(uow.Repos, *installment.Installment) error) error) *UoW {
	m.WithinInstallmentTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

// Passthrough wires WithinTx to call fn directly with the given repos, the
// way most usecase tests want a "transaction" to behave.
func Passthrough(repos uow.Repos) *UoW {
	return New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		return fn(repos)
	})
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinInstallmentTx(ctx context.Context, installmentID string, fn func(r uow.Repos, inst *installment.Installment) error) error {
	if m.WithinInstallmentTxFn != nil {
		return m.WithinInstallmentTxFn(ctx, installmentID, fn)
	}
	return errUnimplemented
}
