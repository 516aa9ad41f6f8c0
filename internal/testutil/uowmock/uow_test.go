package uowmock

import (
	"context"
	"errors"
	"testing"

	"edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/uow"
	"edupay-backend/internal/testutil/installmentmock"
	"edupay-backend/internal/testutil/studentmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	students := &studentmock.Repo{}
	insts := &installmentmock.Repo{}
	repos := uow.Repos{Students: students, Installments: insts}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Students != students || r.Installments != insts {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	sentinel := errors.New("boom")

	m := &UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error {
			return sentinel
		},
	}
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	if err := m.WithinInstallmentTx(ctx, "x", func(uow.Repos, *installment.Installment) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinInstallmentTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_WithinInstallmentTx_Happy(t *testing.T) {
	ctx := context.Background()

	insts := &installmentmock.Repo{}
	repos := uow.Repos{Installments: insts}
	locked := &installment.Installment{ID: 7, InstallmentID: "abc"}

	innerCalled := false
	m := &UoW{
		WithinInstallmentTxFn: func(gotCtx context.Context, id string, fn func(r uow.Repos, inst *installment.Installment) error) error {
			if id != "abc" {
				t.Fatalf("WithinInstallmentTx: id mismatch, got %s", id)
			}
			return fn(repos, locked)
		},
	}

	err := m.WithinInstallmentTx(ctx, "abc", func(r uow.Repos, inst *installment.Installment) error {
		innerCalled = true
		if inst != locked {
			t.Fatalf("WithinInstallmentTx: installment not forwarded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinInstallmentTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinInstallmentTx: inner fn not called")
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	if m.WithinTxFn != nil || m.WithinInstallmentTxFn != nil {
		t.Fatalf("New should start with nil funcs")
	}

	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinInstallmentTx(func(context.Context, string, func(uow.Repos, *installment.Installment) error) error { return nil })

	if m.WithinTxFn == nil || m.WithinInstallmentTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}

	m.Reset()
	if m.WithinTxFn != nil || m.WithinInstallmentTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
