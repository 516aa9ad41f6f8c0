package voucher

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	"edupay-backend/internal/domain/enrollment"
	"edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/plan"
	"edupay-backend/internal/domain/uow"
	"edupay-backend/internal/domain/voucher"
	"edupay-backend/internal/testutil/enrollmentmock"
	"edupay-backend/internal/testutil/installmentmock"
	"edupay-backend/internal/testutil/planmock"
	"edupay-backend/internal/testutil/uowmock"
	"edupay-backend/internal/testutil/vouchermock"
	"edupay-backend/pkg/clock"
	"edupay-backend/pkg/fault"
)

type fakeBlob struct {
	storeErr error
	lastName string
}

func (f *fakeBlob) Store(_ context.Context, data []byte, name string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.lastName = name
	return "ref-" + name, nil
}

func (f *fakeBlob) URLFor(ref string) string { return "/files/" + ref }

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openInstallment() *installment.Installment {
	return &installment.Installment{
		ID:              41,
		InstallmentID:   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		EnrollmentID:    9,
		Seq:             2,
		DueDate:         clock.Date(2026, 3, 15),
		Amount:          dec("100.00"),
		LateFee:         decimal.Zero,
		PaidAmount:      decimal.Zero,
		RemainingAmount: dec("100.00"),
		Status:          installment.StatusPending,
	}
}

func TestUsecase_Submit(t *testing.T) {
	clk := clock.At(2026, 3, 10)
	baseInput := func() SubmitInput {
		return SubmitInput{
			InstallmentID:  "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			File:           []byte("proof"),
			FileName:       "receipt.jpg",
			DeclaredAmount: dec("100.00"),
			PaymentDate:    clock.Date(2026, 3, 9),
			Method:         "bank_transfer",
			Role:           actor.RoleProspect,
			UploadedBy:     "student-1",
		}
	}

	noPending := func(context.Context, uint64) (*voucher.Voucher, error) {
		return nil, voucher.ErrNotFound
	}

	t.Run("happy path flips installment to paid", func(t *testing.T) {
		inst := openInstallment()
		var createdVoucher *voucher.Voucher
		var savedInst *installment.Installment
		vouchers := &vouchermock.Repo{
			GetPendingByInstallmentIDFn: noPending,
			CreateFn: func(_ context.Context, v *voucher.Voucher) error {
				createdVoucher = v
				return nil
			},
		}
		insts := &installmentmock.Repo{
			SaveFn: func(_ context.Context, i *installment.Installment) error {
				savedInst = i
				return nil
			},
		}
		tx := uowmock.New().WithWithinInstallmentTx(
			func(ctx context.Context, id string, fn func(uow.Repos, *installment.Installment) error) error {
				return fn(uow.Repos{Vouchers: vouchers, Installments: insts}, inst)
			})

		uc := NewUsecase(tx, &fakeBlob{}, clk, quietLog())
		dto, err := uc.Submit(context.Background(), baseInput())
		if err != nil {
			t.Fatalf("Submit: unexpected err: %v", err)
		}
		if createdVoucher == nil || createdVoucher.Status != voucher.StatusPending {
			t.Fatalf("voucher not created pending: %+v", createdVoucher)
		}
		if createdVoucher.InstallmentID != 41 {
			t.Fatalf("voucher bound to wrong installment: %d", createdVoucher.InstallmentID)
		}
		if createdVoucher.FileURL != "/files/ref-receipt.jpg" {
			t.Fatalf("file url mismatch: %s", createdVoucher.FileURL)
		}
		if savedInst == nil || savedInst.Status != installment.StatusPaid {
			t.Fatalf("installment not flipped to paid: %+v", savedInst)
		}
		if !savedInst.PaidAmount.Equal(dec("100.00")) || !savedInst.RemainingAmount.IsZero() {
			t.Fatalf("ledger state wrong: paid=%s remaining=%s", savedInst.PaidAmount, savedInst.RemainingAmount)
		}
		if dto.Status != string(voucher.StatusPending) {
			t.Fatalf("dto status mismatch: %s", dto.Status)
		}
	})

	t.Run("under-declared amount leaves remaining positive", func(t *testing.T) {
		inst := openInstallment()
		vouchers := &vouchermock.Repo{GetPendingByInstallmentIDFn: noPending}
		tx := uowmock.New().WithWithinInstallmentTx(
			func(ctx context.Context, id string, fn func(uow.Repos, *installment.Installment) error) error {
				return fn(uow.Repos{Vouchers: vouchers, Installments: &installmentmock.Repo{}}, inst)
			})

		in := baseInput()
		in.DeclaredAmount = dec("60.00")
		uc := NewUsecase(tx, &fakeBlob{}, clk, quietLog())
		if _, err := uc.Submit(context.Background(), in); err != nil {
			t.Fatalf("Submit: unexpected err: %v", err)
		}
		if !inst.RemainingAmount.Equal(dec("40.00")) {
			t.Fatalf("remaining: want 40.00, got %s", inst.RemainingAmount)
		}
		if inst.Status != installment.StatusPaid {
			t.Fatalf("status: want paid, got %s", inst.Status)
		}
	})

	t.Run("verified installment rejects submission", func(t *testing.T) {
		inst := openInstallment()
		inst.Status = installment.StatusVerified
		tx := uowmock.New().WithWithinInstallmentTx(
			func(ctx context.Context, id string, fn func(uow.Repos, *installment.Installment) error) error {
				return fn(uow.Repos{Vouchers: &vouchermock.Repo{}, Installments: &installmentmock.Repo{}}, inst)
			})

		uc := NewUsecase(tx, &fakeBlob{}, clk, quietLog())
		_, err := uc.Submit(context.Background(), baseInput())
		if !fault.IsConflict(err) {
			t.Fatalf("want conflict, got %v", err)
		}
	})

	t.Run("second pending voucher is refused", func(t *testing.T) {
		inst := openInstallment()
		vouchers := &vouchermock.Repo{
			GetPendingByInstallmentIDFn: func(context.Context, uint64) (*voucher.Voucher, error) {
				return &voucher.Voucher{ID: 1, Status: voucher.StatusPending}, nil
			},
		}
		tx := uowmock.New().WithWithinInstallmentTx(
			func(ctx context.Context, id string, fn func(uow.Repos, *installment.Installment) error) error {
				return fn(uow.Repos{Vouchers: vouchers, Installments: &installmentmock.Repo{}}, inst)
			})

		uc := NewUsecase(tx, &fakeBlob{}, clk, quietLog())
		_, err := uc.Submit(context.Background(), baseInput())
		if !errors.Is(err, voucher.ErrPendingExists) {
			t.Fatalf("want ErrPendingExists, got %v", err)
		}
	})

	t.Run("only the prospect or a sales advisor may submit", func(t *testing.T) {
		blobs := &fakeBlob{storeErr: errors.New("must not be reached")}
		uc := NewUsecase(uowmock.New(), blobs, clk, quietLog())

		for _, role := range []actor.Role{actor.RoleCashier, actor.RoleAdmin, actor.Role("")} {
			in := baseInput()
			in.Role = role
			if _, err := uc.Submit(context.Background(), in); !fault.IsAuthorization(err) {
				t.Fatalf("role %q: want authorization error, got %v", role, err)
			}
		}
	})

	t.Run("a sales advisor may submit on behalf of the prospect", func(t *testing.T) {
		inst := openInstallment()
		vouchers := &vouchermock.Repo{GetPendingByInstallmentIDFn: noPending}
		tx := uowmock.New().WithWithinInstallmentTx(
			func(ctx context.Context, id string, fn func(uow.Repos, *installment.Installment) error) error {
				return fn(uow.Repos{Vouchers: vouchers, Installments: &installmentmock.Repo{}}, inst)
			})

		in := baseInput()
		in.Role = actor.RoleSalesAdvisor
		in.UploadedBy = "advisor-1"
		uc := NewUsecase(tx, &fakeBlob{}, clk, quietLog())
		dto, err := uc.Submit(context.Background(), in)
		if err != nil {
			t.Fatalf("Submit: unexpected err: %v", err)
		}
		if dto.UploadedBy != "advisor-1" {
			t.Fatalf("uploader: want advisor-1, got %s", dto.UploadedBy)
		}
	})

	t.Run("input validation happens before the blob write", func(t *testing.T) {
		blobs := &fakeBlob{storeErr: errors.New("must not be reached")}
		uc := NewUsecase(uowmock.New(), blobs, clk, quietLog())

		cases := []struct {
			name   string
			mutate func(*SubmitInput)
		}{
			{"zero amount", func(in *SubmitInput) { in.DeclaredAmount = decimal.Zero }},
			{"empty file", func(in *SubmitInput) { in.File = nil }},
			{"missing method", func(in *SubmitInput) { in.Method = "" }},
			{"future payment date", func(in *SubmitInput) { in.PaymentDate = clock.Date(2026, 3, 11) }},
		}
		for _, tc := range cases {
			in := baseInput()
			tc.mutate(&in)
			if _, err := uc.Submit(context.Background(), in); !fault.IsValidation(err) {
				t.Fatalf("%s: want validation error, got %v", tc.name, err)
			}
		}
	})

	t.Run("blob failure aborts before any transaction", func(t *testing.T) {
		blobs := &fakeBlob{storeErr: errors.New("disk full")}
		uc := NewUsecase(uowmock.New(), blobs, clk, quietLog())
		if _, err := uc.Submit(context.Background(), baseInput()); err == nil {
			t.Fatalf("want error from blob store")
		}
	})
}

func TestUsecase_Review(t *testing.T) {
	clk := clock.At(2026, 4, 1)

	pendingVoucher := func() *voucher.Voucher {
		return &voucher.Voucher{
			ID:             3,
			VoucherID:      "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			InstallmentID:  41,
			DeclaredAmount: dec("100.00"),
			Status:         voucher.StatusPending,
			UploadedBy:     "student-1",
		}
	}
	paidInstallment := func() *installment.Installment {
		paid := clock.Date(2026, 3, 9)
		i := openInstallment()
		i.Status = installment.StatusPaid
		i.PaidAmount = dec("100.00")
		i.RemainingAmount = decimal.Zero
		i.PaidDate = &paid
		return i
	}

	repos := func(v *voucher.Voucher, inst *installment.Installment) uow.Repos {
		return uow.Repos{
			Vouchers: &vouchermock.Repo{
				GetByVoucherIDFn: func(context.Context, string) (*voucher.Voucher, error) {
					return v, nil
				},
				GetByVoucherIDForUpdateFn: func(context.Context, string) (*voucher.Voucher, error) {
					return v, nil
				},
			},
			Installments: &installmentmock.Repo{
				GetByIDForUpdateFn: func(context.Context, uint64) (*installment.Installment, error) {
					return inst, nil
				},
			},
			Enrollments: &enrollmentmock.Repo{
				GetByIDFn: func(context.Context, uint64) (*enrollment.Enrollment, error) {
					return &enrollment.Enrollment{ID: 9, PlanID: 2}, nil
				},
			},
			Plans: &planmock.Repo{
				GetByIDFn: func(context.Context, uint64) (*plan.PaymentPlan, error) {
					return &plan.PaymentPlan{ID: 2, GraceDays: 5, LateFeeRate: dec("5.00")}, nil
				},
			},
		}
	}
	passthrough := func(r uow.Repos) *uowmock.UoW {
		return uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		})
	}

	t.Run("approve verifies the installment", func(t *testing.T) {
		v := pendingVoucher()
		inst := paidInstallment()
		uc := NewUsecase(passthrough(repos(v, inst)), &fakeBlob{}, clk, quietLog())

		res, err := uc.Review(context.Background(), ReviewInput{
			VoucherID:  v.VoucherID,
			Decision:   voucher.DecisionApprove,
			ReviewerID: "cashier-1",
		})
		if err != nil {
			t.Fatalf("Review: unexpected err: %v", err)
		}
		if v.Status != voucher.StatusApproved || v.ReviewedBy != "cashier-1" || v.ReviewedAt == nil {
			t.Fatalf("voucher not settled: %+v", v)
		}
		if inst.Status != installment.StatusVerified || inst.VerifiedBy != "cashier-1" {
			t.Fatalf("installment not verified: %+v", inst)
		}
		if res.InstallmentStatus != string(installment.StatusVerified) {
			t.Fatalf("result status mismatch: %s", res.InstallmentStatus)
		}
	})

	t.Run("reject restores the installment as if never submitted", func(t *testing.T) {
		v := pendingVoucher()
		inst := paidInstallment()
		uc := NewUsecase(passthrough(repos(v, inst)), &fakeBlob{}, clk, quietLog())

		_, err := uc.Review(context.Background(), ReviewInput{
			VoucherID:  v.VoucherID,
			Decision:   voucher.DecisionReject,
			Reason:     "amount does not match the slip",
			ReviewerID: "cashier-1",
		})
		if err != nil {
			t.Fatalf("Review: unexpected err: %v", err)
		}
		if v.Status != voucher.StatusRejected || v.RejectReason == "" {
			t.Fatalf("voucher not rejected: %+v", v)
		}
		if !inst.PaidAmount.IsZero() || inst.PaidDate != nil || inst.PaymentType != "" {
			t.Fatalf("provisional payment not cleared: %+v", inst)
		}
		// due 2026-03-15, grace 5 → 12 days late on 2026-04-01 at 5%/30d of 100.00
		if inst.Status != installment.StatusOverdue {
			t.Fatalf("status: want overdue, got %s", inst.Status)
		}
		if !inst.LateFee.Equal(dec("2.00")) {
			t.Fatalf("late fee: want 2.00, got %s", inst.LateFee)
		}
		if !inst.RemainingAmount.Equal(dec("102.00")) {
			t.Fatalf("remaining: want 102.00, got %s", inst.RemainingAmount)
		}
	})

	t.Run("second review of the same voucher fails", func(t *testing.T) {
		v := pendingVoucher()
		v.Status = voucher.StatusApproved
		inst := paidInstallment()
		uc := NewUsecase(passthrough(repos(v, inst)), &fakeBlob{}, clk, quietLog())

		_, err := uc.Review(context.Background(), ReviewInput{
			VoucherID:  v.VoucherID,
			Decision:   voucher.DecisionReject,
			Reason:     "late double-check",
			ReviewerID: "cashier-2",
		})
		if !errors.Is(err, voucher.ErrAlreadyReviewed) {
			t.Fatalf("want ErrAlreadyReviewed, got %v", err)
		}
	})

	t.Run("reject without a reason is invalid", func(t *testing.T) {
		uc := NewUsecase(uowmock.New(), &fakeBlob{}, clk, quietLog())
		_, err := uc.Review(context.Background(), ReviewInput{
			VoucherID:  "x",
			Decision:   voucher.DecisionReject,
			ReviewerID: "cashier-1",
		})
		if !fault.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("unknown decision is invalid", func(t *testing.T) {
		uc := NewUsecase(uowmock.New(), &fakeBlob{}, clk, quietLog())
		_, err := uc.Review(context.Background(), ReviewInput{
			VoucherID:  "x",
			Decision:   voucher.Decision("escalate"),
			ReviewerID: "cashier-1",
		})
		if !fault.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})
}

// Review must acquire the installment row before the voucher row, the same
// order Submit uses, so the two flows cannot deadlock on one installment.
func TestUsecase_Review_LocksInstallmentBeforeVoucher(t *testing.T) {
	clk := clock.At(2026, 4, 1)
	v := &voucher.Voucher{
		VoucherID:      "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		InstallmentID:  41,
		DeclaredAmount: dec("100.00"),
		Status:         voucher.StatusPending,
	}
	inst := openInstallment()
	inst.Status = installment.StatusPaid

	var order []string
	repos := uow.Repos{
		Vouchers: &vouchermock.Repo{
			GetByVoucherIDFn: func(context.Context, string) (*voucher.Voucher, error) {
				order = append(order, "voucher read")
				return v, nil
			},
			GetByVoucherIDForUpdateFn: func(context.Context, string) (*voucher.Voucher, error) {
				order = append(order, "voucher lock")
				return v, nil
			},
		},
		Installments: &installmentmock.Repo{
			GetByIDForUpdateFn: func(context.Context, uint64) (*installment.Installment, error) {
				order = append(order, "installment lock")
				return inst, nil
			},
		},
	}
	tx := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		return fn(repos)
	})

	uc := NewUsecase(tx, &fakeBlob{}, clk, quietLog())
	if _, err := uc.Review(context.Background(), ReviewInput{
		VoucherID:  v.VoucherID,
		Decision:   voucher.DecisionApprove,
		ReviewerID: "cashier-1",
	}); err != nil {
		t.Fatalf("Review: unexpected err: %v", err)
	}

	want := []string{"voucher read", "installment lock", "voucher lock"}
	if len(order) != len(want) {
		t.Fatalf("acquisition sequence %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("acquisition sequence %v, want %v", order, want)
		}
	}
}

func TestUsecase_ListForInstallment(t *testing.T) {
	clk := clock.At(2026, 4, 1)
	inst := openInstallment()
	repos := uow.Repos{
		Installments: &installmentmock.Repo{
			GetByInstallmentIDFn: func(_ context.Context, id string) (*installment.Installment, error) {
				if id != inst.InstallmentID {
					return nil, installment.ErrNotFound
				}
				return inst, nil
			},
		},
		Vouchers: &vouchermock.Repo{
			ListByInstallmentIDFn: func(context.Context, uint64) ([]voucher.Voucher, error) {
				return []voucher.Voucher{
					{VoucherID: "cccccccccccccccccccccccccccccccc", Status: voucher.StatusRejected, RejectReason: "blurry slip"},
					{VoucherID: "dddddddddddddddddddddddddddddddd", Status: voucher.StatusPending},
				}, nil
			},
		},
	}
	tx := uowmock.New().WithWithinTx(func(ctx context.Context, fn func(uow.Repos) error) error {
		return fn(repos)
	})
	uc := NewUsecase(tx, &fakeBlob{}, clk, quietLog())

	dtos, err := uc.ListForInstallment(context.Background(), inst.InstallmentID)
	if err != nil {
		t.Fatalf("ListForInstallment: unexpected err: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("want 2 vouchers, got %d", len(dtos))
	}
	if dtos[0].Status != string(voucher.StatusRejected) || dtos[0].RejectReason != "blurry slip" {
		t.Fatalf("rejected history not kept: %+v", dtos[0])
	}
	if dtos[1].Status != string(voucher.StatusPending) {
		t.Fatalf("pending voucher missing: %+v", dtos[1])
	}
	if dtos[0].InstallmentID != inst.InstallmentID {
		t.Fatalf("installment id not resolved to the public id: %s", dtos[0].InstallmentID)
	}

	if _, err := uc.ListForInstallment(context.Background(), "ffffffffffffffffffffffffffffffff"); !fault.IsNotFound(err) {
		t.Fatalf("want not-found for unknown installment, got %v", err)
	}
}
