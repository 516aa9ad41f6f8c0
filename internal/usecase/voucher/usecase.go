package voucher

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	"edupay-backend/internal/domain/blob"
	domainInstallment "edupay-backend/internal/domain/installment"
	"edupay-backend/internal/domain/uow"
	domainVoucher "edupay-backend/internal/domain/voucher"
	"edupay-backend/pkg/clock"
	"edupay-backend/pkg/fault"
	"edupay-backend/pkg/id"
)

type Usecase struct {
	uow   uow.UnitOfWork
	blobs blob.Store
	clk   clock.Clock
	log   *logrus.Logger
}

func NewUsecase(tx uow.UnitOfWork, blobs blob.Store, clk clock.Clock, log *logrus.Logger) *Usecase {
	return &Usecase{uow: tx, blobs: blobs, clk: clk, log: log}
}

type SubmitInput struct {
	InstallmentID  string
	File           []byte
	FileName       string
	DeclaredAmount decimal.Decimal
	PaymentDate    time.Time
	Method         string
	Reference      string
	Role           actor.Role
	UploadedBy     string
}

type VoucherDTO struct {
	VoucherID      string          `json:"voucher_id"`
	InstallmentID  string          `json:"installment_id"`
	FileURL        string          `json:"file_url,omitempty"`
	DeclaredAmount decimal.Decimal `json:"declared_amount"`
	PaymentDate    time.Time       `json:"payment_date"`
	Method         string          `json:"method"`
	Reference      string          `json:"reference,omitempty"`
	Status         string          `json:"status"`
	UploadedBy     string          `json:"uploaded_by"`
	ReviewedBy     string          `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time      `json:"reviewed_at,omitempty"`
	RejectReason   string          `json:"reject_reason,omitempty"`
}

type ReviewInput struct {
	VoucherID  string
	Decision   domainVoucher.Decision
	Reason     string
	ReviewerID string
}

type ReviewResult struct {
	Voucher           VoucherDTO `json:"voucher"`
	InstallmentStatus string     `json:"installment_status"`
}

// Submit files a proof of payment against an open installment and
// provisionally flips the installment to paid, claimed but not yet verified.
// Only the prospect or a sales advisor acting on their behalf may file one.
// The blob write happens before the transaction; a blob failure aborts the
// submission, but a URL-resolution failure only leaves the URL empty.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*VoucherDTO, error) {
	if in.Role != actor.RoleProspect && in.Role != actor.RoleSalesAdvisor {
		return nil, fault.Newf(fault.KindAuthorization, "role %q may not submit vouchers", in.Role)
	}
	if in.DeclaredAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fault.New(fault.KindValidation, "declared amount must be positive")
	}
	if len(in.File) == 0 {
		return nil, fault.New(fault.KindValidation, "proof file is required")
	}
	if in.Method == "" {
		return nil, fault.New(fault.KindValidation, "payment method is required")
	}
	if in.PaymentDate.After(u.clk.Today()) {
		return nil, fault.New(fault.KindValidation, "payment date cannot be in the future")
	}

	ref, err := u.blobs.Store(ctx, in.File, in.FileName)
	if err != nil {
		return nil, fault.Wrap(fault.KindUnknown, "storing proof file", err)
	}

	var dto *VoucherDTO
	err = u.uow.WithinInstallmentTx(ctx, in.InstallmentID, func(r uow.Repos, inst *domainInstallment.Installment) error {
		if inst.Status == domainInstallment.StatusVerified || inst.Status == domainInstallment.StatusCancelled {
			return fault.Newf(fault.KindConflict, "cannot submit proof against a %s installment", inst.Status)
		}
		// One voucher awaiting review at a time.
		if _, err := r.Vouchers.GetPendingByInstallmentID(ctx, inst.ID); err == nil {
			return domainVoucher.ErrPendingExists
		} else if !fault.IsNotFound(err) {
			return err
		}

		v := &domainVoucher.Voucher{
			VoucherID:      id.NewID32(),
			InstallmentID:  inst.ID,
			FileRef:        ref,
			FileURL:        u.blobs.URLFor(ref),
			DeclaredAmount: in.DeclaredAmount,
			PaymentDate:    in.PaymentDate,
			Method:         in.Method,
			Reference:      in.Reference,
			Status:         domainVoucher.StatusPending,
			UploadedBy:     in.UploadedBy,
		}
		if err := r.Vouchers.Create(ctx, v); err != nil {
			return err
		}

		if inst.Open() {
			paid := in.PaymentDate
			inst.Status = domainInstallment.StatusPaid
			inst.PaidAmount = in.DeclaredAmount
			inst.PaidDate = &paid
			remaining := inst.TotalDue().Sub(inst.PaidAmount)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			inst.RemainingAmount = remaining
			if err := r.Installments.Save(ctx, inst); err != nil {
				return err
			}
		}

		dto = toDTO(v, inst.InstallmentID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"voucher_id":     dto.VoucherID,
		"installment_id": in.InstallmentID,
		"declared":       in.DeclaredAmount.String(),
	}).Info("voucher submitted")
	return dto, nil
}

// Review settles a pending voucher one way, exactly once. The pending check
// and the write share the voucher row lock, so of two concurrent reviewers the
// second observes the voucher already moved and fails cleanly. Row locks are
// taken installment-first so a review never deadlocks against a concurrent
// submit or payment holding the installment lock.
//
// Approval marks the whole installment verified even when the declared amount
// under-covers amount + late fee; there is no partial-verification path.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*ReviewResult, error) {
	switch in.Decision {
	case domainVoucher.DecisionApprove, domainVoucher.DecisionReject:
	default:
		return nil, fault.Newf(fault.KindValidation, "unknown review decision %q", in.Decision)
	}
	if in.Decision == domainVoucher.DecisionReject && in.Reason == "" {
		return nil, fault.New(fault.KindValidation, "a rejection reason is required")
	}
	if in.ReviewerID == "" {
		return nil, fault.New(fault.KindValidation, "reviewer id is required")
	}

	var res *ReviewResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Lock ordering matches Submit: installment row first, voucher row
		// second. The unlocked read only resolves the installment FK; the
		// pending check repeats under the voucher lock.
		v, err := r.Vouchers.GetByVoucherID(ctx, in.VoucherID)
		if err != nil {
			return err
		}
		if v.Status != domainVoucher.StatusPending {
			return domainVoucher.ErrAlreadyReviewed
		}
		inst, err := r.Installments.GetByIDForUpdate(ctx, v.InstallmentID)
		if err != nil {
			return err
		}
		v, err = r.Vouchers.GetByVoucherIDForUpdate(ctx, in.VoucherID)
		if err != nil {
			return err
		}
		if v.Status != domainVoucher.StatusPending {
			return domainVoucher.ErrAlreadyReviewed
		}

		now := time.Now().UTC()
		v.ReviewedBy = in.ReviewerID
		v.ReviewedAt = &now

		switch in.Decision {
		case domainVoucher.DecisionApprove:
			v.Status = domainVoucher.StatusApproved
			inst.Status = domainInstallment.StatusVerified
			inst.VerifiedBy = in.ReviewerID
			inst.VerifiedAt = &now

		case domainVoucher.DecisionReject:
			v.Status = domainVoucher.StatusRejected
			v.RejectReason = in.Reason

			// Pull the installment back as if the voucher had never been
			// submitted: clear the provisional payment and reprice.
			e, err := r.Enrollments.GetByID(ctx, inst.EnrollmentID)
			if err != nil {
				return err
			}
			p, err := r.Plans.GetByID(ctx, e.PlanID)
			if err != nil {
				return err
			}
			inst.PaidAmount = decimal.Zero
			inst.PaidDate = nil
			inst.PaymentType = ""
			inst.Status = domainInstallment.StatusPending
			domainInstallment.Reprice(inst, p.GraceDays, p.LateFeeRate, u.clk.Today())
		}

		if err := r.Vouchers.Save(ctx, v); err != nil {
			return err
		}
		if err := r.Installments.Save(ctx, inst); err != nil {
			return err
		}
		res = &ReviewResult{Voucher: *toDTO(v, inst.InstallmentID), InstallmentStatus: string(inst.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"voucher_id": in.VoucherID,
		"decision":   in.Decision,
		"reviewer":   in.ReviewerID,
	}).Info("voucher reviewed")
	return res, nil
}

// ListForInstallment returns every voucher ever filed against an installment,
// rejected ones included, oldest first.
func (u *Usecase) ListForInstallment(ctx context.Context, installmentID string) ([]VoucherDTO, error) {
	var out []VoucherDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inst, err := r.Installments.GetByInstallmentID(ctx, installmentID)
		if err != nil {
			return err
		}
		vs, err := r.Vouchers.ListByInstallmentID(ctx, inst.ID)
		if err != nil {
			return err
		}
		out = make([]VoucherDTO, 0, len(vs))
		for i := range vs {
			out = append(out, *toDTO(&vs[i], inst.InstallmentID))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toDTO(v *domainVoucher.Voucher, installmentPublicID string) *VoucherDTO {
	return &VoucherDTO{
		VoucherID:      v.VoucherID,
		InstallmentID:  installmentPublicID,
		FileURL:        v.FileURL,
		DeclaredAmount: v.DeclaredAmount,
		PaymentDate:    v.PaymentDate,
		Method:         v.Method,
		Reference:      v.Reference,
		Status:         string(v.Status),
		UploadedBy:     v.UploadedBy,
		ReviewedBy:     v.ReviewedBy,
		ReviewedAt:     v.ReviewedAt,
		RejectReason:   v.RejectReason,
	}
}
