package enrollment

import (
	"context"

	"github.com/sirupsen/logrus"

	domainEnrollment "edupay-backend/internal/domain/enrollment"
	domainInstallment "edupay-backend/internal/domain/installment"
	domainPlan "edupay-backend/internal/domain/plan"
	"edupay-backend/internal/domain/uow"
	"edupay-backend/pkg/clock"
	"edupay-backend/pkg/fault"
	"edupay-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	clk clock.Clock
	log *logrus.Logger
	// changeWindowDays is the plan-change deadline counted from the
	// enrollment date.
	changeWindowDays int
}

func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, log *logrus.Logger, changeWindowDays int) *Usecase {
	return &Usecase{uow: tx, clk: clk, log: log, changeWindowDays: changeWindowDays}
}

// CreateInTx creates the enrollment record and its full installment batch as
// part of an already-open transaction. The prospect workflow shares it when
// the cashier moves a prospect to enrolled — enrollment creation and schedule
// generation are one atomic unit either way.
func CreateInTx(ctx context.Context, r uow.Repos, clk clock.Clock, in CreateInput) (*domainEnrollment.Enrollment, []domainInstallment.Installment, error) {
	s, err := r.Students.GetByStudentIDForUpdate(ctx, in.StudentID)
	if err != nil {
		return nil, nil, err
	}

	// At most one active enrollment per student, ever.
	if _, err := r.Enrollments.GetActiveByStudentID(ctx, s.ID); err == nil {
		return nil, nil, domainEnrollment.ErrAlreadyActive
	} else if !fault.IsNotFound(err) {
		return nil, nil, err
	}

	p, err := r.Plans.GetByPlanID(ctx, in.PlanID)
	if err != nil {
		return nil, nil, err
	}

	e := &domainEnrollment.Enrollment{
		EnrollmentID:   id.NewID32(),
		StudentID:      s.ID,
		PlanID:         p.ID,
		EnrollmentFee:  in.EnrollmentFee,
		EnrollmentDate: in.EnrollmentDate,
		Status:         domainEnrollment.StatusActive,
		VerifiedBy:     in.VerifiedBy,
	}
	now := clk.Today()
	e.VerifiedAt = &now
	if err := r.Enrollments.Create(ctx, e); err != nil {
		return nil, nil, err
	}

	anchor := in.EnrollmentDate
	if in.FirstPaymentDate != nil {
		anchor = *in.FirstPaymentDate
	} else if s.FirstPaymentDate != nil {
		anchor = *s.FirstPaymentDate
	}

	batch, err := domainInstallment.GenerateSchedule(p, anchor)
	if err != nil {
		return nil, nil, err
	}
	for i := range batch {
		batch[i].EnrollmentID = e.ID
	}
	if err := r.Installments.CreateBatch(ctx, batch); err != nil {
		return nil, nil, err
	}
	return e, batch, nil
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*View, error) {
	var view *View
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, batch, err := CreateInTx(ctx, r, u.clk, in)
		if err != nil {
			return err
		}
		p, err := r.Plans.GetByID(ctx, e.PlanID)
		if err != nil {
			return err
		}
		view = buildView(in.StudentID, e, p, batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"student_id":    in.StudentID,
		"enrollment_id": view.EnrollmentID,
		"installments":  len(view.Installments),
	}).Info("enrollment created")
	return view, nil
}

// GetView loads the enrollment with its installments, repricing late fees on
// the fly. Repricing is idempotent, so concurrent reads are harmless; the
// write-back still happens inside the transaction.
func (u *Usecase) GetView(ctx context.Context, enrollmentID string) (*View, error) {
	var view *View
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := r.Enrollments.GetByEnrollmentID(ctx, enrollmentID)
		if err != nil {
			return err
		}
		p, err := r.Plans.GetByID(ctx, e.PlanID)
		if err != nil {
			return err
		}
		s, err := r.Students.GetByID(ctx, e.StudentID)
		if err != nil {
			return err
		}
		insts, err := r.Installments.ListByEnrollmentID(ctx, e.ID)
		if err != nil {
			return err
		}
		today := u.clk.Today()
		for i := range insts {
			if domainInstallment.Reprice(&insts[i], p.GraceDays, p.LateFeeRate, today) {
				if err := r.Installments.Save(ctx, &insts[i]); err != nil {
					return err
				}
			}
		}
		view = buildView(s.StudentID, e, p, insts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CheckPlanChange is the advisory read-only eligibility check; the actual swap
// re-runs the same checks under lock. The result carries the student's full
// plan-change audit trail alongside the verdict.
func (u *Usecase) CheckPlanChange(ctx context.Context, studentID string) (*EligibilityResult, error) {
	var res *EligibilityResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Students.GetByStudentID(ctx, studentID)
		if err != nil {
			return err
		}
		history, err := r.PlanChanges.ListByStudentID(ctx, s.ID)
		if err != nil {
			return err
		}
		e, err := r.Enrollments.GetActiveByStudentID(ctx, s.ID)
		if fault.IsNotFound(err) {
			res = &EligibilityResult{Allowed: false, Reason: "student has no active enrollment", History: history}
			return nil
		}
		if err != nil {
			return err
		}
		insts, err := r.Installments.ListByEnrollmentID(ctx, e.ID)
		if err != nil {
			return err
		}
		res = u.eligibility(e, insts)
		res.History = history
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (u *Usecase) eligibility(e *domainEnrollment.Enrollment, insts []domainInstallment.Installment) *EligibilityResult {
	daysSince := clock.DaysBetween(e.EnrollmentDate, u.clk.Today())
	if daysSince > u.changeWindowDays {
		return &EligibilityResult{Allowed: false, Reason: "plan change window has closed"}
	}
	for _, inst := range insts {
		if inst.Status == domainInstallment.StatusPaid || inst.Status == domainInstallment.StatusVerified {
			return &EligibilityResult{Allowed: false, Reason: "payments have already been made on the current plan"}
		}
	}
	return &EligibilityResult{Allowed: true, DaysRemaining: u.changeWindowDays - daysSince}
}

// ChangePlan swaps the active enrollment to a new plan: eligibility is
// re-checked under the row lock, untouched installments are cancelled, a fresh
// schedule is generated from the original anchor, and an append-only audit row
// records the switch.
func (u *Usecase) ChangePlan(ctx context.Context, in ChangePlanInput) (*View, error) {
	if in.Reason == "" {
		return nil, fault.New(fault.KindValidation, "plan change reason is required")
	}
	var view *View
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Students.GetByStudentIDForUpdate(ctx, in.StudentID)
		if err != nil {
			return err
		}
		e, err := r.Enrollments.GetActiveByStudentIDForUpdate(ctx, s.ID)
		if fault.IsNotFound(err) {
			return fault.New(fault.KindConflict, "student has no active enrollment")
		}
		if err != nil {
			return err
		}
		insts, err := r.Installments.ListByEnrollmentID(ctx, e.ID)
		if err != nil {
			return err
		}
		if elig := u.eligibility(e, insts); !elig.Allowed {
			return fault.New(fault.KindConflict, elig.Reason)
		}

		oldPlan, err := r.Plans.GetByID(ctx, e.PlanID)
		if err != nil {
			return err
		}
		newPlan, err := r.Plans.GetByPlanID(ctx, in.NewPlanID)
		if err != nil {
			return err
		}
		if newPlan.ID == oldPlan.ID {
			return fault.New(fault.KindValidation, "new plan is the same as the current plan")
		}

		// The original anchor is installment #1's due date.
		anchor := e.EnrollmentDate
		for i := range insts {
			if insts[i].Seq == 1 {
				anchor = insts[i].DueDate
			}
			insts[i].Status = domainInstallment.StatusCancelled
			if err := r.Installments.Save(ctx, &insts[i]); err != nil {
				return err
			}
		}

		e.PlanID = newPlan.ID
		if err := r.Enrollments.Save(ctx, e); err != nil {
			return err
		}

		batch, err := domainInstallment.GenerateSchedule(newPlan, anchor)
		if err != nil {
			return err
		}
		for i := range batch {
			batch[i].EnrollmentID = e.ID
		}
		if err := r.Installments.CreateBatch(ctx, batch); err != nil {
			return err
		}

		change := &domainPlan.PlanChange{
			ChangeID:        id.NewID32(),
			StudentID:       s.ID,
			OldPlanID:       oldPlan.ID,
			NewPlanID:       newPlan.ID,
			OldInstallments: oldPlan.InstallmentsCount,
			NewInstallments: newPlan.InstallmentsCount,
			OldTotal:        oldPlan.TotalAmount,
			NewTotal:        newPlan.TotalAmount,
			ChangedBy:       in.ChangedBy,
			Reason:          in.Reason,
			ChangedAt:       u.clk.Today(),
		}
		if err := r.PlanChanges.Append(ctx, change); err != nil {
			return err
		}

		view = buildView(s.StudentID, e, newPlan, batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"student_id": in.StudentID,
		"new_plan":   in.NewPlanID,
		"changed_by": in.ChangedBy,
	}).Info("plan changed")
	return view, nil
}

func buildView(studentID string, e *domainEnrollment.Enrollment, p *domainPlan.PaymentPlan, insts []domainInstallment.Installment) *View {
	dtos := make([]InstallmentDTO, 0, len(insts))
	live := make([]domainInstallment.Installment, 0, len(insts))
	for i := range insts {
		if insts[i].Status == domainInstallment.StatusCancelled {
			continue
		}
		dtos = append(dtos, toInstallmentDTO(&insts[i]))
		live = append(live, insts[i])
	}
	return &View{
		EnrollmentID:   e.EnrollmentID,
		StudentID:      studentID,
		PlanID:         p.PlanID,
		PlanName:       p.Name,
		EnrollmentFee:  e.EnrollmentFee,
		EnrollmentDate: e.EnrollmentDate,
		Status:         string(e.Status),
		Installments:   dtos,
		Summary:        domainEnrollment.Summarize(p.TotalAmount, live),
	}
}
