package prospect

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	"edupay-backend/internal/domain/student"
	"edupay-backend/internal/domain/uow"
	enrollmentUC "edupay-backend/internal/usecase/enrollment"
	"edupay-backend/pkg/clock"
	"edupay-backend/pkg/fault"
	"edupay-backend/pkg/id"
)

type Usecase struct {
	uow uow.UnitOfWork
	clk clock.Clock
	log *logrus.Logger
}

func NewUsecase(tx uow.UnitOfWork, clk clock.Clock, log *logrus.Logger) *Usecase {
	return &Usecase{uow: tx, clk: clk, log: log}
}

type RegisterInput struct {
	FullName         string
	Email            string
	FirstPaymentDate *time.Time
}

type StudentDTO struct {
	StudentID        string     `json:"student_id"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	Status           string     `json:"status"`
	PaymentDate      *time.Time `json:"payment_date,omitempty"`
	FirstPaymentDate *time.Time `json:"first_payment_date,omitempty"`
	EnrollmentCode   string     `json:"enrollment_code,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type TransitionInput struct {
	StudentID string
	Requested student.ProspectStatus
	Role      actor.Role
	ActorID   string
	// PlanID and EnrollmentFee apply only to the → enrolled transition, which
	// creates the enrollment and its schedule in the same transaction.
	PlanID        string
	EnrollmentFee decimal.Decimal
	// PaymentDate lets the prospect report when they paid (set on the
	// payment_under_review transition).
	PaymentDate *time.Time
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*StudentDTO, error) {
	if in.FullName == "" {
		return nil, fault.New(fault.KindValidation, "full name is required")
	}
	s := &student.Student{
		StudentID:        id.NewID32(),
		FullName:         in.FullName,
		Email:            in.Email,
		Status:           student.StatusRegistered,
		FirstPaymentDate: in.FirstPaymentDate,
		StatusUpdatedAt:  time.Now().UTC(),
	}
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Students.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}
	u.log.WithField("student_id", s.StudentID).Info("prospect registered")
	return toDTO(s), nil
}

func (u *Usecase) Get(ctx context.Context, studentID string) (*StudentDTO, error) {
	var dto *StudentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Students.GetByStudentID(ctx, studentID)
		if err != nil {
			return err
		}
		dto = toDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Transition moves a prospect one stage forward, gated by the transition
// table. The → enrolled edge is the sole trigger for schedule generation:
// the status flip, the enrollment row, and the full installment batch commit
// together or not at all.
func (u *Usecase) Transition(ctx context.Context, in TransitionInput) (*StudentDTO, error) {
	if !in.Requested.Valid() {
		return nil, fault.Newf(fault.KindValidation, "unknown prospect status %q", in.Requested)
	}
	if !in.Role.Valid() {
		return nil, fault.Newf(fault.KindValidation, "unknown actor role %q", in.Role)
	}
	if in.Requested == student.StatusEnrolled && in.PlanID == "" {
		return nil, fault.New(fault.KindValidation, "plan_id is required to enroll a prospect")
	}

	var dto *StudentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.Students.GetByStudentIDForUpdate(ctx, in.StudentID)
		if err != nil {
			return err
		}
		if err := student.CanTransition(s.Status, in.Requested, in.Role); err != nil {
			return err
		}

		today := u.clk.Today()
		if in.Requested == student.StatusPaymentUnderReview && in.PaymentDate != nil {
			s.PaymentDate = in.PaymentDate
		}

		if in.Requested == student.StatusEnrolled {
			// Enrollment needs a recorded payment date; derive it (and the
			// enrollment code) when the prospect never reported one.
			if s.PaymentDate == nil {
				s.PaymentDate = &today
			}
			if s.EnrollmentCode == "" {
				s.EnrollmentCode = id.NewEnrollmentCode(*s.PaymentDate)
			}
			_, _, err := enrollmentUC.CreateInTx(ctx, r, u.clk, enrollmentUC.CreateInput{
				StudentID:      s.StudentID,
				PlanID:         in.PlanID,
				EnrollmentFee:  in.EnrollmentFee,
				EnrollmentDate: *s.PaymentDate,
				VerifiedBy:     in.ActorID,
			})
			if err != nil {
				return err
			}
		}

		s.Status = in.Requested
		s.StatusUpdatedAt = time.Now().UTC()
		if err := r.Students.Save(ctx, s); err != nil {
			return err
		}
		dto = toDTO(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.WithFields(logrus.Fields{
		"student_id": in.StudentID,
		"status":     in.Requested,
		"role":       in.Role,
	}).Info("prospect status moved")
	return dto, nil
}

func toDTO(s *student.Student) *StudentDTO {
	return &StudentDTO{
		StudentID:        s.StudentID,
		FullName:         s.FullName,
		Email:            s.Email,
		Status:           string(s.Status),
		PaymentDate:      s.PaymentDate,
		FirstPaymentDate: s.FirstPaymentDate,
		EnrollmentCode:   s.EnrollmentCode,
		CreatedAt:        s.CreatedAt,
	}
}
