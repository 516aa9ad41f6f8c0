package prospect

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	domainEnrollment "edupay-backend/internal/domain/enrollment"
	domainInstallment "edupay-backend/internal/domain/installment"
	domainPlan "edupay-backend/internal/domain/plan"
	"edupay-backend/internal/domain/student"
	"edupay-backend/internal/domain/uow"
	"edupay-backend/internal/testutil/enrollmentmock"
	"edupay-backend/internal/testutil/installmentmock"
	"edupay-backend/internal/testutil/planmock"
	"edupay-backend/internal/testutil/studentmock"
	"edupay-backend/internal/testutil/uowmock"
	"edupay-backend/pkg/clock"
	"edupay-backend/pkg/fault"
)

const (
	testStudentID = "11111111111111111111111111111111"
	testPlanID    = "22222222222222222222222222222222"
)

func quietLog() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestUsecase_Register(t *testing.T) {
	var created *student.Student
	tx := uowmock.Passthrough(uow.Repos{
		Students: &studentmock.Repo{
			CreateFn: func(_ context.Context, s *student.Student) error {
				created = s
				return nil
			},
		},
	})
	uc := NewUsecase(tx, clock.At(2026, 1, 10), quietLog())

	dto, err := uc.Register(context.Background(), RegisterInput{
		FullName: "Ayu Lestari",
		Email:    "ayu@example.com",
	})
	if err != nil {
		t.Fatalf("Register: unexpected err: %v", err)
	}
	if created == nil || created.Status != student.StatusRegistered {
		t.Fatalf("student not created as registered: %+v", created)
	}
	if len(dto.StudentID) != 32 {
		t.Fatalf("student id: want 32-hex, got %q", dto.StudentID)
	}
	if dto.Status != string(student.StatusRegistered) {
		t.Fatalf("dto status mismatch: %s", dto.Status)
	}

	if _, err := uc.Register(context.Background(), RegisterInput{}); !fault.IsValidation(err) {
		t.Fatalf("empty name: want validation error, got %v", err)
	}
}

func TestUsecase_Transition_Gates(t *testing.T) {
	clk := clock.At(2026, 1, 10)

	prospectAt := func(status student.ProspectStatus) *studentmock.Repo {
		return &studentmock.Repo{
			GetByStudentIDForUpdateFn: func(context.Context, string) (*student.Student, error) {
				return &student.Student{ID: 7, StudentID: testStudentID, Status: status}, nil
			},
		}
	}

	tests := []struct {
		name     string
		from     student.ProspectStatus
		to       student.ProspectStatus
		role     actor.Role
		wantKind fault.Kind
	}{
		{"advisor sends proposal", student.StatusRegistered, student.StatusProposalSent, actor.RoleSalesAdvisor, fault.KindUnknown},
		{"prospect reports payment", student.StatusProposalSent, student.StatusPaymentUnderReview, actor.RoleProspect, fault.KindUnknown},
		{"wrong role on proposal", student.StatusRegistered, student.StatusProposalSent, actor.RoleCashier, fault.KindAuthorization},
		{"skipping straight to enrolled", student.StatusRegistered, student.StatusEnrolled, actor.RoleCashier, fault.KindConflict},
		{"moving backward", student.StatusProposalSent, student.StatusRegistered, actor.RoleAdmin, fault.KindConflict},
		{"re-entering the same status", student.StatusProposalSent, student.StatusProposalSent, actor.RoleSalesAdvisor, fault.KindConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tx := uowmock.Passthrough(uow.Repos{Students: prospectAt(tc.from)})
			uc := NewUsecase(tx, clk, quietLog())

			in := TransitionInput{
				StudentID: testStudentID,
				Requested: tc.to,
				Role:      tc.role,
				ActorID:   "actor-1",
			}
			if tc.to == student.StatusEnrolled {
				in.PlanID = testPlanID
			}
			dto, err := uc.Transition(context.Background(), in)
			if tc.wantKind == fault.KindUnknown {
				if err != nil {
					t.Fatalf("Transition: unexpected err: %v", err)
				}
				if dto.Status != string(tc.to) {
					t.Fatalf("status: want %s, got %s", tc.to, dto.Status)
				}
				return
			}
			if fault.KindOf(err) != tc.wantKind {
				t.Fatalf("want %v error, got %v", tc.wantKind, err)
			}
		})
	}

	t.Run("unknown status is invalid", func(t *testing.T) {
		uc := NewUsecase(uowmock.New(), clk, quietLog())
		_, err := uc.Transition(context.Background(), TransitionInput{
			StudentID: testStudentID,
			Requested: student.ProspectStatus("withdrawn"),
			Role:      actor.RoleAdmin,
		})
		if !fault.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("enrolling without a plan is invalid", func(t *testing.T) {
		uc := NewUsecase(uowmock.New(), clk, quietLog())
		_, err := uc.Transition(context.Background(), TransitionInput{
			StudentID: testStudentID,
			Requested: student.StatusEnrolled,
			Role:      actor.RoleCashier,
		})
		if !fault.IsValidation(err) {
			t.Fatalf("want validation error, got %v", err)
		}
	})
}

func TestUsecase_Transition_Enroll(t *testing.T) {
	clk := clock.At(2026, 1, 10)

	t.Run("cashier enrollment creates the schedule in the same transaction", func(t *testing.T) {
		s := &student.Student{ID: 7, StudentID: testStudentID, Status: student.StatusPaymentUnderReview}
		var savedStudent *student.Student
		var batch []domainInstallment.Installment
		tx := uowmock.Passthrough(uow.Repos{
			Students: &studentmock.Repo{
				GetByStudentIDForUpdateFn: func(context.Context, string) (*student.Student, error) {
					return s, nil
				},
				SaveFn: func(_ context.Context, got *student.Student) error {
					savedStudent = got
					return nil
				},
			},
			Enrollments: &enrollmentmock.Repo{
				GetActiveByStudentIDFn: func(context.Context, uint64) (*domainEnrollment.Enrollment, error) {
					return nil, domainEnrollment.ErrNotFound
				},
			},
			Plans: &planmock.Repo{
				GetByPlanIDFn: func(context.Context, string) (*domainPlan.PaymentPlan, error) {
					return &domainPlan.PaymentPlan{
						ID: 2, PlanID: testPlanID, InstallmentsCount: 3,
						MonthlyAmount: decimal.RequireFromString("200.00"),
						TotalAmount:   decimal.RequireFromString("600.00"),
					}, nil
				},
			},
			Installments: &installmentmock.Repo{
				CreateBatchFn: func(_ context.Context, got []domainInstallment.Installment) error {
					batch = got
					return nil
				},
			},
		})

		uc := NewUsecase(tx, clk, quietLog())
		dto, err := uc.Transition(context.Background(), TransitionInput{
			StudentID: testStudentID,
			Requested: student.StatusEnrolled,
			Role:      actor.RoleCashier,
			ActorID:   "cashier-1",
			PlanID:    testPlanID,
		})
		if err != nil {
			t.Fatalf("Transition: unexpected err: %v", err)
		}
		if savedStudent == nil || savedStudent.Status != student.StatusEnrolled {
			t.Fatalf("student not saved as enrolled: %+v", savedStudent)
		}
		if len(batch) != 3 {
			t.Fatalf("schedule: want 3 installments, got %d", len(batch))
		}
		// payment date was never reported, so today becomes the anchor
		if !batch[0].DueDate.Equal(clock.Date(2026, 1, 10)) {
			t.Fatalf("anchor: want today, got %s", batch[0].DueDate)
		}
		if dto.PaymentDate == nil || !dto.PaymentDate.Equal(clock.Date(2026, 1, 10)) {
			t.Fatalf("payment date not derived: %+v", dto.PaymentDate)
		}
		if !strings.HasPrefix(dto.EnrollmentCode, "ENR-20260110-") {
			t.Fatalf("enrollment code not derived: %q", dto.EnrollmentCode)
		}
	})

	t.Run("active enrollment blocks the status flip", func(t *testing.T) {
		s := &student.Student{ID: 7, StudentID: testStudentID, Status: student.StatusPaymentUnderReview}
		saved := false
		tx := uowmock.Passthrough(uow.Repos{
			Students: &studentmock.Repo{
				GetByStudentIDForUpdateFn: func(context.Context, string) (*student.Student, error) {
					return s, nil
				},
				SaveFn: func(context.Context, *student.Student) error {
					saved = true
					return nil
				},
			},
			Enrollments: &enrollmentmock.Repo{
				GetActiveByStudentIDFn: func(context.Context, uint64) (*domainEnrollment.Enrollment, error) {
					return &domainEnrollment.Enrollment{ID: 1, Status: domainEnrollment.StatusActive}, nil
				},
			},
		})

		uc := NewUsecase(tx, clk, quietLog())
		_, err := uc.Transition(context.Background(), TransitionInput{
			StudentID: testStudentID,
			Requested: student.StatusEnrolled,
			Role:      actor.RoleCashier,
			PlanID:    testPlanID,
		})
		if !fault.IsConflict(err) {
			t.Fatalf("want conflict, got %v", err)
		}
		if saved {
			t.Fatalf("student must not be saved when enrollment creation fails")
		}
	})

	t.Run("reported payment date is recorded on review", func(t *testing.T) {
		s := &student.Student{ID: 7, StudentID: testStudentID, Status: student.StatusProposalSent}
		tx := uowmock.Passthrough(uow.Repos{
			Students: &studentmock.Repo{
				GetByStudentIDForUpdateFn: func(context.Context, string) (*student.Student, error) {
					return s, nil
				},
			},
		})

		reported := clock.Date(2026, 1, 8)
		uc := NewUsecase(tx, clk, quietLog())
		dto, err := uc.Transition(context.Background(), TransitionInput{
			StudentID:   testStudentID,
			Requested:   student.StatusPaymentUnderReview,
			Role:        actor.RoleProspect,
			PaymentDate: &reported,
		})
		if err != nil {
			t.Fatalf("Transition: unexpected err: %v", err)
		}
		if dto.PaymentDate == nil || !dto.PaymentDate.Equal(reported) {
			t.Fatalf("payment date not recorded: %+v", dto.PaymentDate)
		}
	})
}
