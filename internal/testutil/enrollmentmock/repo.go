package enrollmentmock

import (
	"context"

	domain "edupay-backend/internal/domain/enrollment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                        func(ctx context.Context, e *domain.Enrollment) error
	GetByEnrollmentIDFn             func(ctx context.Context, enrollmentID string) (*domain.Enrollment, error)
	GetByIDFn                       func(ctx context.Context, id uint64) (*domain.Enrollment, error)
	GetActiveByStudentIDFn          func(ctx context.Context, studentID uint64) (*domain.Enrollment, error)
	GetActiveByStudentIDForUpdateFn func(ctx context.Context, studentID uint64) (*domain.Enrollment, error)
	SaveFn                          func(ctx context.Context, e *domain.Enrollment) error
}

func (m *Repo) Create(ctx context.Context, e *domain.Enrollment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByEnrollmentID(ctx context.Context, enrollmentID string) (*domain.Enrollment, error) {
	if m.GetByEnrollmentIDFn != nil {
		return m.GetByEnrollmentIDFn(ctx, enrollmentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Enrollment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByStudentID(ctx context.Context, studentID uint64) (*domain.Enrollment, error) {
	if m.GetActiveByStudentIDFn != nil {
		return m.GetActiveByStudentIDFn(ctx, studentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetActiveByStudentIDForUpdate(ctx context.Context, studentID uint64) (*domain.Enrollment, error) {
	if m.GetActiveByStudentIDForUpdateFn != nil {
		return m.GetActiveByStudentIDForUpdateFn(ctx, studentID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, e *domain.Enrollment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}
