package studentmock

import (
	"context"

	domain "edupay-backend/internal/domain/student"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the funcs a test needs.
type Repo struct {
	CreateFn                  func(ctx context.Context, s *domain.Student) error
	GetByStudentIDFn          func(ctx context.Context, studentID string) (*domain.Student, error)
	GetByIDFn                 func(ctx context.Context, id uint64) (*domain.Student, error)
	GetByStudentIDForUpdateFn func(ctx context.Context, studentID string) (*domain.Student, error)
	SaveFn                    func(ctx context.Context, s *domain.Student) error
}

func (m *Repo) Create(ctx context.Context, s *domain.Student) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}

func (m *Repo) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	if m.GetByStudentIDFn != nil {
		return m.GetByStudentIDFn(ctx, studentID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Student, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByStudentIDForUpdate(ctx context.Context, studentID string) (*domain.Student, error) {
	if m.GetByStudentIDForUpdateFn != nil {
		return m.GetByStudentIDForUpdateFn(ctx, studentID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, s *domain.Student) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}
