package student

import "context"

type Repository interface {
	Create(ctx context.Context, s *Student) error
	GetByStudentID(ctx context.Context, studentID string) (*Student, error)
	GetByID(ctx context.Context, id uint64) (*Student, error)
	// GetByStudentIDForUpdate locks the row for the enclosing transaction.
	GetByStudentIDForUpdate(ctx context.Context, studentID string) (*Student, error)
	Save(ctx context.Context, s *Student) error
}
