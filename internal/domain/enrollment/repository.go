package enrollment

import "context"

type Repository interface {
	Create(ctx context.Context, e *Enrollment) error
	GetByEnrollmentID(ctx context.Context, enrollmentID string) (*Enrollment, error)
	GetByID(ctx context.Context, id uint64) (*Enrollment, error)
	// GetActiveByStudentID returns the student's single active enrollment.
	GetActiveByStudentID(ctx context.Context, studentID uint64) (*Enrollment, error)
	// GetActiveByStudentIDForUpdate locks the active enrollment row.
	GetActiveByStudentIDForUpdate(ctx context.Context, studentID uint64) (*Enrollment, error)
	Save(ctx context.Context, e *Enrollment) error
}
