package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	enrollmentDomain "edupay-backend/internal/domain/enrollment"
)

type EnrollmentRepository struct{ db *gorm.DB }

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) Create(ctx context.Context, e *enrollmentDomain.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EnrollmentRepository) Save(ctx context.Context, e *enrollmentDomain.Enrollment) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EnrollmentRepository) GetByEnrollmentID(ctx context.Context, enrollmentID string) (*enrollmentDomain.Enrollment, error) {
	var out enrollmentDomain.Enrollment
	res := r.db.WithContext(ctx).Where("enrollment_id = ?", enrollmentID).First(&out)
	return &out, translate(res.Error, enrollmentDomain.ErrNotFound)
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id uint64) (*enrollmentDomain.Enrollment, error) {
	var out enrollmentDomain.Enrollment
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, translate(res.Error, enrollmentDomain.ErrNotFound)
}

func (r *EnrollmentRepository) GetActiveByStudentID(ctx context.Context, studentID uint64) (*enrollmentDomain.Enrollment, error) {
	var out enrollmentDomain.Enrollment
	res := r.db.WithContext(ctx).
		Where("student_id = ? AND status = ?", studentID, enrollmentDomain.StatusActive).
		First(&out)
	return &out, translate(res.Error, enrollmentDomain.ErrNotFound)
}

func (r *EnrollmentRepository) GetActiveByStudentIDForUpdate(ctx context.Context, studentID uint64) (*enrollmentDomain.Enrollment, error) {
	var out enrollmentDomain.Enrollment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ? AND status = ?", studentID, enrollmentDomain.StatusActive).
		First(&out)
	return &out, translate(res.Error, enrollmentDomain.ErrNotFound)
}
