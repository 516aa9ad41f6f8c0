package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentDomain "edupay-backend/internal/domain/student"
)

type StudentRepository struct{ db *gorm.DB }

func NewStudentRepository(db *gorm.DB) *StudentRepository { return &StudentRepository{db: db} }

func (r *StudentRepository) Create(ctx context.Context, s *studentDomain.Student) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StudentRepository) Save(ctx context.Context, s *studentDomain.Student) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*studentDomain.Student, error) {
	var out studentDomain.Student
	res := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&out)
	return &out, translate(res.Error, studentDomain.ErrNotFound)
}

func (r *StudentRepository) GetByID(ctx context.Context, id uint64) (*studentDomain.Student, error) {
	var out studentDomain.Student
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, translate(res.Error, studentDomain.ErrNotFound)
}

func (r *StudentRepository) GetByStudentIDForUpdate(ctx context.Context, studentID string) (*studentDomain.Student, error) {
	var out studentDomain.Student
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).
		First(&out)
	return &out, translate(res.Error, studentDomain.ErrNotFound)
}

// translate maps gorm's not-found onto the domain sentinel so usecases never
// import gorm.
func translate(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
