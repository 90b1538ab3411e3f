package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
)

// StudentRepository is the roster-student access interface.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	BatchCreate(ctx context.Context, students []model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, classID string) ([]model.Student, error)
	ListByClassAndSuffixes(ctx context.Context, classID string, suffixes []string) ([]model.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) BatchCreate(ctx context.Context, students []model.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&students).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("Class").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns students ordered by registration suffix; classID may be
// empty to list all.
func (r *studentRepo) List(ctx context.Context, classID string) ([]model.Student, error) {
	var students []model.Student
	q := r.db.WithContext(ctx).Preload("Class")
	if classID != "" {
		q = q.Where("class_id = ?", classID)
	}
	err := q.Order("reg_no_suffix ASC").Find(&students).Error
	return students, err
}

func (r *studentRepo) ListByClassAndSuffixes(ctx context.Context, classID string, suffixes []string) ([]model.Student, error) {
	if len(suffixes) == 0 {
		return nil, nil
	}
	var students []model.Student
	err := r.db.WithContext(ctx).
		Where("class_id = ? AND reg_no_suffix IN ?", classID, suffixes).
		Order("reg_no_suffix ASC").
		Find(&students).Error
	return students, err
}
