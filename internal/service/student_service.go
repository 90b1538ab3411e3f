package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
)

// ErrStudentExists is returned when a registration suffix is already
// taken within the class.
var ErrStudentExists = errors.New("registration suffix already exists in class")

// StudentService is the roster-student interface.
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, classID string) ([]dto.StudentResponse, error)
	BulkImport(ctx context.Context, req *dto.BulkImportRequest) (*dto.BulkImportResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService creates a StudentService instance.
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("lookup class failed", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}

	student := &model.Student{
		ClassID:     req.ClassID,
		RegNoSuffix: req.RegNoSuffix,
		Name:        req.Name,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentExists
		}
		s.logger.Error("create student failed", zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student, class.RegNoPrefix), nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("lookup student failed", zap.String("student_id", id), zap.Error(err))
		return nil, err
	}

	prefix := ""
	if student.Class != nil {
		prefix = student.Class.RegNoPrefix
	}
	return toStudentResponse(student, prefix), nil
}

// List returns students ordered by registration suffix; classID may be
// empty to list the whole roster.
func (s *studentService) List(ctx context.Context, classID string) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx, classID)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		prefix := ""
		if students[i].Class != nil {
			prefix = students[i].Class.RegNoPrefix
		}
		result = append(result, *toStudentResponse(&students[i], prefix))
	}
	return result, nil
}

// BulkImport inserts many students at once, all-or-nothing. Every row
// must name an existing class.
func (s *studentService) BulkImport(ctx context.Context, req *dto.BulkImportRequest) (*dto.BulkImportResponse, error) {
	prefixes := make(map[string]string)
	students := make([]model.Student, 0, len(req.Students))

	for _, row := range req.Students {
		if _, ok := prefixes[row.ClassID]; !ok {
			class, err := s.repo.Class.GetByID(ctx, row.ClassID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrClassNotFound
				}
				s.logger.Error("lookup class failed", zap.String("class_id", row.ClassID), zap.Error(err))
				return nil, err
			}
			prefixes[row.ClassID] = class.RegNoPrefix
		}
		students = append(students, model.Student{
			ClassID:     row.ClassID,
			RegNoSuffix: row.RegNoSuffix,
			Name:        row.Name,
		})
	}

	if err := s.repo.Student.BatchCreate(ctx, students); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentExists
		}
		s.logger.Error("bulk import failed", zap.Int("count", len(students)), zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i], prefixes[students[i].ClassID]))
	}
	return &dto.BulkImportResponse{
		Message:  fmt.Sprintf("%d students successfully added.", len(students)),
		Students: result,
	}, nil
}

func toStudentResponse(student *model.Student, regNoPrefix string) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:          student.StudentID,
		RegNoSuffix: student.RegNoSuffix,
		RegNo:       regNoPrefix + student.RegNoSuffix,
		Name:        student.Name,
		ClassID:     student.ClassID,
	}
}
