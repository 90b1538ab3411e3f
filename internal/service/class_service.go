package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/naveen-dev-dotcom/attendance-app/internal/dto"
	"github.com/naveen-dev-dotcom/attendance-app/internal/model"
	"github.com/naveen-dev-dotcom/attendance-app/internal/repository"
)

// ErrClassNotFound is returned when a class identity does not resolve.
var ErrClassNotFound = errors.New("class not found")

// ClassService is the roster-class interface. Classes are immutable
// after creation; there is no update or delete.
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassResponse, error)
	List(ctx context.Context) ([]dto.ClassResponse, error)
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService creates a ClassService instance.
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest) (*dto.ClassResponse, error) {
	class := &model.Class{
		Name:        req.Name,
		RegNoPrefix: req.RegNoPrefix,
	}
	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("create class failed", zap.Error(err))
		return nil, err
	}
	return toClassResponse(class), nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("lookup class failed", zap.String("class_id", id), zap.Error(err))
		return nil, err
	}
	return toClassResponse(class), nil
}

func (s *classService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("list classes failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassResponse(&classes[i]))
	}
	return result, nil
}

func toClassResponse(class *model.Class) *dto.ClassResponse {
	return &dto.ClassResponse{
		ID:          class.ClassID,
		Name:        class.Name,
		RegNoPrefix: class.RegNoPrefix,
	}
}
