package department

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/department"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/cache"
)

const (
	cacheKeyAll = "departments:all"
	cacheTTL    = 30 * time.Minute
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
	cache *cache.Loader
}

func NewDepartmentService(departmentRepository department.DepartmentRepository, loader *cache.Loader) department.DepartmentService {
	return &DepartmentServiceImpl{
		DepartmentRepository: departmentRepository,
		cache:                loader,
	}
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.DepartmentRepository.Create(ctx, department.Department{Name: req.Name})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	s.cache.Invalidate(ctx, cacheKeyAll)

	slog.Info("Department created", "department_id", d.ID, "name", d.Name)
	return department.ToResponse(d), nil
}

// Get implements department.DepartmentService.
func (s *DepartmentServiceImpl) Get(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(d), nil
}

// List implements department.DepartmentService. Results are cached.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, cacheKeyAll, cacheTTL, func(ctx context.Context) ([]department.DepartmentResponse, error) {
		departments, err := s.DepartmentRepository.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list departments: %w", err)
		}

		responses := make([]department.DepartmentResponse, 0, len(departments))
		for _, d := range departments {
			responses = append(responses, department.ToResponse(d))
		}
		return responses, nil
	})
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	d, err := s.DepartmentRepository.Update(ctx, department.Department{ID: req.ID, Name: req.Name})
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	s.cache.Invalidate(ctx, cacheKeyAll)

	return department.ToResponse(d), nil
}

// Delete implements department.DepartmentService.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.DepartmentRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, cacheKeyAll)
	return nil
}
