package job

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/cache"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
)

const cacheTTL = 30 * time.Minute

type JobServiceImpl struct {
	job.JobRepository
	cache *cache.Loader
}

func NewJobService(jobRepository job.JobRepository, loader *cache.Loader) job.JobService {
	return &JobServiceImpl{
		JobRepository: jobRepository,
		cache:         loader,
	}
}

// Create implements job.JobService.
func (s *JobServiceImpl) Create(ctx context.Context, req job.CreateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	j := job.Job{
		UserID:         req.UserID,
		DepartmentID:   req.DepartmentID,
		JobTitle:       req.JobTitle,
		EmploymentType: job.EmploymentType(req.EmploymentType),
	}
	j.StartDate, _ = validator.IsValidDate(req.StartDate)
	if req.EndDate != nil {
		end, _ := validator.IsValidDate(*req.EndDate)
		j.EndDate = &end
	}

	created, err := s.JobRepository.Create(ctx, j)
	if err != nil {
		return job.JobResponse{}, err
	}
	s.cache.Invalidate(ctx, job.UserJobsCacheKey(created.UserID))

	slog.Info("Job created", "job_id", created.ID, "user_id", created.UserID, "title", created.JobTitle)
	return job.ToResponse(created), nil
}

// Get implements job.JobService.
func (s *JobServiceImpl) Get(ctx context.Context, id string) (job.JobResponse, error) {
	j, err := s.JobRepository.GetByID(ctx, id)
	if err != nil {
		return job.JobResponse{}, err
	}
	return job.ToResponse(j), nil
}

// List implements job.JobService.
func (s *JobServiceImpl) List(ctx context.Context, page, limit int) ([]job.JobResponse, int64, error) {
	p := pagination.Normalize(page, limit)
	jobs, total, err := s.JobRepository.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	return toResponses(jobs), total, nil
}

// ListByUser implements job.JobService. Newest first, cached per user.
func (s *JobServiceImpl) ListByUser(ctx context.Context, userID string) ([]job.JobResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, job.UserJobsCacheKey(userID), cacheTTL, func(ctx context.Context) ([]job.JobResponse, error) {
		jobs, err := s.JobRepository.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list jobs for user: %w", err)
		}
		return toResponses(jobs), nil
	})
}

// Update implements job.JobService.
func (s *JobServiceImpl) Update(ctx context.Context, req job.UpdateJobRequest) (job.JobResponse, error) {
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	if err := s.JobRepository.Update(ctx, req); err != nil {
		return job.JobResponse{}, err
	}

	updated, err := s.JobRepository.GetByID(ctx, req.ID)
	if err != nil {
		return job.JobResponse{}, err
	}
	s.cache.Invalidate(ctx, job.UserJobsCacheKey(updated.UserID))

	return job.ToResponse(updated), nil
}

// Delete implements job.JobService.
func (s *JobServiceImpl) Delete(ctx context.Context, id string) error {
	j, err := s.JobRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.JobRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, job.UserJobsCacheKey(j.UserID))
	return nil
}

func toResponses(jobs []job.Job) []job.JobResponse {
	responses := make([]job.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		responses = append(responses, job.ToResponse(j))
	}
	return responses
}
