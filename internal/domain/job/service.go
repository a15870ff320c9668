package job

import "context"

type JobService interface {
	Create(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	Get(ctx context.Context, id string) (JobResponse, error)
	List(ctx context.Context, page, limit int) ([]JobResponse, int64, error)
	ListByUser(ctx context.Context, userID string) ([]JobResponse, error)
	Update(ctx context.Context, req UpdateJobRequest) (JobResponse, error)
	Delete(ctx context.Context, id string) error
}
