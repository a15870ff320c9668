package job

import "context"

type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, int64, error)
	ListByUser(ctx context.Context, userID string) ([]Job, error)
	// LatestForUser returns the job with the latest start date or ErrJobNotFound.
	LatestForUser(ctx context.Context, userID string) (Job, error)
	Update(ctx context.Context, req UpdateJobRequest) error
	Delete(ctx context.Context, id string) error
}
