package financial

import "context"

type FinancialRepository interface {
	Create(ctx context.Context, f Information) (Information, error)
	GetByID(ctx context.Context, id string) (Information, error)
	GetByUserID(ctx context.Context, userID string) (Information, error)
	List(ctx context.Context, limit, offset int) ([]Information, int64, error)
	Update(ctx context.Context, f Information) (Information, error)
	Delete(ctx context.Context, id string) error
}
