package financial

import "context"

type FinancialService interface {
	Create(ctx context.Context, req CreateFinancialRequest) (FinancialResponse, error)
	Get(ctx context.Context, id string) (FinancialResponse, error)
	GetByUser(ctx context.Context, userID string) (FinancialResponse, error)
	List(ctx context.Context, page, limit int) ([]FinancialResponse, int64, error)
	Update(ctx context.Context, req UpdateFinancialRequest) (FinancialResponse, error)
	Delete(ctx context.Context, id string) error
}
