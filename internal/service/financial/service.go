package financial

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrms-app/hrms-backend-go/internal/domain/financial"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
)

type FinancialServiceImpl struct {
	financial.FinancialRepository
}

func NewFinancialService(financialRepository financial.FinancialRepository) financial.FinancialService {
	return &FinancialServiceImpl{FinancialRepository: financialRepository}
}

// Create implements financial.FinancialService.
func (s *FinancialServiceImpl) Create(ctx context.Context, req financial.CreateFinancialRequest) (financial.FinancialResponse, error) {
	if err := req.Validate(); err != nil {
		return financial.FinancialResponse{}, err
	}

	created, err := s.FinancialRepository.Create(ctx, req.ToEntity())
	if err != nil {
		return financial.FinancialResponse{}, err
	}

	slog.Info("Financial information created", "financial_id", created.ID, "user_id", created.UserID)
	return financial.ToResponse(created), nil
}

// Get implements financial.FinancialService.
func (s *FinancialServiceImpl) Get(ctx context.Context, id string) (financial.FinancialResponse, error) {
	f, err := s.FinancialRepository.GetByID(ctx, id)
	if err != nil {
		return financial.FinancialResponse{}, err
	}
	return financial.ToResponse(f), nil
}

// GetByUser implements financial.FinancialService.
func (s *FinancialServiceImpl) GetByUser(ctx context.Context, userID string) (financial.FinancialResponse, error) {
	f, err := s.FinancialRepository.GetByUserID(ctx, userID)
	if err != nil {
		return financial.FinancialResponse{}, err
	}
	return financial.ToResponse(f), nil
}

// List implements financial.FinancialService.
func (s *FinancialServiceImpl) List(ctx context.Context, page, limit int) ([]financial.FinancialResponse, int64, error) {
	p := pagination.Normalize(page, limit)
	records, total, err := s.FinancialRepository.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list financial information: %w", err)
	}

	responses := make([]financial.FinancialResponse, 0, len(records))
	for _, f := range records {
		responses = append(responses, financial.ToResponse(f))
	}
	return responses, total, nil
}

// Update implements financial.FinancialService. Totals are recomputed from
// the merged record.
func (s *FinancialServiceImpl) Update(ctx context.Context, req financial.UpdateFinancialRequest) (financial.FinancialResponse, error) {
	if err := req.Validate(); err != nil {
		return financial.FinancialResponse{}, err
	}

	current, err := s.FinancialRepository.GetByID(ctx, req.ID)
	if err != nil {
		return financial.FinancialResponse{}, err
	}
	req.Apply(&current)

	updated, err := s.FinancialRepository.Update(ctx, current)
	if err != nil {
		return financial.FinancialResponse{}, err
	}
	return financial.ToResponse(updated), nil
}

// Delete implements financial.FinancialService.
func (s *FinancialServiceImpl) Delete(ctx context.Context, id string) error {
	return s.FinancialRepository.Delete(ctx, id)
}
