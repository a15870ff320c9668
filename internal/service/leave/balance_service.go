package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/config"
	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/metrics"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/pagination"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
)

type BalanceServiceImpl struct {
	leave.BalanceRepository
	user.UserRepository
	transactor database.Transactor
	defaults   config.LeaveConfig
	now        func() time.Time
}

func NewBalanceService(balanceRepository leave.BalanceRepository, userRepository user.UserRepository, transactor database.Transactor, defaults config.LeaveConfig) *BalanceServiceImpl {
	return &BalanceServiceImpl{
		BalanceRepository: balanceRepository,
		UserRepository:    userRepository,
		transactor:        transactor,
		defaults:          defaults,
		now:               time.Now,
	}
}

// defaultBalance is the allowance a user starts with when no row exists.
func (s *BalanceServiceImpl) defaultBalance(userID string) leave.Balance {
	return leave.NewBalance(userID, s.defaults.DefaultAnnualTotal, s.defaults.DefaultSickDays, s.now().Year())
}

// GetOrCreate implements leave.BalanceService.
func (s *BalanceServiceImpl) GetOrCreate(ctx context.Context, userID string) (leave.BalanceResponse, error) {
	if err := validateUserID(userID); err != nil {
		return leave.BalanceResponse{}, err
	}

	b, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(b), nil
}

func (s *BalanceServiceImpl) getOrCreate(ctx context.Context, userID string) (leave.Balance, error) {
	b, err := s.BalanceRepository.GetByUserID(ctx, userID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	if err := s.BalanceRepository.EnsureExists(ctx, s.defaultBalance(userID)); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return leave.Balance{}, err
		}
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	slog.Info("Leave balance created with defaults", "user_id", userID)

	b, err = s.BalanceRepository.GetByUserID(ctx, userID)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// Deduct implements leave.BalanceService.
func (s *BalanceServiceImpl) Deduct(ctx context.Context, userID string, days int) (leave.BalanceResponse, error) {
	if err := validateUserID(userID); err != nil {
		return leave.BalanceResponse{}, err
	}
	if err := validateDays(days); err != nil {
		return leave.BalanceResponse{}, err
	}

	var updated leave.Balance
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.deductLocked(ctx, userID, days)
		return err
	})
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(updated), nil
}

// deductLocked must run inside a transaction. It locks the balance row,
// reports the available days when they do not cover the request, then
// applies the conditional update.
func (s *BalanceServiceImpl) deductLocked(ctx context.Context, userID string, days int) (leave.Balance, error) {
	current, err := s.BalanceRepository.GetByUserIDForUpdate(ctx, userID)
	if err != nil {
		return leave.Balance{}, err
	}

	if current.AnnualLeaveRemaining < days {
		metrics.InsufficientBalance.Inc()
		return leave.Balance{}, &leave.InsufficientBalanceError{Available: current.AnnualLeaveRemaining, Requested: days}
	}

	updated, err := s.BalanceRepository.DeductAnnual(ctx, userID, days)
	if err != nil {
		if errors.Is(err, leave.ErrInsufficientBalance) {
			metrics.InsufficientBalance.Inc()
			return leave.Balance{}, &leave.InsufficientBalanceError{Available: current.AnnualLeaveRemaining, Requested: days}
		}
		return leave.Balance{}, fmt.Errorf("failed to deduct leave balance: %w", err)
	}

	metrics.BalanceDeductions.Inc()
	slog.Info("Annual leave deducted",
		"user_id", userID,
		"days", days,
		"remaining", updated.AnnualLeaveRemaining,
	)
	return updated, nil
}

// Restore implements leave.BalanceService.
func (s *BalanceServiceImpl) Restore(ctx context.Context, userID string, days int) (leave.BalanceResponse, error) {
	if err := validateUserID(userID); err != nil {
		return leave.BalanceResponse{}, err
	}
	if err := validateDays(days); err != nil {
		return leave.BalanceResponse{}, err
	}

	b, err := s.BalanceRepository.RestoreAnnual(ctx, userID, days)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.BalanceResponse{}, err
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to restore leave balance: %w", err)
	}

	slog.Info("Annual leave restored", "user_id", userID, "days", days, "remaining", b.AnnualLeaveRemaining)
	return leave.ToBalanceResponse(b), nil
}

// Initialize implements leave.BalanceService.
func (s *BalanceServiceImpl) Initialize(ctx context.Context, req leave.InitializeBalanceRequest) (leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.BalanceResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return leave.BalanceResponse{}, err
	}

	b := s.defaultBalance(req.UserID)
	if req.AnnualLeaveTotal != nil {
		b.AnnualLeaveTotal = *req.AnnualLeaveTotal
		b.AnnualLeaveRemaining = *req.AnnualLeaveTotal
	}
	if req.SickLeaveDays != nil {
		b.SickLeaveDays = *req.SickLeaveDays
	}
	if req.Year != nil {
		b.Year = *req.Year
	}

	created, err := s.BalanceRepository.Create(ctx, b)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceAlreadyExists) {
			return leave.BalanceResponse{}, err
		}
		return leave.BalanceResponse{}, fmt.Errorf("failed to create leave balance: %w", err)
	}
	return leave.ToBalanceResponse(created), nil
}

// GetByUser implements leave.BalanceService.
func (s *BalanceServiceImpl) GetByUser(ctx context.Context, userID string) (leave.BalanceResponse, error) {
	if err := validateUserID(userID); err != nil {
		return leave.BalanceResponse{}, err
	}

	b, err := s.BalanceRepository.GetByUserID(ctx, userID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	return leave.ToBalanceResponse(b), nil
}

// List implements leave.BalanceService.
func (s *BalanceServiceImpl) List(ctx context.Context, page, limit int) ([]leave.BalanceResponse, int64, error) {
	p := pagination.Normalize(page, limit)
	balances, total, err := s.BalanceRepository.List(ctx, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		responses = append(responses, leave.ToBalanceResponse(b))
	}
	return responses, total, nil
}

// Patch implements leave.BalanceService. Fields are written as given;
// used + remaining == total is not re-checked here.
func (s *BalanceServiceImpl) Patch(ctx context.Context, userID string, req leave.PatchBalanceRequest) (leave.BalanceResponse, error) {
	if err := validateUserID(userID); err != nil {
		return leave.BalanceResponse{}, err
	}

	b, err := s.BalanceRepository.Patch(ctx, userID, req)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	slog.Info("Leave balance patched", "user_id", userID)
	return leave.ToBalanceResponse(b), nil
}

// ResetAll implements leave.BalanceService.
func (s *BalanceServiceImpl) ResetAll(ctx context.Context, req leave.ResetBalancesRequest) (leave.ResetBalancesResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ResetBalancesResponse{}, err
	}

	total := s.defaults.DefaultAnnualTotal
	if req.AnnualLeaveTotal != nil {
		total = *req.AnnualLeaveTotal
	}
	sick := s.defaults.DefaultSickDays
	if req.SickLeaveDays != nil {
		sick = *req.SickLeaveDays
	}
	year := s.now().Year()
	if req.Year != nil {
		year = *req.Year
	}

	userIDs, err := s.UserRepository.ListIDs(ctx)
	if err != nil {
		return leave.ResetBalancesResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, userID := range userIDs {
			if err := s.BalanceRepository.Upsert(ctx, leave.NewBalance(userID, total, sick, year)); err != nil {
				return fmt.Errorf("failed to reset leave balance for user %s: %w", userID, err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.ResetBalancesResponse{}, err
	}

	metrics.BalanceResets.Inc()
	slog.Info("All leave balances reset",
		"year", year,
		"annual_leave_total", total,
		"sick_leave_days", sick,
		"count", len(userIDs),
	)

	return leave.ResetBalancesResponse{Year: year, Reset: len(userIDs)}, nil
}

func validateDays(days int) error {
	if days <= 0 {
		return validator.ValidationErrors{
			{Field: "numberOfDays", Message: "numberOfDays must be greater than zero"},
		}
	}
	return nil
}

// validateUserID rejects path ids that would fail the uuid cast in SQL.
func validateUserID(userID string) error {
	if !validator.IsValidUUID(userID) {
		return validator.ValidationErrors{
			{Field: "userId", Message: "userId must be a valid UUID"},
		}
	}
	return nil
}
