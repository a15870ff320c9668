package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

const balanceColumns = `
	id, user_id, annual_leave_total, annual_leave_used, annual_leave_remaining,
	sick_leave_days, year, created_at, updated_at
`

func scanBalance(row pgx.Row) (leave.Balance, error) {
	var b leave.Balance
	err := row.Scan(
		&b.ID, &b.UserID, &b.AnnualLeaveTotal, &b.AnnualLeaveUsed, &b.AnnualLeaveRemaining,
		&b.SickLeaveDays, &b.Year, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func balanceNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.ErrBalanceNotFound
	}
	return err
}

// EnsureExists implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) EnsureExists(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balance (
			id, user_id, annual_leave_total, annual_leave_used, annual_leave_remaining,
			sick_leave_days, year
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := q.Exec(ctx, query,
		newID(), b.UserID, b.AnnualLeaveTotal, b.AnnualLeaveUsed, b.AnnualLeaveRemaining,
		b.SickLeaveDays, b.Year,
	)
	if isForeignKeyViolation(err) {
		return user.ErrUserNotFound
	}
	return err
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Create(ctx context.Context, b leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balance (
			id, user_id, annual_leave_total, annual_leave_used, annual_leave_remaining,
			sick_leave_days, year
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	b.ID = newID()
	err := q.QueryRow(ctx, query,
		b.ID, b.UserID, b.AnnualLeaveTotal, b.AnnualLeaveUsed, b.AnnualLeaveRemaining,
		b.SickLeaveDays, b.Year,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return leave.Balance{}, leave.ErrBalanceAlreadyExists
		case isForeignKeyViolation(err):
			return leave.Balance{}, user.ErrUserNotFound
		}
		return leave.Balance{}, err
	}

	return b, nil
}

// GetByUserID implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByUserID(ctx context.Context, userID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + balanceColumns + ` FROM leave_balance WHERE user_id = $1`

	b, err := scanBalance(q.QueryRow(ctx, query, userID))
	if err != nil {
		return leave.Balance{}, balanceNotFound(err)
	}
	return b, nil
}

// GetByUserIDForUpdate implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByUserIDForUpdate(ctx context.Context, userID string) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + balanceColumns + ` FROM leave_balance WHERE user_id = $1 FOR UPDATE`

	b, err := scanBalance(q.QueryRow(ctx, query, userID))
	if err != nil {
		return leave.Balance{}, balanceNotFound(err)
	}
	return b, nil
}

// List implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) List(ctx context.Context, limit, offset int) ([]leave.Balance, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_balance`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave balances: %w", err)
	}

	query := `SELECT ` + balanceColumns + `
		FROM leave_balance
		ORDER BY year DESC, created_at
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.Balance, 0)
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return balances, total, nil
}

// DeductAnnual implements leave.BalanceRepository. The remaining check and the
// write happen in one statement, so concurrent deductions cannot overdraw.
func (r *leaveBalanceRepositoryImpl) DeductAnnual(ctx context.Context, userID string, days int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balance
		SET annual_leave_used = annual_leave_used + $1,
			annual_leave_remaining = annual_leave_remaining - $1,
			updated_at = NOW()
		WHERE user_id = $2
		AND annual_leave_remaining >= $1
		RETURNING ` + balanceColumns

	b, err := scanBalance(q.QueryRow(ctx, query, days, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrInsufficientBalance
		}
		return leave.Balance{}, err
	}
	return b, nil
}

// RestoreAnnual implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) RestoreAnnual(ctx context.Context, userID string, days int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balance
		SET annual_leave_used = annual_leave_used - $1,
			annual_leave_remaining = annual_leave_remaining + $1,
			updated_at = NOW()
		WHERE user_id = $2
		RETURNING ` + balanceColumns

	b, err := scanBalance(q.QueryRow(ctx, query, days, userID))
	if err != nil {
		return leave.Balance{}, balanceNotFound(err)
	}
	return b, nil
}

// Patch implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Patch(ctx context.Context, userID string, req leave.PatchBalanceRequest) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})

	if req.AnnualLeaveTotal != nil {
		updates["annual_leave_total"] = *req.AnnualLeaveTotal
	}
	if req.AnnualLeaveUsed != nil {
		updates["annual_leave_used"] = *req.AnnualLeaveUsed
	}
	if req.AnnualLeaveRemaining != nil {
		updates["annual_leave_remaining"] = *req.AnnualLeaveRemaining
	}
	if req.SickLeaveDays != nil {
		updates["sick_leave_days"] = *req.SickLeaveDays
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}

	if len(updates) == 0 {
		return r.GetByUserID(ctx, userID)
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE leave_balance SET " +
		strings.Join(setClauses, ", ") +
		fmt.Sprintf(" WHERE user_id = $%d RETURNING ", i) + balanceColumns
	args = append(args, userID)

	b, err := scanBalance(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return leave.Balance{}, balanceNotFound(err)
	}
	return b, nil
}

// Upsert implements leave.BalanceRepository.
func (r *leaveBalanceRepositoryImpl) Upsert(ctx context.Context, b leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balance (
			id, user_id, annual_leave_total, annual_leave_used, annual_leave_remaining,
			sick_leave_days, year
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			annual_leave_total = EXCLUDED.annual_leave_total,
			annual_leave_used = EXCLUDED.annual_leave_used,
			annual_leave_remaining = EXCLUDED.annual_leave_remaining,
			sick_leave_days = EXCLUDED.sick_leave_days,
			year = EXCLUDED.year,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		newID(), b.UserID, b.AnnualLeaveTotal, b.AnnualLeaveUsed, b.AnnualLeaveRemaining,
		b.SickLeaveDays, b.Year,
	)
	return err
}
