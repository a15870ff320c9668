package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-app/hrms-backend-go/internal/domain/financial"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type financialRepositoryImpl struct {
	db *database.DB
}

func NewFinancialRepository(db *database.DB) financial.FinancialRepository {
	return &financialRepositoryImpl{db: db}
}

const financialSelect = `
	SELECT f.id, f.user_id, f.employment_type, f.salary_basic,
		   f.allowance_house_rent, f.allowance_medical, f.allowance_special,
		   f.allowance_fuel, f.allowance_phone_bill, f.allowance_other, f.allowance_total,
		   f.deduction_tax, f.deduction_other, f.deduction_total,
		   f.salary_gross, f.salary_net,
		   f.bank_name, f.account_name, f.account_number, f.iban,
		   f.created_at, f.updated_at, u.full_name
	FROM financial_information f
	JOIN users u ON u.id = f.user_id
`

func scanFinancial(row pgx.Row) (financial.Information, error) {
	var f financial.Information
	err := row.Scan(
		&f.ID, &f.UserID, &f.EmploymentType, &f.SalaryBasic,
		&f.Allowances.HouseRent, &f.Allowances.Medical, &f.Allowances.Special,
		&f.Allowances.Fuel, &f.Allowances.PhoneBill, &f.Allowances.Other, &f.AllowanceTotal,
		&f.Deductions.Tax, &f.Deductions.Other, &f.DeductionTotal,
		&f.SalaryGross, &f.SalaryNet,
		&f.BankName, &f.AccountName, &f.AccountNumber, &f.IBAN,
		&f.CreatedAt, &f.UpdatedAt, &f.UserFullName,
	)
	return f, err
}

func financialNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return financial.ErrFinancialNotFound
	}
	return err
}

// Create implements financial.FinancialRepository.
func (r *financialRepositoryImpl) Create(ctx context.Context, f financial.Information) (financial.Information, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO financial_information (
			id, user_id, employment_type, salary_basic,
			allowance_house_rent, allowance_medical, allowance_special,
			allowance_fuel, allowance_phone_bill, allowance_other, allowance_total,
			deduction_tax, deduction_other, deduction_total,
			salary_gross, salary_net,
			bank_name, account_name, account_number, iban
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14,
			$15, $16,
			$17, $18, $19, $20
		) RETURNING created_at, updated_at
	`

	f.ID = newID()
	err := q.QueryRow(ctx, query,
		f.ID, f.UserID, f.EmploymentType, f.SalaryBasic,
		f.Allowances.HouseRent, f.Allowances.Medical, f.Allowances.Special,
		f.Allowances.Fuel, f.Allowances.PhoneBill, f.Allowances.Other, f.AllowanceTotal,
		f.Deductions.Tax, f.Deductions.Other, f.DeductionTotal,
		f.SalaryGross, f.SalaryNet,
		f.BankName, f.AccountName, f.AccountNumber, f.IBAN,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return financial.Information{}, financial.ErrFinancialExists
		case isForeignKeyViolation(err):
			return financial.Information{}, user.ErrUserNotFound
		}
		return financial.Information{}, err
	}

	return f, nil
}

// GetByID implements financial.FinancialRepository.
func (r *financialRepositoryImpl) GetByID(ctx context.Context, id string) (financial.Information, error) {
	q := GetQuerier(ctx, r.db)

	f, err := scanFinancial(q.QueryRow(ctx, financialSelect+` WHERE f.id = $1`, id))
	if err != nil {
		return financial.Information{}, financialNotFound(err)
	}
	return f, nil
}

// GetByUserID implements financial.FinancialRepository.
func (r *financialRepositoryImpl) GetByUserID(ctx context.Context, userID string) (financial.Information, error) {
	q := GetQuerier(ctx, r.db)

	f, err := scanFinancial(q.QueryRow(ctx, financialSelect+` WHERE f.user_id = $1`, userID))
	if err != nil {
		return financial.Information{}, financialNotFound(err)
	}
	return f, nil
}

// List implements financial.FinancialRepository.
func (r *financialRepositoryImpl) List(ctx context.Context, limit, offset int) ([]financial.Information, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM financial_information`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count financial information: %w", err)
	}

	rows, err := q.Query(ctx, financialSelect+` ORDER BY u.full_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query financial information: %w", err)
	}
	defer rows.Close()

	records := make([]financial.Information, 0)
	for rows.Next() {
		f, err := scanFinancial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan financial information: %w", err)
		}
		records = append(records, f)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, total, nil
}

// Update implements financial.FinancialRepository. Every column is rewritten
// so the stored totals always match the stored components.
func (r *financialRepositoryImpl) Update(ctx context.Context, f financial.Information) (financial.Information, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE financial_information SET
			employment_type = $1, salary_basic = $2,
			allowance_house_rent = $3, allowance_medical = $4, allowance_special = $5,
			allowance_fuel = $6, allowance_phone_bill = $7, allowance_other = $8, allowance_total = $9,
			deduction_tax = $10, deduction_other = $11, deduction_total = $12,
			salary_gross = $13, salary_net = $14,
			bank_name = $15, account_name = $16, account_number = $17, iban = $18,
			updated_at = NOW()
		WHERE id = $19
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		f.EmploymentType, f.SalaryBasic,
		f.Allowances.HouseRent, f.Allowances.Medical, f.Allowances.Special,
		f.Allowances.Fuel, f.Allowances.PhoneBill, f.Allowances.Other, f.AllowanceTotal,
		f.Deductions.Tax, f.Deductions.Other, f.DeductionTotal,
		f.SalaryGross, f.SalaryNet,
		f.BankName, f.AccountName, f.AccountNumber, f.IBAN,
		f.ID,
	).Scan(&f.UpdatedAt)
	if err != nil {
		return financial.Information{}, financialNotFound(err)
	}

	return f, nil
}

// Delete implements financial.FinancialRepository.
func (r *financialRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM financial_information WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return financial.ErrFinancialNotFound
	}
	return nil
}
