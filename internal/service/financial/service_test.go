package financial

import (
	"context"
	"testing"

	"github.com/hrms-app/hrms-backend-go/internal/domain/financial"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "0190a5d2-7c1e-7000-8000-000000000001"

type fakeFinancialRepo struct {
	financial.FinancialRepository
	records map[string]financial.Information
}

func (f *fakeFinancialRepo) Create(ctx context.Context, info financial.Information) (financial.Information, error) {
	for _, r := range f.records {
		if r.UserID == info.UserID {
			return financial.Information{}, financial.ErrFinancialExists
		}
	}
	info.ID = "fin-1"
	f.records[info.ID] = info
	return info, nil
}

func (f *fakeFinancialRepo) GetByID(ctx context.Context, id string) (financial.Information, error) {
	r, ok := f.records[id]
	if !ok {
		return financial.Information{}, financial.ErrFinancialNotFound
	}
	return r, nil
}

func (f *fakeFinancialRepo) Update(ctx context.Context, info financial.Information) (financial.Information, error) {
	f.records[info.ID] = info
	return info, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCreate_ComputesTotals(t *testing.T) {
	svc := NewFinancialService(&fakeFinancialRepo{records: map[string]financial.Information{}})

	resp, err := svc.Create(context.Background(), financial.CreateFinancialRequest{
		UserID:      userID,
		SalaryBasic: dec("5000.00"),
		Allowances:  financial.Allowances{HouseRent: dec("1000"), Fuel: dec("150.50")},
		Deductions:  financial.Deductions{Tax: dec("700.25")},
	})
	require.NoError(t, err)

	assert.Equal(t, "Full Time", resp.EmploymentType)
	assert.True(t, dec("1150.50").Equal(resp.AllowanceTotal))
	assert.True(t, dec("6150.50").Equal(resp.SalaryGross))
	assert.True(t, dec("5450.25").Equal(resp.SalaryNet))
}

func TestCreate_DuplicateAndNegative(t *testing.T) {
	repo := &fakeFinancialRepo{records: map[string]financial.Information{}}
	svc := NewFinancialService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, financial.CreateFinancialRequest{UserID: userID, SalaryBasic: dec("100")})
	require.NoError(t, err)

	_, err = svc.Create(ctx, financial.CreateFinancialRequest{UserID: userID, SalaryBasic: dec("100")})
	assert.ErrorIs(t, err, financial.ErrFinancialExists)

	_, err = svc.Create(ctx, financial.CreateFinancialRequest{UserID: userID, SalaryBasic: dec("-1")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "salary_basic")
}

func TestUpdate_RecomputesTotals(t *testing.T) {
	repo := &fakeFinancialRepo{records: map[string]financial.Information{}}
	svc := NewFinancialService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, financial.CreateFinancialRequest{UserID: userID, SalaryBasic: dec("3000")})
	require.NoError(t, err)

	basic := dec("3500")
	resp, err := svc.Update(ctx, financial.UpdateFinancialRequest{
		ID:          created.ID,
		SalaryBasic: &basic,
		Deductions:  &financial.Deductions{Tax: dec("500")},
	})
	require.NoError(t, err)
	assert.True(t, dec("3500").Equal(resp.SalaryGross))
	assert.True(t, dec("3000").Equal(resp.SalaryNet))

	_, err = svc.Update(ctx, financial.UpdateFinancialRequest{ID: "missing"})
	assert.ErrorIs(t, err, financial.ErrFinancialNotFound)
}
