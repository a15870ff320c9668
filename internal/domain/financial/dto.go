package financial

import (
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateFinancialRequest struct {
	UserID         string          `json:"user_id"`
	EmploymentType string          `json:"employment_type"`
	SalaryBasic    decimal.Decimal `json:"salary_basic"`
	Allowances     Allowances      `json:"allowances"`
	Deductions     Deductions      `json:"deductions"`
	BankName       *string         `json:"bank_name,omitempty"`
	AccountName    *string         `json:"account_name,omitempty"`
	AccountNumber  *string         `json:"account_number,omitempty"`
	IBAN           *string         `json:"iban,omitempty"`
}

func (r *CreateFinancialRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	if validator.IsEmpty(r.EmploymentType) {
		r.EmploymentType = string(job.EmploymentFullTime)
	} else if !validator.IsInSlice(r.EmploymentType, job.EmploymentTypes) {
		errs.Add("employment_type", "invalid employment_type")
	}

	validateAmounts(&errs, &r.SalaryBasic, &r.Allowances, &r.Deductions)

	return errs.Err()
}

func (r *CreateFinancialRequest) ToEntity() Information {
	f := Information{
		UserID:         r.UserID,
		EmploymentType: r.EmploymentType,
		SalaryBasic:    r.SalaryBasic,
		Allowances:     r.Allowances,
		Deductions:     r.Deductions,
		BankName:       r.BankName,
		AccountName:    r.AccountName,
		AccountNumber:  r.AccountNumber,
		IBAN:           r.IBAN,
	}
	f.ComputeTotals()
	return f
}

type UpdateFinancialRequest struct {
	ID             string           `json:"-"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	SalaryBasic    *decimal.Decimal `json:"salary_basic,omitempty"`
	Allowances     *Allowances      `json:"allowances,omitempty"`
	Deductions     *Deductions      `json:"deductions,omitempty"`
	BankName       *string          `json:"bank_name,omitempty"`
	AccountName    *string          `json:"account_name,omitempty"`
	AccountNumber  *string          `json:"account_number,omitempty"`
	IBAN           *string          `json:"iban,omitempty"`
}

func (r *UpdateFinancialRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, job.EmploymentTypes) {
		errs.Add("employment_type", "invalid employment_type")
	}
	validateAmounts(&errs, r.SalaryBasic, r.Allowances, r.Deductions)

	return errs.Err()
}

// Apply copies the supplied fields onto f and recomputes its totals.
func (r *UpdateFinancialRequest) Apply(f *Information) {
	if r.EmploymentType != nil {
		f.EmploymentType = *r.EmploymentType
	}
	if r.SalaryBasic != nil {
		f.SalaryBasic = *r.SalaryBasic
	}
	if r.Allowances != nil {
		f.Allowances = *r.Allowances
	}
	if r.Deductions != nil {
		f.Deductions = *r.Deductions
	}
	if r.BankName != nil {
		f.BankName = r.BankName
	}
	if r.AccountName != nil {
		f.AccountName = r.AccountName
	}
	if r.AccountNumber != nil {
		f.AccountNumber = r.AccountNumber
	}
	if r.IBAN != nil {
		f.IBAN = r.IBAN
	}
	f.ComputeTotals()
}

func validateAmounts(errs *validator.ValidationErrors, basic *decimal.Decimal, a *Allowances, d *Deductions) {
	check := func(field string, v decimal.Decimal) {
		if v.IsNegative() {
			errs.Add(field, field+" must not be negative")
		}
	}

	if basic != nil {
		check("salary_basic", *basic)
	}
	if a != nil {
		check("allowances.house_rent", a.HouseRent)
		check("allowances.medical", a.Medical)
		check("allowances.special", a.Special)
		check("allowances.fuel", a.Fuel)
		check("allowances.phone_bill", a.PhoneBill)
		check("allowances.other", a.Other)
	}
	if d != nil {
		check("deductions.tax", d.Tax)
		check("deductions.other", d.Other)
	}
}

type FinancialResponse struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	UserFullName   *string         `json:"user_full_name,omitempty"`
	EmploymentType string          `json:"employment_type"`
	SalaryBasic    decimal.Decimal `json:"salary_basic"`
	Allowances     Allowances      `json:"allowances"`
	Deductions     Deductions      `json:"deductions"`
	AllowanceTotal decimal.Decimal `json:"allowance_total"`
	DeductionTotal decimal.Decimal `json:"deduction_total"`
	SalaryGross    decimal.Decimal `json:"salary_gross"`
	SalaryNet      decimal.Decimal `json:"salary_net"`
	BankName       *string         `json:"bank_name,omitempty"`
	AccountName    *string         `json:"account_name,omitempty"`
	AccountNumber  *string         `json:"account_number,omitempty"`
	IBAN           *string         `json:"iban,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func ToResponse(f Information) FinancialResponse {
	return FinancialResponse{
		ID:             f.ID,
		UserID:         f.UserID,
		UserFullName:   f.UserFullName,
		EmploymentType: f.EmploymentType,
		SalaryBasic:    f.SalaryBasic,
		Allowances:     f.Allowances,
		Deductions:     f.Deductions,
		AllowanceTotal: f.AllowanceTotal,
		DeductionTotal: f.DeductionTotal,
		SalaryGross:    f.SalaryGross,
		SalaryNet:      f.SalaryNet,
		BankName:       f.BankName,
		AccountName:    f.AccountName,
		AccountNumber:  f.AccountNumber,
		IBAN:           f.IBAN,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}
