package financial

import (
	"time"

	"github.com/shopspring/decimal"
)

type Allowances struct {
	HouseRent decimal.Decimal `json:"house_rent"`
	Medical   decimal.Decimal `json:"medical"`
	Special   decimal.Decimal `json:"special"`
	Fuel      decimal.Decimal `json:"fuel"`
	PhoneBill decimal.Decimal `json:"phone_bill"`
	Other     decimal.Decimal `json:"other"`
}

func (a Allowances) Total() decimal.Decimal {
	return decimal.Sum(a.HouseRent, a.Medical, a.Special, a.Fuel, a.PhoneBill, a.Other)
}

type Deductions struct {
	Tax   decimal.Decimal `json:"tax"`
	Other decimal.Decimal `json:"other"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.Tax.Add(d.Other)
}

// Information is the salary and bank record of a single user.
type Information struct {
	ID             string
	UserID         string
	EmploymentType string
	SalaryBasic    decimal.Decimal
	Allowances     Allowances
	Deductions     Deductions

	// Derived by ComputeTotals and persisted alongside the inputs
	AllowanceTotal decimal.Decimal
	DeductionTotal decimal.Decimal
	SalaryGross    decimal.Decimal
	SalaryNet      decimal.Decimal

	BankName      *string
	AccountName   *string
	AccountNumber *string
	IBAN          *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserFullName *string
}

// ComputeTotals refreshes the derived salary figures.
func (f *Information) ComputeTotals() {
	f.AllowanceTotal = f.Allowances.Total()
	f.DeductionTotal = f.Deductions.Total()
	f.SalaryGross = f.SalaryBasic.Add(f.AllowanceTotal)
	f.SalaryNet = f.SalaryGross.Sub(f.DeductionTotal)
}
