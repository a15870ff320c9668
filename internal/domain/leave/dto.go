package leave

import (
	"strings"
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
)

// Application payloads keep the camelCase field names the web client sends.

type CreateApplicationRequest struct {
	UserID                   string  `json:"userId"`
	Type                     string  `json:"type"`
	StartDate                string  `json:"startDate"`
	EndDate                  string  `json:"endDate"`
	Reason                   string  `json:"reason"`
	ApprovedBy               *string `json:"approvedBy,omitempty"`
	BusinessLeavePurpose     *string `json:"businessLeavePurpose,omitempty"`
	BusinessLeaveDestination *string `json:"businessLeaveDestination,omitempty"`

	// Populated by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
	Days  int       `json:"-"`
}

// Validate checks required fields, the leave type and the date span.
// Business leave details are checked separately once the user is known.
func (r *CreateApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("userId", "userId is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("userId", "userId must be a valid UUID")
	}

	if validator.IsEmpty(r.Type) {
		errs.Add("type", "type is required")
	} else if !validator.IsInSlice(r.Type, Types) {
		errs.Add("type", "type must be one of: "+strings.Join(Types, ", "))
	}

	var startOK, endOK bool
	if validator.IsEmpty(r.StartDate) {
		errs.Add("startDate", "startDate is required")
	} else if r.Start, startOK = ParseDate(r.StartDate); !startOK {
		errs.Add("startDate", "startDate must be a date in YYYY-MM-DD format")
	}
	if validator.IsEmpty(r.EndDate) {
		errs.Add("endDate", "endDate is required")
	} else if r.End, endOK = ParseDate(r.EndDate); !endOK {
		errs.Add("endDate", "endDate must be a date in YYYY-MM-DD format")
	}

	if startOK && endOK {
		r.Days = DaysInclusive(r.Start, r.End)
		if r.Days <= 0 {
			errs.Add("endDate", "End date must be after start date")
		}
	}

	return errs.Err()
}

// ValidateBusinessLeave requires purpose and destination for business leave.
func (r *CreateApplicationRequest) ValidateBusinessLeave() error {
	if Type(r.Type) != TypeBusiness {
		return nil
	}

	var errs validator.ValidationErrors
	if r.BusinessLeavePurpose == nil || validator.IsEmpty(*r.BusinessLeavePurpose) {
		errs.Add("businessLeavePurpose", "businessLeavePurpose is required for Business Leave")
	}
	if r.BusinessLeaveDestination == nil || validator.IsEmpty(*r.BusinessLeaveDestination) {
		errs.Add("businessLeaveDestination", "businessLeaveDestination is required for Business Leave")
	}
	return errs.Err()
}

// UpdateApplicationRequest is a partial update. Dates and type are fixed
// once the application exists.
type UpdateApplicationRequest struct {
	Status                   *string `json:"status,omitempty"`
	Reason                   *string `json:"reason,omitempty"`
	ApprovedBy               *string `json:"approvedBy,omitempty"`
	BusinessLeavePurpose     *string `json:"businessLeavePurpose,omitempty"`
	BusinessLeaveDestination *string `json:"businessLeaveDestination,omitempty"`
}

func (r *UpdateApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}

	return errs.Err()
}

// NewStatus returns the status the application ends up with after the patch.
func (r *UpdateApplicationRequest) NewStatus(current Status) Status {
	if r.Status == nil {
		return current
	}
	return Status(*r.Status)
}

func (r *UpdateApplicationRequest) IsEmpty() bool {
	return r.Status == nil && r.Reason == nil && r.ApprovedBy == nil &&
		r.BusinessLeavePurpose == nil && r.BusinessLeaveDestination == nil
}

type ApplicationResponse struct {
	ID                       string    `json:"id"`
	UserID                   string    `json:"userId"`
	Name                     string    `json:"name"`
	PositionTitle            *string   `json:"positionTitle"`
	StartDate                string    `json:"startDate"`
	EndDate                  string    `json:"endDate"`
	NumberOfDays             int       `json:"numberOfDays"`
	Status                   string    `json:"status"`
	Type                     string    `json:"type"`
	Reason                   string    `json:"reason"`
	ApprovedBy               *string   `json:"approvedBy"`
	BusinessLeavePurpose     *string   `json:"businessLeavePurpose,omitempty"`
	BusinessLeaveDestination *string   `json:"businessLeaveDestination,omitempty"`
	DeductedFromBalance      bool      `json:"deductedFromBalance"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

func ToApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                       a.ID,
		UserID:                   a.UserID,
		Name:                     a.Name,
		PositionTitle:            a.PositionTitle,
		StartDate:                a.StartDate.Format(validator.DateLayout),
		EndDate:                  a.EndDate.Format(validator.DateLayout),
		NumberOfDays:             a.NumberOfDays,
		Status:                   string(a.Status),
		Type:                     string(a.Type),
		Reason:                   a.Reason,
		ApprovedBy:               a.ApprovedBy,
		BusinessLeavePurpose:     a.BusinessLeavePurpose,
		BusinessLeaveDestination: a.BusinessLeaveDestination,
		DeductedFromBalance:      a.DeductedFromBalance,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}

type ListApplicationResponse struct {
	TotalCount   int64                 `json:"totalCount"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"totalPages"`
	Applications []ApplicationResponse `json:"applications"`
}

// ApplicationFilter narrows application listings.
type ApplicationFilter struct {
	UserID    *string
	Status    *string
	Type      *string
	StartDate *string // applications ending on or after
	EndDate   *string // applications starting on or before
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

var applicationSortFields = []string{"created_at", "start_date", "end_date", "number_of_days", "status", "type"}

func (f *ApplicationFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.UserID != nil && !validator.IsValidUUID(*f.UserID) {
		errs.Add("userId", "userId must be a valid UUID")
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}
	if f.Type != nil && !validator.IsInSlice(*f.Type, Types) {
		errs.Add("type", "invalid leave type")
	}
	if f.StartDate != nil {
		if _, ok := ParseDate(*f.StartDate); !ok {
			errs.Add("startDate", "startDate must be a date in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := ParseDate(*f.EndDate); !ok {
			errs.Add("endDate", "endDate must be a date in YYYY-MM-DD format")
		}
	}
	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, applicationSortFields) {
		errs.Add("sort", "cannot sort by "+f.SortBy)
	}
	if f.SortOrder != "" && f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs.Add("sort", "sort order must be asc or desc")
	}

	return errs.Err()
}

// Balance payloads

type InitializeBalanceRequest struct {
	UserID           string `json:"userId"`
	AnnualLeaveTotal *int   `json:"annualLeaveTotal,omitempty"`
	SickLeaveDays    *int   `json:"sickLeaveDays,omitempty"`
	Year             *int   `json:"year,omitempty"`
}

func (r *InitializeBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("userId", "userId is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("userId", "userId must be a valid UUID")
	}
	validateAllowance(&errs, r.AnnualLeaveTotal, r.SickLeaveDays, r.Year)

	return errs.Err()
}

// PatchBalanceRequest overwrites the supplied fields as-is.
type PatchBalanceRequest struct {
	AnnualLeaveTotal     *int `json:"annualLeaveTotal,omitempty"`
	AnnualLeaveUsed      *int `json:"annualLeaveUsed,omitempty"`
	AnnualLeaveRemaining *int `json:"annualLeaveRemaining,omitempty"`
	SickLeaveDays        *int `json:"sickLeaveDays,omitempty"`
	Year                 *int `json:"year,omitempty"`
}

func (r *PatchBalanceRequest) IsEmpty() bool {
	return r.AnnualLeaveTotal == nil && r.AnnualLeaveUsed == nil && r.AnnualLeaveRemaining == nil &&
		r.SickLeaveDays == nil && r.Year == nil
}

type ResetBalancesRequest struct {
	AnnualLeaveTotal *int `json:"annualLeaveTotal,omitempty"`
	SickLeaveDays    *int `json:"sickLeaveDays,omitempty"`
	Year             *int `json:"year,omitempty"`
}

func (r *ResetBalancesRequest) Validate() error {
	var errs validator.ValidationErrors
	validateAllowance(&errs, r.AnnualLeaveTotal, r.SickLeaveDays, r.Year)
	return errs.Err()
}

func validateAllowance(errs *validator.ValidationErrors, total, sick, year *int) {
	if total != nil && *total < 0 {
		errs.Add("annualLeaveTotal", "annualLeaveTotal must not be negative")
	}
	if sick != nil && *sick < 0 {
		errs.Add("sickLeaveDays", "sickLeaveDays must not be negative")
	}
	if year != nil && *year <= 0 {
		errs.Add("year", "year must be a positive integer")
	}
}

type BalanceResponse struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"userId"`
	AnnualLeaveTotal     int       `json:"annualLeaveTotal"`
	AnnualLeaveUsed      int       `json:"annualLeaveUsed"`
	AnnualLeaveRemaining int       `json:"annualLeaveRemaining"`
	SickLeaveDays        int       `json:"sickLeaveDays"`
	Year                 int       `json:"year"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func ToBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:                   b.ID,
		UserID:               b.UserID,
		AnnualLeaveTotal:     b.AnnualLeaveTotal,
		AnnualLeaveUsed:      b.AnnualLeaveUsed,
		AnnualLeaveRemaining: b.AnnualLeaveRemaining,
		SickLeaveDays:        b.SickLeaveDays,
		Year:                 b.Year,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

type ResetBalancesResponse struct {
	Year  int `json:"year"`
	Reset int `json:"reset"`
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and keeps only the
// calendar date.
func ParseDate(s string) (time.Time, bool) {
	if d, ok := validator.IsValidDate(s); ok {
		return d, true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}
