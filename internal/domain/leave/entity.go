package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

type Type string

const (
	TypeAnnual              Type = "Annual Leave"
	TypeSickWithDocument    Type = "Sick Leave with document"
	TypeSickWithoutDocument Type = "Sick Leave without document"
	TypeMaternity           Type = "Maternity Leave"
	TypePaternity           Type = "Paternity Leave"
	TypeMarriage            Type = "Marriage Leave"
	TypeBereavement         Type = "Bereavement Leave"
	TypeUnpaid              Type = "Unpaid Leave"
	TypeBusiness            Type = "Business Leave"
	TypeRemoteWork          Type = "Remote Work"
)

var Types = []string{
	string(TypeAnnual),
	string(TypeSickWithDocument),
	string(TypeSickWithoutDocument),
	string(TypeMaternity),
	string(TypePaternity),
	string(TypeMarriage),
	string(TypeBereavement),
	string(TypeUnpaid),
	string(TypeBusiness),
	string(TypeRemoteWork),
}

// RequiresDeduction reports whether an application of this type consumes
// annual leave balance when it is submitted.
func (t Type) RequiresDeduction() bool {
	return t == TypeAnnual || t == TypeSickWithoutDocument
}

// Application entity
type Application struct {
	ID            string
	UserID        string
	Name          string
	PositionTitle *string

	StartDate    time.Time
	EndDate      time.Time
	NumberOfDays int

	Status     Status
	Type       Type
	Reason     string
	ApprovedBy *string

	BusinessLeavePurpose     *string
	BusinessLeaveDestination *string

	// Set once at creation, read when the application leaves or enters Rejected.
	DeductedFromBalance bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsBalance reports whether the application currently holds its days
// against the owner's annual leave balance.
func (a Application) HoldsBalance() bool {
	return a.DeductedFromBalance && a.Status != StatusRejected
}

// Balance entity. One row per user.
type Balance struct {
	ID                   string
	UserID               string
	AnnualLeaveTotal     int
	AnnualLeaveUsed      int
	AnnualLeaveRemaining int
	SickLeaveDays        int
	Year                 int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewBalance builds a fresh balance with nothing used.
func NewBalance(userID string, total, sickDays, year int) Balance {
	return Balance{
		UserID:               userID,
		AnnualLeaveTotal:     total,
		AnnualLeaveUsed:      0,
		AnnualLeaveRemaining: total,
		SickLeaveDays:        sickDays,
		Year:                 year,
	}
}

// DaysInclusive counts calendar days from start to end, both included.
// Time of day and location are ignored.
func DaysInclusive(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	// Unix seconds rather than Sub, whose Duration saturates past ~292 years.
	return int((e.Unix()-s.Unix())/86400) + 1
}
