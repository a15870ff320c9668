package job

import "time"

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full Time"
	EmploymentPartTime   EmploymentType = "Part Time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
)

var EmploymentTypes = []string{
	string(EmploymentFullTime),
	string(EmploymentPartTime),
	string(EmploymentContract),
	string(EmploymentInternship),
}

// Job is one position a user has held. The most recent start date wins.
type Job struct {
	ID             string
	UserID         string
	DepartmentID   *string
	JobTitle       string
	StartDate      time.Time
	EndDate        *time.Time
	EmploymentType EmploymentType
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join
	DepartmentName *string
}

// UserJobsCacheKey names the cached job list of one user.
func UserJobsCacheKey(userID string) string {
	return "jobs:user:" + userID
}
