package job

import (
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
)

type CreateJobRequest struct {
	UserID         string  `json:"user_id"`
	DepartmentID   *string `json:"department_id,omitempty"`
	JobTitle       string  `json:"job_title"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
	EmploymentType string  `json:"employment_type"`
}

func (r *CreateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs.Add("user_id", "user_id is required")
	} else if !validator.IsValidUUID(r.UserID) {
		errs.Add("user_id", "user_id must be a valid UUID")
	}

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}

	if validator.IsEmpty(r.JobTitle) {
		errs.Add("job_title", "job_title is required")
	} else if len(r.JobTitle) > 100 {
		errs.Add("job_title", "job_title must not exceed 100 characters")
	}

	start, startOK := time.Time{}, false
	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if start, startOK = validator.IsValidDate(r.StartDate); !startOK {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	if r.EndDate != nil {
		end, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		} else if startOK && end.Before(start) {
			errs.Add("end_date", "end_date must not be before start_date")
		}
	}

	if validator.IsEmpty(r.EmploymentType) {
		r.EmploymentType = string(EmploymentFullTime)
	} else if !validator.IsInSlice(r.EmploymentType, EmploymentTypes) {
		errs.Add("employment_type", "invalid employment_type")
	}

	return errs.Err()
}

type UpdateJobRequest struct {
	ID             string  `json:"-"`
	DepartmentID   *string `json:"department_id,omitempty"`
	JobTitle       *string `json:"job_title,omitempty"`
	StartDate      *string `json:"start_date,omitempty"`
	EndDate        *string `json:"end_date,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
}

func (r *UpdateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if r.JobTitle != nil && validator.IsEmpty(*r.JobTitle) {
		errs.Add("job_title", "job_title must not be empty")
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, EmploymentTypes) {
		errs.Add("employment_type", "invalid employment_type")
	}

	return errs.Err()
}

type JobResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	DepartmentID   *string `json:"department_id,omitempty"`
	DepartmentName *string `json:"department_name,omitempty"`
	JobTitle       string  `json:"job_title"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date,omitempty"`
	EmploymentType string  `json:"employment_type"`
}

func ToResponse(j Job) JobResponse {
	resp := JobResponse{
		ID:             j.ID,
		UserID:         j.UserID,
		DepartmentID:   j.DepartmentID,
		DepartmentName: j.DepartmentName,
		JobTitle:       j.JobTitle,
		StartDate:      j.StartDate.Format(validator.DateLayout),
		EmploymentType: string(j.EmploymentType),
	}
	if j.EndDate != nil {
		end := j.EndDate.Format(validator.DateLayout)
		resp.EndDate = &end
	}
	return resp
}
