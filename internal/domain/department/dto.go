package department

import (
	"time"

	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
)

type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

func (r *CreateDepartmentRequest) Validate() error {
	return validateName(r.Name)
}

type UpdateDepartmentRequest struct {
	ID   string `json:"-"`
	Name string `json:"name"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	return validateName(r.Name)
}

func validateName(name string) error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs.Add("name", "name is required")
	} else if len(name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}
	return errs.Err()
}

type DepartmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
