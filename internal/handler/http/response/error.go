package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hrms-app/hrms-backend-go/internal/domain/auth"
	"github.com/hrms-app/hrms-backend-go/internal/domain/certificate"
	"github.com/hrms-app/hrms-backend-go/internal/domain/department"
	"github.com/hrms-app/hrms-backend-go/internal/domain/financial"
	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Insufficient balance carries both day counts
	var insufficient *leave.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		BadRequestWithCode(w, "INSUFFICIENT_BALANCE", insufficient.Error(), map[string]string{
			"available": strconv.Itoa(insufficient.Available),
			"requested": strconv.Itoa(insufficient.Requested),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")

	// Leave domain errors
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrBalanceAlreadyExists):
		Conflict(w, "Leave balance already exists for this user")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequestWithCode(w, "INSUFFICIENT_BALANCE", "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrForbidden):
		Forbidden(w, "You are not allowed to access this application")

	// Department domain errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")

	// Job domain errors
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, job.ErrInvalidUserRef):
		BadRequest(w, "Referenced user does not exist", nil)
	case errors.Is(err, job.ErrInvalidDeptRef):
		BadRequest(w, "Referenced department does not exist", nil)

	// Financial domain errors
	case errors.Is(err, financial.ErrFinancialNotFound):
		NotFound(w, "Financial information not found")
	case errors.Is(err, financial.ErrFinancialExists):
		Conflict(w, "Financial information already exists for this user")

	// Certificate domain errors
	case errors.Is(err, certificate.ErrCertificateNotFound):
		NotFound(w, "Certificate not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, err.Error())
	}
}
