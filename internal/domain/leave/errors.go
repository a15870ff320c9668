package leave

import (
	"errors"
	"fmt"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrBalanceAlreadyExists = errors.New("leave balance already exists for this user")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrForbidden            = errors.New("not allowed to access this application")
)

// InsufficientBalanceError reports the days a user has left against the
// days requested. errors.Is matches it against ErrInsufficientBalance.
type InsufficientBalanceError struct {
	Available int
	Requested int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient leave balance. Available: %d days, Requested: %d days", e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}
