package job

import "errors"

var (
	ErrJobNotFound    = errors.New("job not found")
	ErrInvalidUserRef = errors.New("user does not exist")
	ErrInvalidDeptRef = errors.New("department does not exist")
)
