package financial

import "errors"

var (
	ErrFinancialNotFound = errors.New("financial information not found")
	ErrFinancialExists   = errors.New("financial information already exists for this user")
)
