package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // HR administrator - full access
	RoleManager  Role = "manager"  // Can approve leave and view staff records
	RoleEmployee Role = "employee" // Regular employee
)

var Roles = []string{string(RoleAdmin), string(RoleManager), string(RoleEmployee)}

type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FullName     string
	Phone        *string
	Role         Role
	DepartmentID *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	DepartmentName *string
}

// IsAdmin checks if user is an HR administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve requests
func (u *User) CanApprove() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
