package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Full access, never subject to clock auto-correction
	RoleManager  Role = "manager"  // Can view company-wide attendance
	RoleEmployee Role = "employee" // Regular employee
)

// Status is the soft-delete tag. Deleted rows stay in storage but are
// filtered once at the repository boundary.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

type User struct {
	ID            string
	Email         string
	PasswordHash  *string
	Name          *string
	Department    *string
	Position      *string
	Role          Role
	HireDate      *time.Time
	Address       *string
	Bank          *string
	AccountNumber *string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if the user can approve leave requests
func (u *User) CanApprove() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// ValidRole reports whether r is one of the assignable roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}
