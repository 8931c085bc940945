package employee

import "context"

// EmployeeService defines roster and profile operations over active user
// accounts. Soft-deleted accounts never surface here.
type EmployeeService interface {
	// List returns active employees, name ascending, optionally filtered
	// by a case-insensitive search over name, email, department and
	// position.
	List(ctx context.Context, search string) ([]EmployeeResponse, error)

	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// Me returns the caller's own profile.
	Me(ctx context.Context) (EmployeeResponse, error)

	// UpdateMyProfile patches the caller's profile fields.
	UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (EmployeeResponse, error)

	// ChangeRole reassigns an employee's role (admin).
	ChangeRole(ctx context.Context, id string, req ChangeRoleRequest) (EmployeeResponse, error)

	// Delete soft-deletes an employee (admin).
	Delete(ctx context.Context, id string) error
}
