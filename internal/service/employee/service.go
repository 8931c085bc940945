package employee

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/employee"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
)

type EmployeeServiceImpl struct {
	userRepo user.UserRepository
}

func NewEmployeeService(userRepo user.UserRepository) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{userRepo: userRepo}
}

func callerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

// List implements employee.EmployeeService.
func (e *EmployeeServiceImpl) List(ctx context.Context, search string) ([]employee.EmployeeResponse, error) {
	users, err := e.userRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(users))
	q := strings.ToLower(search)
	for _, u := range users {
		if q != "" && !matches(u, q) {
			continue
		}
		responses = append(responses, employee.NewEmployeeResponse(u))
	}
	return responses, nil
}

func matches(u user.User, q string) bool {
	if strings.Contains(strings.ToLower(u.Email), q) {
		return true
	}
	for _, field := range []*string{u.Name, u.Department, u.Position} {
		if field != nil && strings.Contains(strings.ToLower(*field), q) {
			return true
		}
	}
	return false
}

// Get implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	u, err := e.userRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(u), nil
}

// Me implements employee.EmployeeService.
func (e *EmployeeServiceImpl) Me(ctx context.Context) (employee.EmployeeResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return e.Get(ctx, userID)
}

// UpdateMyProfile implements employee.EmployeeService. Only fields
// present in the request are changed.
func (e *EmployeeServiceImpl) UpdateMyProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.EmployeeResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	u, err := e.userRepo.GetByID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		u.Name = req.Name
	}
	if req.Department != nil {
		u.Department = req.Department
	}
	if req.Position != nil {
		u.Position = req.Position
	}
	if req.Address != nil {
		u.Address = req.Address
	}
	if req.Bank != nil {
		u.Bank = req.Bank
	}
	if req.AccountNumber != nil {
		u.AccountNumber = req.AccountNumber
	}

	if err := e.userRepo.UpdateProfile(ctx, u); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(u), nil
}

// ChangeRole implements employee.EmployeeService.
func (e *EmployeeServiceImpl) ChangeRole(ctx context.Context, id string, req employee.ChangeRoleRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	u, err := e.userRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := e.userRepo.UpdateRole(ctx, id, user.Role(req.Role)); err != nil {
		return employee.EmployeeResponse{}, err
	}
	u.Role = user.Role(req.Role)
	return employee.NewEmployeeResponse(u), nil
}

// Delete implements employee.EmployeeService. The row survives as a
// tombstone so historical attendance and leave keep their joins.
func (e *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	callerUserID, err := callerID(ctx)
	if err != nil {
		return err
	}
	if callerUserID == id {
		return fmt.Errorf("cannot delete your own account")
	}
	return e.userRepo.SoftDelete(ctx, id)
}
