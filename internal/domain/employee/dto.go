package employee

import (
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	Name          *string `json:"name"`
	Department    *string `json:"department"`
	Position      *string `json:"position"`
	Role          string  `json:"role"`
	HireDate      *string `json:"hire_date"`
	Address       *string `json:"address"`
	Bank          *string `json:"bank"`
	AccountNumber *string `json:"account_number"`
}

func NewEmployeeResponse(u user.User) EmployeeResponse {
	var hireDate *string
	if u.HireDate != nil {
		formatted := u.HireDate.Format("2006-01-02")
		hireDate = &formatted
	}
	return EmployeeResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Department:    u.Department,
		Position:      u.Position,
		Role:          string(u.Role),
		HireDate:      hireDate,
		Address:       u.Address,
		Bank:          u.Bank,
		AccountNumber: u.AccountNumber,
	}
}

type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	Department    *string `json:"department"`
	Position      *string `json:"position"`
	Address       *string `json:"address"`
	Bank          *string `json:"bank"`
	AccountNumber *string `json:"account_number"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func (r ChangeRoleRequest) Validate() error {
	if !user.ValidRole(user.Role(r.Role)) {
		return validator.ValidationErrors{{Field: "role", Message: "must be employee, manager or admin"}}
	}
	return nil
}
