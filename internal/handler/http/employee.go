package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/employee"
	"github.com/hamkke-hr/hr-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	UpdateMyProfile(w http.ResponseWriter, r *http.Request)
	ChangeRole(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler.
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := e.employeeService.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// Get implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := e.employeeService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, emp)
}

// Me implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	emp, err := e.employeeService.Me(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, emp)
}

// UpdateMyProfile implements EmployeeHandler.
func (e *EmployeeHandlerImpl) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var updateReq employee.UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateMyProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	emp, err := e.employeeService.UpdateMyProfile(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateMyProfile service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile updated successfully", emp)
}

// ChangeRole implements EmployeeHandler.
func (e *EmployeeHandlerImpl) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var roleReq employee.ChangeRoleRequest

	if err := json.NewDecoder(r.Body).Decode(&roleReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	emp, err := e.employeeService.ChangeRole(r.Context(), chi.URLParam(r, "id"), roleReq)
	if err != nil {
		slog.Error("ChangeRole service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Role updated successfully", emp)
}

// Delete implements EmployeeHandler.
func (e *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := e.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
