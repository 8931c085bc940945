package response

import (
	"errors"
	"net/http"

	"github.com/hamkke-hr/hr-backend-go/internal/domain/attendance"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/auth"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/leave"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/notification"
	"github.com/hamkke-hr/hr-backend-go/internal/domain/user"
	"github.com/hamkke-hr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
