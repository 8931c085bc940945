package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been approved or denied")
	ErrBalanceNotFound       = errors.New("leave balance not found")
)
