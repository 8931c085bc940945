package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedOut  = errors.New("attendance for today is already closed")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
