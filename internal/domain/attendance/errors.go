package attendance

import (
	"errors"
	"fmt"
)

// ConflictError is returned by the ledger guard when a commit does not happen.
type ConflictError struct {
	Reason Reason
	Err    error
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("attendance conflict: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("attendance conflict: %s", e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// Is matches any ConflictError carrying the same reason.
func (e *ConflictError) Is(target error) bool {
	t, ok := target.(*ConflictError)
	return ok && t.Reason == e.Reason
}

// AsConflict unwraps err into a *ConflictError when possible.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Attendance domain errors
var (
	// Ledger conflicts
	ErrAlreadyAttended    = &ConflictError{Reason: ReasonAlreadyAttended}
	ErrStorageUnavailable = &ConflictError{Reason: ReasonStorageUnavailable}
	ErrEmployeeNotFound   = &ConflictError{Reason: ReasonEmployeeNotFound}

	// Repository errors
	ErrDuplicateAttendance = errors.New("attendance already recorded for employee and date")
	ErrAttendanceNotFound  = errors.New("attendance record not found")
)
