package monitoring

import "errors"

var (
	ErrMonitoringNotFound  = errors.New("leave monitoring row not found")
	ErrAlreadyEnrolled     = errors.New("employee already has a leave monitoring row")
	ErrInvalidLeaveOption  = errors.New("leave option must be 35 or 70")
	ErrLeaveEndBeforeStart = errors.New("leave end date must not be before the last leave date")
	ErrStaleRow            = errors.New("leave monitoring row changed during recompute")
)
