package schedule

import "errors"

var (
	ErrInvalidClockTime = errors.New("clock time must be HH:MM between 00:00 and 23:59")
	ErrUnknownShift     = errors.New("unrecognized shift name")
)
