package schedule

import "time"

// RosterSchedule says an employee is expected to work a shift on a date.
// It is owned by scheduling and read-only to admission.
type RosterSchedule struct {
	ID         string
	EmployeeID string
	Date       time.Time
	ShiftName  string
	StartTime  ClockTime
	EndTime    ClockTime
	CreatedAt  time.Time
}
