package dashboard

import (
	"context"
	"time"
)

// RosterAttendanceRow is one roster entry of a day joined with the
// employee's attendance record, if any.
type RosterAttendanceRow struct {
	EmployeeID    string
	EmployeeName  string
	InvestorGroup *string
	ShiftName     string
	StartTime     string
	EndTime       string

	// Set when the employee has attended on that date
	AttendanceID     *string
	AttendanceTime   *time.Time
	AttendanceShift  *string
	AttendanceStatus *string
}

// Attended reports whether the roster row has a matching record.
func (r RosterAttendanceRow) Attended() bool {
	return r.AttendanceID != nil
}

// DashboardRepository defines the read-side joins backing the dashboard views
type DashboardRepository interface {
	// GetRosterAttendance joins the day's roster with attendance records, ordered by shift and employee
	GetRosterAttendance(ctx context.Context, date time.Time) ([]RosterAttendanceRow, error)

	// CountUnscheduledAttendance counts records of the day without any roster row
	CountUnscheduledAttendance(ctx context.Context, date time.Time) (int64, error)
}
