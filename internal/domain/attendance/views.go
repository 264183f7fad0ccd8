package attendance

import "time"

// Cached view keys invalidated by a successful commit.
const (
	ViewEmployeePrefix         = "attendance:employee:"
	ViewDailyDashboardPrefix   = "dashboard:daily:"
	ViewRosterAttendancePrefix = "roster-attendance:"
	ViewLeaveMonitoring        = "leave-monitoring"
)

func EmployeeViewKey(employeeID string) string {
	return ViewEmployeePrefix + employeeID
}

func DailyDashboardKey(date time.Time) string {
	return ViewDailyDashboardPrefix + date.Format("2006-01-02")
}

func RosterAttendanceKey(date time.Time) string {
	return ViewRosterAttendancePrefix + date.Format("2006-01-02")
}

// CommitViewKeys lists every view depending on a record of employeeID on date.
func CommitViewKeys(employeeID string, date time.Time) []string {
	return []string{
		EmployeeViewKey(employeeID),
		DailyDashboardKey(date),
		RosterAttendanceKey(date),
	}
}
