package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
)

// ViewService serves the cached read views. Writers invalidate through
// attendance.Invalidator.
type ViewService interface {
	attendance.Invalidator

	// GetDailyDashboard returns the per-day aggregate
	GetDailyDashboard(ctx context.Context, date time.Time) (DailyDashboardResponse, error)

	// GetRosterAttendance returns the day's roster joined with attendance
	GetRosterAttendance(ctx context.Context, date time.Time) (RosterAttendanceResponse, error)

	// GetEmployeeAttendance lists recent records of an employee, newest first
	GetEmployeeAttendance(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceResponse, error)

	// GetLeaveMonitoring lists every monitoring row
	GetLeaveMonitoring(ctx context.Context) ([]monitoring.MonitoringResponse, error)
}
