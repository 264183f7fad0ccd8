package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Insert stores rec in one atomic step guarded by the (employee_id, date)
	// uniqueness constraint. Returns ErrDuplicateAttendance when a record exists
	// and employee.ErrEmployeeNotFound when the employee is unknown.
	Insert(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// GetByEmployeeAndDate returns nil, nil when no record exists
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceRecord, error)

	// ListByEmployee returns the latest records of an employee, newest first
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]AttendanceRecord, error)

	// ListByDate returns every record of a day
	ListByDate(ctx context.Context, date time.Time) ([]AttendanceRecord, error)
}
