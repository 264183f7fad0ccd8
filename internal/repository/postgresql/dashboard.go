package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

func NewDashboardRepository(db *database.DB, loc *time.Location) dashboard.DashboardRepository {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardRepositoryImpl{db: db, loc: loc}
}

// GetRosterAttendance joins roster rows with the day's records in single query
func (r *dashboardRepositoryImpl) GetRosterAttendance(ctx context.Context, date time.Time) ([]dashboard.RosterAttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			rs.employee_id,
			COALESCE(e.full_name, ''),
			e.investor_group,
			rs.shift_name,
			to_char(rs.start_time, 'HH24:MI'),
			to_char(rs.end_time, 'HH24:MI'),
			a.id::text,
			a.time,
			a.shift,
			a.status
		FROM roster_schedules rs
		LEFT JOIN employees e ON e.id = rs.employee_id
		LEFT JOIN attendance_records a ON a.employee_id = rs.employee_id AND a.date = rs.date
		WHERE rs.date = $1
		ORDER BY rs.start_time, rs.employee_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster attendance: %w", err)
	}
	defer rows.Close()

	var out []dashboard.RosterAttendanceRow
	for rows.Next() {
		var row dashboard.RosterAttendanceRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.InvestorGroup, &row.ShiftName,
			&row.StartTime, &row.EndTime,
			&row.AttendanceID, &row.AttendanceTime, &row.AttendanceShift, &row.AttendanceStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster attendance: %w", err)
		}
		if row.AttendanceTime != nil {
			t := row.AttendanceTime.In(r.loc)
			row.AttendanceTime = &t
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster attendance: %w", err)
	}
	return out, nil
}

// CountUnscheduledAttendance counts records without a roster row in single query
func (r *dashboardRepositoryImpl) CountUnscheduledAttendance(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_records a
		WHERE a.date = $1
		  AND NOT EXISTS (
			SELECT 1 FROM roster_schedules rs
			WHERE rs.employee_id = a.employee_id AND rs.date = a.date
		  )
	`

	var n int64
	if err := q.QueryRow(ctx, query, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unscheduled attendance: %w", err)
	}
	return n, nil
}
