package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db  *database.DB
	loc *time.Location
}

// NewAttendanceRepository returns record times converted to loc.
func NewAttendanceRepository(db *database.DB, loc *time.Location) attendance.AttendanceRepository {
	if loc == nil {
		loc = time.Local
	}
	return &attendanceRepositoryImpl{db: db, loc: loc}
}

const attendanceSelect = `
	SELECT a.id::text, a.employee_id, a.date, a.time, a.shift, a.status, a.scanner_id,
		   a.credential_format, a.warnings, a.created_at, e.full_name
	FROM attendance_records a
	LEFT JOIN employees e ON e.id = a.employee_id
`

// Insert implements attendance.AttendanceRepository. The unique constraint on
// (employee_id, date) is the arbiter; a conflicting insert returns no row.
func (r *attendanceRepositoryImpl) Insert(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, time, shift, status, scanner_id,
			credential_format, warnings, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.Date,
		rec.Time,
		rec.Shift,
		string(rec.Status),
		rec.ScannerID,
		rec.CredentialFormat,
		warningsToStrings(rec.Warnings),
		rec.CreatedAt,
	).Scan(&rec.CreatedAt)

	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows), database.IsUniqueViolation(err):
			return attendance.AttendanceRecord{}, attendance.ErrDuplicateAttendance
		case database.IsForeignKeyViolation(err):
			return attendance.AttendanceRecord{}, employee.ErrEmployeeNotFound
		default:
			return attendance.AttendanceRecord{}, fmt.Errorf("failed to insert attendance: %w", err)
		}
	}

	rec.CreatedAt = rec.CreatedAt.In(r.loc)
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+`WHERE a.employee_id = $1 AND a.date = $2`, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	recs, err := r.scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	if limit <= 0 {
		limit = 100
	}
	rows, err := q.Query(ctx, attendanceSelect+`WHERE a.employee_id = $1 ORDER BY a.date DESC LIMIT $2`, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendance: %w", err)
	}
	return r.scanRecords(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+`WHERE a.date = $1 ORDER BY a.time`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return r.scanRecords(rows)
}

func (r *attendanceRepositoryImpl) scanRecords(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	defer rows.Close()

	var out []attendance.AttendanceRecord
	for rows.Next() {
		var (
			rec      attendance.AttendanceRecord
			status   string
			warnings []string
		)
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Time, &rec.Shift, &status, &rec.ScannerID,
			&rec.CredentialFormat, &warnings, &rec.CreatedAt, &rec.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		rec.Status = attendance.Status(status)
		rec.Warnings = stringsToWarnings(warnings)
		rec.Time = rec.Time.In(r.loc)
		rec.CreatedAt = rec.CreatedAt.In(r.loc)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance: %w", err)
	}
	return out, nil
}

func warningsToStrings(ws []attendance.Warning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, string(w))
	}
	return out
}

func stringsToWarnings(ss []string) []attendance.Warning {
	if len(ss) == 0 {
		return nil
	}
	out := make([]attendance.Warning, 0, len(ss))
	for _, s := range ss {
		out = append(out, attendance.Warning(s))
	}
	return out
}
