package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type monitoringRepositoryImpl struct {
	db *database.DB
}

func NewMonitoringRepository(db *database.DB) monitoring.MonitoringRepository {
	return &monitoringRepositoryImpl{db: db}
}

const monitoringSelect = `
	SELECT m.employee_id, m.investor_group, m.last_leave_date, m.leave_end_date, m.leave_option,
		   m.monitoring_days, m.next_leave_date, m.status, m.updated_at, e.full_name
	FROM leave_roster_monitoring m
	LEFT JOIN employees e ON e.id = m.employee_id
`

// List implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) List(ctx context.Context) ([]monitoring.LeaveRosterMonitoring, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, monitoringSelect+`ORDER BY m.employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave monitoring: %w", err)
	}
	defer rows.Close()

	var out []monitoring.LeaveRosterMonitoring
	for rows.Next() {
		m, err := scanMonitoring(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave monitoring: %w", err)
	}
	return out, nil
}

// GetByEmployeeID implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (monitoring.LeaveRosterMonitoring, error) {
	q := GetQuerier(ctx, r.db)

	m, err := scanMonitoring(q.QueryRow(ctx, monitoringSelect+`WHERE m.employee_id = $1`, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return monitoring.LeaveRosterMonitoring{}, monitoring.ErrMonitoringNotFound
		}
		return monitoring.LeaveRosterMonitoring{}, err
	}
	return m, nil
}

// Create implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) Create(ctx context.Context, row monitoring.LeaveRosterMonitoring) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_roster_monitoring (
			employee_id, investor_group, last_leave_date, leave_end_date, leave_option,
			monitoring_days, next_leave_date, status, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		row.EmployeeID, row.InvestorGroup, row.LastLeaveDate, row.LeaveEndDate, int(row.LeaveOption),
		row.MonitoringDays, row.NextLeaveDate, string(row.Status), row.UpdatedAt,
	)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return monitoring.ErrAlreadyEnrolled
		case database.IsForeignKeyViolation(err):
			return employee.ErrEmployeeNotFound
		default:
			return fmt.Errorf("failed to create leave monitoring: %w", err)
		}
	}
	return nil
}

// UpdateLeave implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) UpdateLeave(ctx context.Context, row monitoring.LeaveRosterMonitoring) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_roster_monitoring
		SET last_leave_date = $2, leave_end_date = $3, leave_option = $4,
			monitoring_days = $5, next_leave_date = $6, status = $7, updated_at = $8
		WHERE employee_id = $1
	`

	tag, err := q.Exec(ctx, query,
		row.EmployeeID, row.LastLeaveDate, row.LeaveEndDate, int(row.LeaveOption),
		row.MonitoringDays, row.NextLeaveDate, string(row.Status), row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return monitoring.ErrMonitoringNotFound
	}
	return nil
}

// UpdateDerived implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) UpdateDerived(ctx context.Context, employeeID string, derivedFrom time.Time, d monitoring.Derived, now time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_roster_monitoring
		SET monitoring_days = $3, next_leave_date = $4, status = $5, updated_at = $6
		WHERE employee_id = $1 AND updated_at = $2
	`

	tag, err := q.Exec(ctx, query, employeeID, derivedFrom, d.MonitoringDays, d.NextLeaveDate, string(d.Status), now)
	if err != nil {
		return fmt.Errorf("failed to update leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return monitoring.ErrStaleRow
	}
	return nil
}

func scanMonitoring(row pgx.Row) (monitoring.LeaveRosterMonitoring, error) {
	var (
		m      monitoring.LeaveRosterMonitoring
		option int
		status string
	)
	err := row.Scan(
		&m.EmployeeID, &m.InvestorGroup, &m.LastLeaveDate, &m.LeaveEndDate, &option,
		&m.MonitoringDays, &m.NextLeaveDate, &status, &m.UpdatedAt, &m.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return m, err
		}
		return m, fmt.Errorf("failed to scan leave monitoring: %w", err)
	}
	m.LeaveOption = monitoring.LeaveOption(option)
	m.Status = monitoring.Status(status)
	return m, nil
}
