package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rosterRepositoryImpl struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) schedule.RosterRepository {
	return &rosterRepositoryImpl{db: db}
}

const rosterColumns = `
	id::text, employee_id, date, shift_name,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), created_at
`

// ListByEmployeeAndDate implements schedule.RosterRepository.
func (r *rosterRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.RosterSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rosterColumns + `
		FROM roster_schedules
		WHERE employee_id = $1 AND date = $2
		ORDER BY start_time, created_at
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return scanRosters(rows)
}

// ListByDate implements schedule.RosterRepository.
func (r *rosterRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]schedule.RosterSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rosterColumns + `
		FROM roster_schedules
		WHERE date = $1
		ORDER BY employee_id, start_time
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster: %w", err)
	}
	return scanRosters(rows)
}

func scanRosters(rows pgx.Rows) ([]schedule.RosterSchedule, error) {
	defer rows.Close()

	var out []schedule.RosterSchedule
	for rows.Next() {
		var (
			rs         schedule.RosterSchedule
			start, end string
		)
		if err := rows.Scan(&rs.ID, &rs.EmployeeID, &rs.Date, &rs.ShiftName, &start, &end, &rs.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		var err error
		if rs.StartTime, err = schedule.ParseClock(start); err != nil {
			return nil, fmt.Errorf("roster %s start_time %q: %w", rs.ID, start, err)
		}
		if rs.EndTime, err = schedule.ParseClock(end); err != nil {
			return nil, fmt.Errorf("roster %s end_time %q: %w", rs.ID, end, err)
		}
		out = append(out, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}
	return out, nil
}
