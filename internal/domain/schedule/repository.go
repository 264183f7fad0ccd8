package schedule

import (
	"context"
	"time"
)

// RosterRepository reads roster entries keyed by employee and date.
type RosterRepository interface {
	// ListByEmployeeAndDate returns every roster row for the day ordered by start time.
	// More than one row is a data-quality problem the caller flags.
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]RosterSchedule, error)

	// ListByDate returns the whole day's roster ordered by employee and start time
	ListByDate(ctx context.Context, date time.Time) ([]RosterSchedule, error)
}
