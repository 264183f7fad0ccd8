package monitoring

import (
	"context"
	"time"
)

// MonitoringRepository persists leave monitoring rows.
type MonitoringRepository interface {
	// List returns every row ordered by employee id
	List(ctx context.Context) ([]LeaveRosterMonitoring, error)

	// GetByEmployeeID returns ErrMonitoringNotFound when absent
	GetByEmployeeID(ctx context.Context, employeeID string) (LeaveRosterMonitoring, error)

	// Create inserts a new row, ErrAlreadyEnrolled on duplicates
	Create(ctx context.Context, row LeaveRosterMonitoring) error

	// UpdateLeave writes new leave dates together with their derived fields
	UpdateLeave(ctx context.Context, row LeaveRosterMonitoring) error

	// UpdateDerived writes derived fields only if the row's inputs still match
	// the values it was derived from (compare-and-set on updated_at).
	// Returns ErrStaleRow when another writer got there first.
	UpdateDerived(ctx context.Context, employeeID string, derivedFrom time.Time, d Derived, now time.Time) error
}
