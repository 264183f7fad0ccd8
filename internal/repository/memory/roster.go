package memory

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
)

type rosterRepositoryImpl struct {
	store *Store
}

func NewRosterRepository(store *Store) schedule.RosterRepository {
	return &rosterRepositoryImpl{store: store}
}

// ListByEmployeeAndDate implements schedule.RosterRepository.
func (r *rosterRepositoryImpl) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]schedule.RosterSchedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := dateKey(date)
	var out []schedule.RosterSchedule
	for _, row := range r.store.rosters {
		if row.EmployeeID == employeeID && dateKey(row.Date) == day {
			out = append(out, row)
		}
	}
	return out, nil
}

// ListByDate implements schedule.RosterRepository.
func (r *rosterRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]schedule.RosterSchedule, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := dateKey(date)
	var out []schedule.RosterSchedule
	for _, row := range r.store.rosters {
		if dateKey(row.Date) == day {
			out = append(out, row)
		}
	}
	return out, nil
}
