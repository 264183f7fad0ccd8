package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
)

type monitoringRepositoryImpl struct {
	store *Store
}

func NewMonitoringRepository(store *Store) monitoring.MonitoringRepository {
	return &monitoringRepositoryImpl{store: store}
}

// List implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) List(ctx context.Context) ([]monitoring.LeaveRosterMonitoring, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]monitoring.LeaveRosterMonitoring, 0, len(r.store.monitoring))
	for _, row := range r.store.monitoring {
		out = append(out, r.cloneLocked(row))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

// GetByEmployeeID implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (monitoring.LeaveRosterMonitoring, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.monitoring[employeeID]
	if !ok {
		return monitoring.LeaveRosterMonitoring{}, monitoring.ErrMonitoringNotFound
	}
	return r.cloneLocked(row), nil
}

// Create implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) Create(ctx context.Context, row monitoring.LeaveRosterMonitoring) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[row.EmployeeID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	if _, ok := r.store.monitoring[row.EmployeeID]; ok {
		return monitoring.ErrAlreadyEnrolled
	}
	r.store.monitoring[row.EmployeeID] = r.cloneLocked(row)
	return nil
}

// UpdateLeave implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) UpdateLeave(ctx context.Context, row monitoring.LeaveRosterMonitoring) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.monitoring[row.EmployeeID]; !ok {
		return monitoring.ErrMonitoringNotFound
	}
	r.store.monitoring[row.EmployeeID] = r.cloneLocked(row)
	return nil
}

// UpdateDerived implements monitoring.MonitoringRepository.
func (r *monitoringRepositoryImpl) UpdateDerived(ctx context.Context, employeeID string, derivedFrom time.Time, d monitoring.Derived, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.monitoring[employeeID]
	if !ok {
		return monitoring.ErrMonitoringNotFound
	}
	if !row.UpdatedAt.Equal(derivedFrom) {
		return monitoring.ErrStaleRow
	}
	d.NextLeaveDate = cloneTime(d.NextLeaveDate)
	row.Apply(d)
	row.UpdatedAt = now
	r.store.monitoring[employeeID] = row
	return nil
}

func (r *monitoringRepositoryImpl) cloneLocked(row monitoring.LeaveRosterMonitoring) monitoring.LeaveRosterMonitoring {
	row.InvestorGroup = cloneString(row.InvestorGroup)
	row.LastLeaveDate = cloneTime(row.LastLeaveDate)
	row.LeaveEndDate = cloneTime(row.LeaveEndDate)
	row.NextLeaveDate = cloneTime(row.NextLeaveDate)
	row.EmployeeName = nil
	if e, ok := r.store.employees[row.EmployeeID]; ok {
		name := e.FullName
		row.EmployeeName = &name
	}
	return row
}
