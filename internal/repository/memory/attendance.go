package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
)

type attendanceRepositoryImpl struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

// Insert implements attendance.AttendanceRepository. The existence check and
// the write happen under one exclusive lock.
func (r *attendanceRepositoryImpl) Insert(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	if err := ctx.Err(); err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	e, ok := r.store.employees[rec.EmployeeID]
	if !ok {
		return attendance.AttendanceRecord{}, employee.ErrEmployeeNotFound
	}

	key := keyOf(rec.EmployeeID, rec.Date)
	if _, exists := r.store.attendance[key]; exists {
		return attendance.AttendanceRecord{}, attendance.ErrDuplicateAttendance
	}

	rec.Warnings = cloneWarnings(rec.Warnings)
	rec.ScannerID = cloneString(rec.ScannerID)
	rec.EmployeeName = nil
	r.store.attendance[key] = rec

	name := e.FullName
	rec.EmployeeName = &name
	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.attendance[keyOf(employeeID, date)]
	if !ok {
		return nil, nil
	}
	out := r.withNameLocked(rec)
	return &out, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.AttendanceRecord
	for _, rec := range r.store.attendance {
		if rec.EmployeeID == employeeID {
			out = append(out, r.withNameLocked(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := dateKey(date)
	var out []attendance.AttendanceRecord
	for key, rec := range r.store.attendance {
		if key.date == day {
			out = append(out, r.withNameLocked(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (r *attendanceRepositoryImpl) withNameLocked(rec attendance.AttendanceRecord) attendance.AttendanceRecord {
	rec.Warnings = cloneWarnings(rec.Warnings)
	rec.ScannerID = cloneString(rec.ScannerID)
	if e, ok := r.store.employees[rec.EmployeeID]; ok {
		name := e.FullName
		rec.EmployeeName = &name
	}
	return rec
}
