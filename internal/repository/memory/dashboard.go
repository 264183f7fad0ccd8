package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
)

type dashboardRepositoryImpl struct {
	store *Store
}

func NewDashboardRepository(store *Store) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{store: store}
}

// GetRosterAttendance implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetRosterAttendance(ctx context.Context, date time.Time) ([]dashboard.RosterAttendanceRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := dateKey(date)
	var rows []dashboard.RosterAttendanceRow
	for _, roster := range r.store.rosters {
		if dateKey(roster.Date) != day {
			continue
		}
		row := dashboard.RosterAttendanceRow{
			EmployeeID: roster.EmployeeID,
			ShiftName:  roster.ShiftName,
			StartTime:  roster.StartTime.String(),
			EndTime:    roster.EndTime.String(),
		}
		if e, ok := r.store.employees[roster.EmployeeID]; ok {
			row.EmployeeName = e.FullName
			row.InvestorGroup = cloneString(e.InvestorGroup)
		}
		if rec, ok := r.store.attendance[keyOf(roster.EmployeeID, date)]; ok {
			id, shift, status, at := rec.ID, rec.Shift, string(rec.Status), rec.Time
			row.AttendanceID = &id
			row.AttendanceShift = &shift
			row.AttendanceStatus = &status
			row.AttendanceTime = &at
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StartTime != rows[j].StartTime {
			return rows[i].StartTime < rows[j].StartTime
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows, nil
}

// CountUnscheduledAttendance implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountUnscheduledAttendance(ctx context.Context, date time.Time) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	day := dateKey(date)
	scheduled := make(map[string]bool)
	for _, roster := range r.store.rosters {
		if dateKey(roster.Date) == day {
			scheduled[roster.EmployeeID] = true
		}
	}

	var n int64
	for key := range r.store.attendance {
		if key.date == day && !scheduled[key.employeeID] {
			n++
		}
	}
	return n, nil
}
