package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
)

// Store is the process-local datastore behind the memory repositories.
// All repositories built from one Store share its lock, so reads that join
// several tables see one consistent state.
type Store struct {
	mu         sync.RWMutex
	employees  map[string]employee.Employee
	rosters    []schedule.RosterSchedule
	attendance map[attendanceKey]attendance.AttendanceRecord
	tokens     map[string]credential.IssuedToken // by employee id
	tokenIndex map[string]string                 // token -> employee id
	monitoring map[string]monitoring.LeaveRosterMonitoring
}

type attendanceKey struct {
	employeeID string
	date       string
}

func keyOf(employeeID string, date time.Time) attendanceKey {
	return attendanceKey{employeeID: employeeID, date: dateKey(date)}
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func NewStore() *Store {
	return &Store{
		employees:  make(map[string]employee.Employee),
		attendance: make(map[attendanceKey]attendance.AttendanceRecord),
		tokens:     make(map[string]credential.IssuedToken),
		tokenIndex: make(map[string]string),
		monitoring: make(map[string]monitoring.LeaveRosterMonitoring),
	}
}

// PutEmployee inserts or replaces an employee. Employees are owned by HR, so
// the repositories expose no write path for them.
func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[e.ID] = e
}

// PutRoster appends roster rows. Duplicate rows for one employee and date are
// accepted, matching what upstream scheduling data can contain.
func (s *Store) PutRoster(rows ...schedule.RosterSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rosters = append(s.rosters, rows...)
	sort.SliceStable(s.rosters, func(i, j int) bool {
		a, b := s.rosters[i], s.rosters[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		return a.StartTime < b.StartTime
	})
}

func cloneWarnings(in []attendance.Warning) []attendance.Warning {
	if in == nil {
		return nil
	}
	out := make([]attendance.Warning, len(in))
	copy(out, in)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
