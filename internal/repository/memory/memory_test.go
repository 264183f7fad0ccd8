package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func seededStore() *Store {
	s := NewStore()
	s.PutEmployee(employee.Employee{ID: "123", FullName: "Budi Santoso", EmploymentStatus: employee.EmploymentStatusActive})
	s.PutEmployee(employee.Employee{ID: "456", FullName: "Siti Aminah", EmploymentStatus: employee.EmploymentStatusResigned})
	s.PutRoster(
		schedule.RosterSchedule{ID: "r2", EmployeeID: "123", Date: day, ShiftName: "Shift 2", StartTime: schedule.MustClock("16:00"), EndTime: schedule.MustClock("20:00")},
		schedule.RosterSchedule{ID: "r1", EmployeeID: "123", Date: day, ShiftName: "Shift 1", StartTime: schedule.MustClock("05:00"), EndTime: schedule.MustClock("15:30")},
	)
	return s
}

func record(employeeID string) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID:         "rec-" + employeeID,
		EmployeeID: employeeID,
		Date:       day,
		Time:       day.Add(7 * time.Hour),
		Shift:      "Shift 1",
		Status:     attendance.StatusPresent,
	}
}

func TestAttendanceRepository_Insert(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(seededStore())

	stored, err := repo.Insert(ctx, record("123"))
	require.NoError(t, err)
	require.NotNil(t, stored.EmployeeName)
	assert.Equal(t, "Budi Santoso", *stored.EmployeeName)

	_, err = repo.Insert(ctx, record("123"))
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)

	_, err = repo.Insert(ctx, record("999"))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	got, err := repo.GetByEmployeeAndDate(ctx, "123", day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rec-123", got.ID)

	none, err := repo.GetByEmployeeAndDate(ctx, "123", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAttendanceRepository_InsertCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAttendanceRepository(seededStore()).Insert(ctx, record("123"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAttendanceRepository_ConcurrentInsert(t *testing.T) {
	repo := NewAttendanceRepository(seededStore())

	var wins, dups int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(context.Background(), record("123"))
			if err == nil {
				atomic.AddInt32(&wins, 1)
			} else if assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance) {
				atomic.AddInt32(&dups, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(49), dups)
}

func TestRosterRepository_OrdersByStartTime(t *testing.T) {
	repo := NewRosterRepository(seededStore())

	rows, err := repo.ListByEmployeeAndDate(context.Background(), "123", day)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "r1", rows[0].ID)

	rows, err = repo.ListByEmployeeAndDate(context.Background(), "123", day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestEmployeeRepository(t *testing.T) {
	repo := NewEmployeeRepository(seededStore())

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	active, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "123", active[0].ID)
}

func TestTokenRepository_SaveReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	repo := NewTokenRepository(NewStore())

	require.NoError(t, repo.Save(ctx, credential.IssuedToken{EmployeeID: "123", Token: "old"}))
	require.NoError(t, repo.Save(ctx, credential.IssuedToken{EmployeeID: "123", Token: "new"}))

	_, err := repo.GetByToken(ctx, "old")
	assert.ErrorIs(t, err, credential.ErrTokenNotFound)

	got, err := repo.GetByToken(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, "123", got.EmployeeID)

	current, err := repo.GetByEmployeeID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "new", current.Token)
}

func TestMonitoringRepository_UpdateDerivedCompareAndSet(t *testing.T) {
	ctx := context.Background()
	repo := NewMonitoringRepository(seededStore())

	updated := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, monitoring.LeaveRosterMonitoring{
		EmployeeID:  "123",
		LeaveOption: monitoring.LeaveOption35,
		Status:      monitoring.StatusAktif,
		UpdatedAt:   updated,
	}))
	assert.ErrorIs(t, repo.Create(ctx, monitoring.LeaveRosterMonitoring{EmployeeID: "123"}), monitoring.ErrAlreadyEnrolled)
	assert.ErrorIs(t, repo.Create(ctx, monitoring.LeaveRosterMonitoring{EmployeeID: "999"}), employee.ErrEmployeeNotFound)

	d := monitoring.Derived{MonitoringDays: 12, Status: monitoring.StatusAktif}
	now := updated.Add(time.Hour)
	require.NoError(t, repo.UpdateDerived(ctx, "123", updated, d, now))

	// the row moved on, a writer holding the old timestamp must lose
	err := repo.UpdateDerived(ctx, "123", updated, monitoring.Derived{MonitoringDays: 99}, now.Add(time.Hour))
	assert.ErrorIs(t, err, monitoring.ErrStaleRow)

	row, err := repo.GetByEmployeeID(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, 12, row.MonitoringDays)
	assert.True(t, row.UpdatedAt.Equal(now))
	require.NotNil(t, row.EmployeeName)
	assert.Equal(t, "Budi Santoso", *row.EmployeeName)
}

func TestDashboardRepository_RosterAttendance(t *testing.T) {
	ctx := context.Background()
	store := seededStore()
	store.PutRoster(schedule.RosterSchedule{ID: "r3", EmployeeID: "456", Date: day, ShiftName: "Shift 1", StartTime: schedule.MustClock("05:00"), EndTime: schedule.MustClock("15:30")})
	store.PutEmployee(employee.Employee{ID: "789", FullName: "Walk In", EmploymentStatus: employee.EmploymentStatusActive})

	att := NewAttendanceRepository(store)
	_, err := att.Insert(ctx, record("123"))
	require.NoError(t, err)
	_, err = att.Insert(ctx, record("789"))
	require.NoError(t, err)

	repo := NewDashboardRepository(store)
	rows, err := repo.GetRosterAttendance(ctx, day)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	attended := 0
	for _, r := range rows {
		if r.Attended() {
			attended++
		}
	}
	// both roster rows of 123 see the same record
	assert.Equal(t, 2, attended)

	unscheduled, err := repo.CountUnscheduledAttendance(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unscheduled)
}
