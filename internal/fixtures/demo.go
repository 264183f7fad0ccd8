package fixtures

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// DEMO EMPLOYEES
// ==========================================

// DemoEmployees returns the site crew used by the in-memory driver
func DemoEmployees() []employee.Employee {
	return []employee.Employee{
		{ID: "3201010101900001", FullName: "Budi Santoso", InvestorGroup: strPtr("Group A")},
		{ID: "3201010101900002", FullName: "Sari Wulandari", InvestorGroup: strPtr("Group A")},
		{ID: "3201010101900003", FullName: "Andi Pratama", InvestorGroup: strPtr("Group B")},
		{ID: "3201010101900004", FullName: "Dewi Lestari", InvestorGroup: strPtr("Group B")},
		{ID: "3201010101900005", FullName: "Rudi Hartono"},
	}
}

// ==========================================
// DEMO ROSTER
// ==========================================

// DemoRoster alternates the crew between the two shifts for day.
// The last employee is intentionally left unscheduled.
func DemoRoster(employees []employee.Employee, day time.Time) []schedule.RosterSchedule {
	day = clock.Date(day)

	var rows []schedule.RosterSchedule
	for i, e := range employees[:len(employees)-1] {
		shift, start, end := schedule.Shift1, "07:00", "15:00"
		if i%2 == 1 {
			shift, start, end = schedule.Shift2, "16:00", "20:00"
		}
		rows = append(rows, schedule.RosterSchedule{
			ID:         fmt.Sprintf("demo-%s-%s", day.Format("20060102"), e.ID),
			EmployeeID: e.ID,
			Date:       day,
			ShiftName:  string(shift),
			StartTime:  schedule.MustClock(start),
			EndTime:    schedule.MustClock(end),
			CreatedAt:  day,
		})
	}
	return rows
}

// SeedMemory loads the demo crew and a roster for the next days into store
func SeedMemory(store *memory.Store, now time.Time, days int) []employee.Employee {
	employees := DemoEmployees()
	for i := range employees {
		employees[i].EmploymentStatus = employee.EmploymentStatusActive
		employees[i].CreatedAt = now
		employees[i].UpdatedAt = now
		store.PutEmployee(employees[i])
	}
	for d := 0; d < days; d++ {
		store.PutRoster(DemoRoster(employees, now.AddDate(0, 0, d))...)
	}
	return employees
}
