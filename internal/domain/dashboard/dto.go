package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// ========== DAILY DASHBOARD ==========

// DailyDashboardResponse aggregates one day of attendance
type DailyDashboardResponse struct {
	Date           string                 `json:"date"`
	Scheduled      int64                  `json:"scheduled"`
	Attended       int64                  `json:"attended"`
	Absent         int64                  `json:"absent"`
	Flagged        int64                  `json:"flagged"`
	Unscheduled    int64                  `json:"unscheduled"` // records without a roster row
	AttendanceRate decimal.Decimal        `json:"attendance_rate"`
	Shifts         []ShiftSummaryResponse `json:"shifts"`
	UpdatedAt      string                 `json:"updated_at"`
}

// ShiftSummaryResponse is the per-shift breakdown of the daily dashboard
type ShiftSummaryResponse struct {
	Shift          string          `json:"shift"`
	Scheduled      int64           `json:"scheduled"`
	Attended       int64           `json:"attended"`
	Absent         int64           `json:"absent"`
	AttendanceRate decimal.Decimal `json:"attendance_rate"`
}

// ========== ROSTER VS ATTENDANCE ==========

type RosterAttendanceResponse struct {
	Date  string                 `json:"date"`
	Items []RosterAttendanceItem `json:"items"`
	Total int                    `json:"total"`
}

type RosterAttendanceItem struct {
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	InvestorGroup    *string `json:"investor_group,omitempty"`
	ShiftName        string  `json:"shift_name"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Attended         bool    `json:"attended"`
	AttendanceTime   *string `json:"attendance_time,omitempty"`
	AttendanceShift  *string `json:"attendance_shift,omitempty"`
	AttendanceStatus *string `json:"attendance_status,omitempty"`
}

func NewRosterAttendanceItem(r RosterAttendanceRow) RosterAttendanceItem {
	item := RosterAttendanceItem{
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		InvestorGroup:    r.InvestorGroup,
		ShiftName:        r.ShiftName,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		Attended:         r.Attended(),
		AttendanceShift:  r.AttendanceShift,
		AttendanceStatus: r.AttendanceStatus,
	}
	if r.AttendanceTime != nil {
		t := r.AttendanceTime.Format(time.RFC3339)
		item.AttendanceTime = &t
	}
	return item
}
