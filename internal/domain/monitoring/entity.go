package monitoring

import "time"

// Status is derived from the row and today's date; it is never set directly.
type Status string

const (
	StatusAktif        Status = "Aktif"
	StatusMenungguCuti Status = "Menunggu Cuti"
	StatusSedangCuti   Status = "Sedang Cuti"
	StatusSelesaiCuti  Status = "Selesai Cuti"
)

// LeaveOption is the work-cycle length in days.
type LeaveOption int

const (
	LeaveOption35 LeaveOption = 35
	LeaveOption70 LeaveOption = 70
)

const (
	// PreThresholdBand is how many days before the threshold an employee starts awaiting leave
	PreThresholdBand = 5
	// CompletedBand is how many days after the leave end the status stays Selesai Cuti
	CompletedBand = 3
)

// Threshold maps an option to its day count; anything but 70 is a 35-day cycle.
func (o LeaveOption) Threshold() int {
	if o == LeaveOption70 {
		return 70
	}
	return 35
}

// ParseLeaveOption accepts "35" and "70".
func ParseLeaveOption(s string) (LeaveOption, error) {
	switch s {
	case "70":
		return LeaveOption70, nil
	case "35":
		return LeaveOption35, nil
	default:
		return 0, ErrInvalidLeaveOption
	}
}

// LeaveRosterMonitoring tracks the leave cycle of one employee.
type LeaveRosterMonitoring struct {
	EmployeeID    string
	InvestorGroup *string
	LastLeaveDate *time.Time
	LeaveEndDate  *time.Time
	LeaveOption   LeaveOption

	// Derived
	MonitoringDays int
	NextLeaveDate  *time.Time
	Status         Status

	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

// Derived holds the fields recomputed on every tick.
type Derived struct {
	MonitoringDays int
	NextLeaveDate  *time.Time
	Status         Status
}

// DerivedFields returns the stored derived fields of the row.
func (m LeaveRosterMonitoring) DerivedFields() Derived {
	return Derived{
		MonitoringDays: m.MonitoringDays,
		NextLeaveDate:  m.NextLeaveDate,
		Status:         m.Status,
	}
}

// Apply copies d into the row.
func (m *LeaveRosterMonitoring) Apply(d Derived) {
	m.MonitoringDays = d.MonitoringDays
	m.NextLeaveDate = d.NextLeaveDate
	m.Status = d.Status
}

// Equal compares two derived states, dates by calendar day.
func (d Derived) Equal(o Derived) bool {
	if d.MonitoringDays != o.MonitoringDays || d.Status != o.Status {
		return false
	}
	if (d.NextLeaveDate == nil) != (o.NextLeaveDate == nil) {
		return false
	}
	if d.NextLeaveDate == nil {
		return true
	}
	return d.NextLeaveDate.Format("2006-01-02") == o.NextLeaveDate.Format("2006-01-02")
}
