package monitoring

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

// Derive computes the derived fields of m as of today. It depends only on the
// row's inputs and today, never on the previously stored status.
func Derive(m LeaveRosterMonitoring, today time.Time) Derived {
	if m.LastLeaveDate == nil {
		return Derived{MonitoringDays: 0, Status: StatusAktif}
	}

	last := clock.Date(*m.LastLeaveDate)
	threshold := m.LeaveOption.Threshold()
	next := last.AddDate(0, 0, threshold)

	days := clock.DaysBetween(last, today)
	if days < 0 {
		// leave recorded ahead of time, the cycle has not started
		days = 0
	}

	d := Derived{MonitoringDays: days, NextLeaveDate: &next}

	if m.LeaveEndDate != nil && !clock.Date(*m.LeaveEndDate).Before(last) {
		sinceEnd := clock.DaysBetween(*m.LeaveEndDate, today)
		switch {
		case clock.DaysBetween(last, today) >= 0 && sinceEnd <= 0:
			d.Status = StatusSedangCuti
			return d
		case sinceEnd > 0 && sinceEnd <= CompletedBand:
			d.Status = StatusSelesaiCuti
			return d
		}
	}

	// at or past the threshold stays awaiting leave until a new leave is recorded
	if days >= threshold-PreThresholdBand {
		d.Status = StatusMenungguCuti
	} else {
		d.Status = StatusAktif
	}
	return d
}
