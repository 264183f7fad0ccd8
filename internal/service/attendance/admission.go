package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
)

// AdmissionInput is everything the admission policy needs. It carries no
// storage handles, so Decide can be tested without a datastore.
type AdmissionInput struct {
	Credential credential.Credential
	// DecodeErr is set when the payload could not be decoded or verified
	DecodeErr error
	// Rosters are the employee's roster rows for today, any order
	Rosters         []schedule.RosterSchedule
	AlreadyAttended bool
	Now             time.Time
}

// Decide applies the admission policy in order: invalid credential, no roster,
// outside the scheduled window, already attended, then accept.
func Decide(in AdmissionInput) attendance.Decision {
	today := clock.Date(in.Now)
	d := attendance.Decision{
		Date:       today,
		ActualTime: schedule.ClockOf(in.Now),
	}

	if in.DecodeErr != nil {
		return reject(d, attendance.ReasonInvalidQR)
	}
	d.EmployeeID = in.Credential.EmployeeID

	rosters := rostersOn(in.Rosters, today)
	if len(rosters) == 0 {
		return reject(d, attendance.ReasonNotScheduled)
	}

	var warnings []attendance.Warning
	if len(rosters) > 1 {
		warnings = append(warnings, attendance.WarningDuplicateRoster)
	}

	roster := rosters[0]
	shift, err := schedule.NormalizeShift(roster.ShiftName)
	d.ScheduledShift = shift
	if err == nil {
		w, _ := schedule.WindowFor(shift)
		d.RequiredWindow = &w
	}

	if !schedule.IsWithinWindow(d.ActualTime, shift) {
		d.OutsideAllWindows = schedule.IsOutsideAllWindows(d.ActualTime)
		return reject(d, attendance.ReasonOutsideShiftWindow)
	}

	if in.AlreadyAttended {
		return reject(d, attendance.ReasonAlreadyAttended)
	}

	d.ResolvedShift = schedule.ResolveShift(d.ActualTime)
	if d.ResolvedShift != shift {
		warnings = append(warnings, attendance.WarningShiftMismatch)
	}
	if in.Credential.IsURLAsserted() {
		warnings = append(warnings, attendance.WarningUnboundIdentity)
	}

	d.Outcome = attendance.OutcomeAccepted
	if len(warnings) > 0 {
		d.Outcome = attendance.OutcomeWarned
		d.Warnings = warnings
	}
	return d
}

func reject(d attendance.Decision, reason attendance.Reason) attendance.Decision {
	d.Outcome = attendance.OutcomeRejected
	d.Reason = reason
	return d
}

// rostersOn keeps the rows dated today, earliest start first.
func rostersOn(rows []schedule.RosterSchedule, today time.Time) []schedule.RosterSchedule {
	out := make([]schedule.RosterSchedule, 0, len(rows))
	for _, r := range rows {
		if clock.DaysBetween(r.Date, today) == 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
