package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
)

type Outcome string

const (
	OutcomeAccepted Outcome = "accepted"
	OutcomeRejected Outcome = "rejected"
	OutcomeWarned   Outcome = "warned"
)

// Reason is the machine-readable code rendered by the UI layer.
type Reason string

const (
	ReasonInvalidQR          Reason = "invalid_qr"
	ReasonNotScheduled       Reason = "not_scheduled"
	ReasonOutsideShiftWindow Reason = "outside_shift_window"
	ReasonAlreadyAttended    Reason = "already_attended"
	ReasonStorageUnavailable Reason = "storage_unavailable"
	ReasonEmployeeNotFound   Reason = "employee_not_found"
)

// Warning flags an admissible scan that needs a human look.
type Warning string

const (
	WarningDuplicateRoster Warning = "duplicate_roster"
	WarningUnboundIdentity Warning = "unbound_identity"
	WarningShiftMismatch   Warning = "shift_mismatch"
)

// Decision is the outcome of one scan attempt.
type Decision struct {
	Outcome    Outcome
	Reason     Reason
	EmployeeID string
	Date       time.Time
	ActualTime schedule.ClockTime

	// Set once a roster entry was found
	ScheduledShift schedule.ShiftName
	RequiredWindow *schedule.Window

	// Set on admission
	ResolvedShift schedule.ShiftName
	Warnings      []Warning

	// OutsideAllWindows distinguishes "outside all operating hours" from
	// "wrong shift for this employee" on outside_shift_window rejections
	OutsideAllWindows bool
}

// Admitted reports whether the decision allows the ledger write.
func (d Decision) Admitted() bool {
	return d.Outcome == OutcomeAccepted || d.Outcome == OutcomeWarned
}
