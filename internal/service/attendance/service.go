package attendance

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/credential"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	credentialService "github.com/cmlabs-hris/hris-attendance-go/internal/service/credential"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	schedule.RosterRepository
	credentialService credential.Service
	ledger            attendance.LedgerGuard
	clock             clock.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	rosterRepo schedule.RosterRepository,
	credentialService credential.Service,
	ledger attendance.LedgerGuard,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		RosterRepository:     rosterRepo,
		credentialService:    credentialService,
		ledger:               ledger,
		clock:                clk,
	}
}

// Scan implements attendance.AttendanceService. A returned error means the
// request itself was invalid; every admission outcome is a ScanResponse.
func (s *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (attendance.ScanResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ScanResponse{}, err
	}

	// one clock reading per scan, used for the date and the window check
	now := s.clock.Now()
	today := clock.Date(now)

	cred, decodeErr := credentialService.Decode(req.Raw)
	if decodeErr == nil {
		resolved, err := s.credentialService.Resolve(ctx, cred)
		switch {
		case err == nil:
			cred = resolved
		case isDecodeError(err):
			decodeErr = err
		default:
			slog.Error("Failed to verify credential", "format", cred.Format, "error", err)
			return unavailable(now, ""), nil
		}
	}

	if decodeErr != nil {
		d := Decide(AdmissionInput{DecodeErr: decodeErr, Now: now})
		reason := ""
		if de, ok := credential.AsDecodeError(decodeErr); ok {
			reason = de.Reason
		}
		slog.Info("Scan rejected", "reason", d.Reason, "decode_reason", reason, "scanner_id", deref(req.ScannerID))
		return attendance.NewScanResponse(d, nil), nil
	}

	rosters, err := s.RosterRepository.ListByEmployeeAndDate(ctx, cred.EmployeeID, today)
	if err != nil {
		slog.Error("Failed to load roster", "employee_id", cred.EmployeeID, "error", err)
		return unavailable(now, cred.EmployeeID), nil
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, cred.EmployeeID, today)
	if err != nil {
		slog.Error("Failed to load attendance", "employee_id", cred.EmployeeID, "error", err)
		return unavailable(now, cred.EmployeeID), nil
	}

	d := Decide(AdmissionInput{
		Credential:      cred,
		Rosters:         rosters,
		AlreadyAttended: existing != nil,
		Now:             now,
	})
	logDataQuality(d, cred, rosters)

	if !d.Admitted() {
		slog.Info("Scan rejected", "employee_id", d.EmployeeID, "reason", d.Reason, "actual_time", d.ActualTime.String())
		return attendance.NewScanResponse(d, nil), nil
	}

	rec, err := s.ledger.Commit(ctx, attendance.CommitRequest{
		EmployeeID:       d.EmployeeID,
		Date:             d.Date,
		Time:             now,
		Shift:            string(d.ResolvedShift),
		ScannerID:        req.ScannerID,
		CredentialFormat: string(cred.Format),
		Warnings:         d.Warnings,
	})
	if err != nil {
		// a concurrent scan won the race, or the write never happened
		reason := attendance.ReasonStorageUnavailable
		if ce, ok := attendance.AsConflict(err); ok {
			reason = ce.Reason
		}
		d.Outcome = attendance.OutcomeRejected
		d.Reason = reason
		d.ResolvedShift = ""
		d.Warnings = nil
		slog.Info("Scan rejected at commit", "employee_id", d.EmployeeID, "reason", reason)
		return attendance.NewScanResponse(d, nil), nil
	}

	slog.Info("Attendance recorded", "employee_id", rec.EmployeeID, "shift", rec.Shift, "outcome", d.Outcome)
	return attendance.NewScanResponse(d, &rec), nil
}

func logDataQuality(d attendance.Decision, cred credential.Credential, rosters []schedule.RosterSchedule) {
	if len(rosters) > 1 {
		slog.Warn("Duplicate roster entries", "employee_id", cred.EmployeeID, "date", d.Date.Format("2006-01-02"), "count", len(rosters))
	}
	if d.ScheduledShift != "" && d.RequiredWindow == nil {
		slog.Warn("Unrecognized roster shift", "employee_id", cred.EmployeeID, "shift_name", string(d.ScheduledShift))
	}
	if cred.IsURLAsserted() {
		slog.Warn("Identity asserted by URL without token", "employee_id", cred.EmployeeID, "format", cred.Format)
	}
}

func unavailable(now time.Time, employeeID string) attendance.ScanResponse {
	d := reject(attendance.Decision{
		EmployeeID: employeeID,
		Date:       clock.Date(now),
		ActualTime: schedule.ClockOf(now),
	}, attendance.ReasonStorageUnavailable)
	return attendance.NewScanResponse(d, nil)
}

func isDecodeError(err error) bool {
	_, ok := credential.AsDecodeError(err)
	return ok
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
