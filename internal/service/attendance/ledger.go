package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/google/uuid"
)

type LedgerGuardImpl struct {
	attendance.AttendanceRepository
	invalidator  attendance.Invalidator
	clock        clock.Clock
	writeTimeout time.Duration
}

func NewLedgerGuard(
	attendanceRepo attendance.AttendanceRepository,
	invalidator attendance.Invalidator,
	clk clock.Clock,
	writeTimeout time.Duration,
) attendance.LedgerGuard {
	return &LedgerGuardImpl{
		AttendanceRepository: attendanceRepo,
		invalidator:          invalidator,
		clock:                clk,
		writeTimeout:         writeTimeout,
	}
}

// Commit implements attendance.LedgerGuard. The uniqueness check and the
// insert are one storage operation; there is no read-then-write window here.
func (g *LedgerGuardImpl) Commit(ctx context.Context, req attendance.CommitRequest) (attendance.AttendanceRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return attendance.AttendanceRecord{}, &attendance.ConflictError{
			Reason: attendance.ReasonStorageUnavailable,
			Err:    fmt.Errorf("failed to generate attendance id: %w", err),
		}
	}

	status := attendance.StatusPresent
	if len(req.Warnings) > 0 {
		status = attendance.StatusFlagged
	}

	rec := attendance.AttendanceRecord{
		ID:               id.String(),
		EmployeeID:       req.EmployeeID,
		Date:             clock.Date(req.Date),
		Time:             req.Time,
		Shift:            req.Shift,
		Status:           status,
		ScannerID:        req.ScannerID,
		CredentialFormat: req.CredentialFormat,
		Warnings:         req.Warnings,
		CreatedAt:        g.clock.Now(),
	}

	writeCtx := ctx
	if g.writeTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, g.writeTimeout)
		defer cancel()
	}

	stored, err := g.AttendanceRepository.Insert(writeCtx, rec)
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrDuplicateAttendance):
			return attendance.AttendanceRecord{}, &attendance.ConflictError{Reason: attendance.ReasonAlreadyAttended, Err: err}
		case errors.Is(err, employee.ErrEmployeeNotFound):
			return attendance.AttendanceRecord{}, &attendance.ConflictError{Reason: attendance.ReasonEmployeeNotFound, Err: err}
		default:
			// timeouts and connection failures never become a commit
			slog.Error("Attendance commit failed", "employee_id", req.EmployeeID, "date", rec.Date.Format("2006-01-02"), "error", err)
			return attendance.AttendanceRecord{}, &attendance.ConflictError{Reason: attendance.ReasonStorageUnavailable, Err: err}
		}
	}

	if g.invalidator != nil {
		g.invalidator.Invalidate(context.WithoutCancel(ctx), attendance.CommitViewKeys(stored.EmployeeID, stored.Date)...)
	}

	return stored, nil
}
