package monitoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type AutomatonImpl struct {
	monitoring.MonitoringRepository
	employee.EmployeeRepository
	invalidator attendance.Invalidator
	clock       clock.Clock
}

func NewAutomaton(
	monitoringRepo monitoring.MonitoringRepository,
	employeeRepo employee.EmployeeRepository,
	invalidator attendance.Invalidator,
	clk clock.Clock,
) monitoring.Automaton {
	return &AutomatonImpl{
		MonitoringRepository: monitoringRepo,
		EmployeeRepository:   employeeRepo,
		invalidator:          invalidator,
		clock:                clk,
	}
}

// Recompute implements monitoring.Automaton. Unchanged rows are not written,
// so a second sweep on the same day is a no-op.
func (s *AutomatonImpl) Recompute(ctx context.Context) (monitoring.RecomputeResult, error) {
	now := s.clock.Now()
	today := clock.Date(now)

	rows, err := s.MonitoringRepository.List(ctx)
	if err != nil {
		return monitoring.RecomputeResult{}, fmt.Errorf("failed to list leave monitoring rows: %w", err)
	}

	var result monitoring.RecomputeResult
	var firstErr error
	for _, row := range rows {
		result.Scanned++

		d := monitoring.Derive(row, today)
		if d.Equal(row.DerivedFields()) {
			continue
		}

		err := s.MonitoringRepository.UpdateDerived(ctx, row.EmployeeID, row.UpdatedAt, d, now)
		switch {
		case err == nil:
			result.Changed++
			slog.Debug("Leave status changed", "employee_id", row.EmployeeID, "from", row.Status, "to", d.Status, "monitoring_days", d.MonitoringDays)
		case errors.Is(err, monitoring.ErrStaleRow), errors.Is(err, monitoring.ErrMonitoringNotFound):
			// a concurrent leave update already wrote fresher derived fields
			result.Stale++
		default:
			result.Failed++
			if firstErr == nil {
				firstErr = err
			}
			slog.Error("Failed to update leave status", "employee_id", row.EmployeeID, "error", err)
		}
	}

	if result.Changed > 0 {
		s.invalidate(ctx)
	}

	slog.Info("Leave monitoring recomputed",
		"date", today.Format("2006-01-02"),
		"scanned", result.Scanned,
		"changed", result.Changed,
		"stale", result.Stale,
		"failed", result.Failed,
	)

	if firstErr != nil {
		return result, fmt.Errorf("recompute left %d of %d rows unchanged: %w", result.Failed, result.Scanned, firstErr)
	}
	return result, nil
}

// Enroll implements monitoring.Automaton.
func (s *AutomatonImpl) Enroll(ctx context.Context, req monitoring.EnrollRequest) (monitoring.MonitoringResponse, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if err := req.Validate(); err != nil {
		return monitoring.MonitoringResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return monitoring.MonitoringResponse{}, err
	}

	option, err := monitoring.ParseLeaveOption(req.LeaveOption)
	if err != nil {
		return monitoring.MonitoringResponse{}, err
	}

	now := s.clock.Now()
	row := monitoring.LeaveRosterMonitoring{
		EmployeeID:    emp.ID,
		InvestorGroup: req.InvestorGroup,
		LeaveOption:   option,
		UpdatedAt:     now,
	}
	if row.InvestorGroup == nil {
		row.InvestorGroup = emp.InvestorGroup
	}
	if req.LastLeaveDate != nil {
		last, _ := validator.ParseDateIn(*req.LastLeaveDate, now.Location())
		row.LastLeaveDate = &last
	}
	row.Apply(monitoring.Derive(row, clock.Date(now)))

	if err := s.MonitoringRepository.Create(ctx, row); err != nil {
		return monitoring.MonitoringResponse{}, err
	}

	slog.Info("Employee enrolled in leave monitoring", "employee_id", row.EmployeeID, "leave_option", int(option), "status", row.Status)
	s.invalidate(ctx)

	row.EmployeeName = &emp.FullName
	return monitoring.NewMonitoringResponse(row), nil
}

// RecordLeave implements monitoring.Automaton.
func (s *AutomatonImpl) RecordLeave(ctx context.Context, req monitoring.RecordLeaveRequest) (monitoring.MonitoringResponse, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if err := req.Validate(); err != nil {
		return monitoring.MonitoringResponse{}, err
	}

	row, err := s.MonitoringRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return monitoring.MonitoringResponse{}, err
	}

	now := s.clock.Now()
	last, _ := validator.ParseDateIn(req.LastLeaveDate, now.Location())
	row.LastLeaveDate = &last
	row.LeaveEndDate = nil
	if req.LeaveEndDate != nil {
		end, _ := validator.ParseDateIn(*req.LeaveEndDate, now.Location())
		row.LeaveEndDate = &end
	}
	row.Apply(monitoring.Derive(row, clock.Date(now)))
	row.UpdatedAt = now

	if err := s.MonitoringRepository.UpdateLeave(ctx, row); err != nil {
		return monitoring.MonitoringResponse{}, err
	}

	slog.Info("Leave recorded", "employee_id", row.EmployeeID, "last_leave_date", last.Format("2006-01-02"), "status", row.Status)
	s.invalidate(ctx)

	return monitoring.NewMonitoringResponse(row), nil
}

func (s *AutomatonImpl) invalidate(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(context.WithoutCancel(ctx), attendance.ViewLeaveMonitoring)
	}
}
