package views

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/sse"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// employeeViewDepth is how many records the per-employee view keeps cached
const employeeViewDepth = 100

var hundred = decimal.NewFromInt(100)

type ViewServiceImpl struct {
	attendance.AttendanceRepository
	dashboard.DashboardRepository
	monitoring.MonitoringRepository
	cache *cache.Cache
	hub   *sse.Hub
	clock clock.Clock
}

func NewViewService(
	attendanceRepo attendance.AttendanceRepository,
	dashboardRepo dashboard.DashboardRepository,
	monitoringRepo monitoring.MonitoringRepository,
	viewCache *cache.Cache,
	hub *sse.Hub,
	clk clock.Clock,
) dashboard.ViewService {
	return &ViewServiceImpl{
		AttendanceRepository: attendanceRepo,
		DashboardRepository:  dashboardRepo,
		MonitoringRepository: monitoringRepo,
		cache:                viewCache,
		hub:                  hub,
		clock:                clk,
	}
}

// Invalidate implements attendance.Invalidator. It never blocks on slow
// subscribers and never fails the caller.
func (s *ViewServiceImpl) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	s.cache.Invalidate(keys...)

	if s.hub == nil {
		return
	}
	for _, key := range keys {
		s.hub.Publish(sse.Event{
			Topic: TopicOf(key),
			Event: "invalidate",
			Data:  map[string]string{"event": "invalidate", "key": key},
		})
	}
	slog.Debug("Views invalidated", "keys", keys)
}

// TopicOf maps a view key to the SSE topic announcing its changes.
func TopicOf(key string) string {
	switch {
	case strings.HasPrefix(key, attendance.ViewEmployeePrefix):
		return sse.TopicAttendance
	case strings.HasPrefix(key, attendance.ViewDailyDashboardPrefix),
		strings.HasPrefix(key, attendance.ViewRosterAttendancePrefix):
		return sse.TopicDashboard
	case key == attendance.ViewLeaveMonitoring:
		return sse.TopicLeaveMonitoring
	default:
		return sse.TopicAll
	}
}

// GetDailyDashboard implements dashboard.ViewService.
func (s *ViewServiceImpl) GetDailyDashboard(ctx context.Context, date time.Time) (dashboard.DailyDashboardResponse, error) {
	date = clock.Date(date)
	return cache.GetOrLoad(ctx, s.cache, attendance.DailyDashboardKey(date), func(ctx context.Context) (dashboard.DailyDashboardResponse, error) {
		var (
			rows        []dashboard.RosterAttendanceRow
			records     []attendance.AttendanceRecord
			unscheduled int64
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			rows, err = s.DashboardRepository.GetRosterAttendance(gctx, date)
			return err
		})
		g.Go(func() error {
			var err error
			records, err = s.AttendanceRepository.ListByDate(gctx, date)
			return err
		})
		g.Go(func() error {
			var err error
			unscheduled, err = s.DashboardRepository.CountUnscheduledAttendance(gctx, date)
			return err
		})
		if err := g.Wait(); err != nil {
			return dashboard.DailyDashboardResponse{}, fmt.Errorf("failed to build daily dashboard: %w", err)
		}

		resp := summarize(rows, records)
		resp.Date = date.Format("2006-01-02")
		resp.Unscheduled = unscheduled
		resp.UpdatedAt = s.clock.Now().Format(time.RFC3339)
		return resp, nil
	})
}

// summarize counts each scheduled employee once, under the earliest roster
// row of the day.
func summarize(rows []dashboard.RosterAttendanceRow, records []attendance.AttendanceRecord) dashboard.DailyDashboardResponse {
	type counts struct{ scheduled, attended int64 }

	seen := make(map[string]bool)
	byShift := make(map[string]*counts)
	var order []string
	var total counts

	for _, row := range rows {
		if seen[row.EmployeeID] {
			continue
		}
		seen[row.EmployeeID] = true

		shift := row.ShiftName
		if name, err := schedule.NormalizeShift(row.ShiftName); err == nil {
			shift = string(name)
		}
		c, ok := byShift[shift]
		if !ok {
			c = &counts{}
			byShift[shift] = c
			order = append(order, shift)
		}

		c.scheduled++
		total.scheduled++
		if row.Attended() {
			c.attended++
			total.attended++
		}
	}

	resp := dashboard.DailyDashboardResponse{
		Scheduled:      total.scheduled,
		Attended:       total.attended,
		Absent:         total.scheduled - total.attended,
		AttendanceRate: rate(total.attended, total.scheduled),
		Shifts:         make([]dashboard.ShiftSummaryResponse, 0, len(order)),
	}
	for _, shift := range order {
		c := byShift[shift]
		resp.Shifts = append(resp.Shifts, dashboard.ShiftSummaryResponse{
			Shift:          shift,
			Scheduled:      c.scheduled,
			Attended:       c.attended,
			Absent:         c.scheduled - c.attended,
			AttendanceRate: rate(c.attended, c.scheduled),
		})
	}
	for _, rec := range records {
		if rec.Status == attendance.StatusFlagged {
			resp.Flagged++
		}
	}
	return resp
}

// rate is attended/scheduled as a percentage with two decimals
func rate(attended, scheduled int64) decimal.Decimal {
	if scheduled == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(attended).Mul(hundred).Div(decimal.NewFromInt(scheduled)).Round(2)
}

// GetRosterAttendance implements dashboard.ViewService.
func (s *ViewServiceImpl) GetRosterAttendance(ctx context.Context, date time.Time) (dashboard.RosterAttendanceResponse, error) {
	date = clock.Date(date)
	return cache.GetOrLoad(ctx, s.cache, attendance.RosterAttendanceKey(date), func(ctx context.Context) (dashboard.RosterAttendanceResponse, error) {
		rows, err := s.DashboardRepository.GetRosterAttendance(ctx, date)
		if err != nil {
			return dashboard.RosterAttendanceResponse{}, fmt.Errorf("failed to load roster attendance: %w", err)
		}

		items := make([]dashboard.RosterAttendanceItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, dashboard.NewRosterAttendanceItem(row))
		}
		return dashboard.RosterAttendanceResponse{
			Date:  date.Format("2006-01-02"),
			Items: items,
			Total: len(items),
		}, nil
	})
}

// GetEmployeeAttendance implements dashboard.ViewService.
func (s *ViewServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceResponse, error) {
	if limit <= 0 || limit > employeeViewDepth {
		limit = employeeViewDepth
	}

	all, err := cache.GetOrLoad(ctx, s.cache, attendance.EmployeeViewKey(employeeID), func(ctx context.Context) ([]attendance.AttendanceResponse, error) {
		records, err := s.AttendanceRepository.ListByEmployee(ctx, employeeID, employeeViewDepth)
		if err != nil {
			return nil, fmt.Errorf("failed to list employee attendance: %w", err)
		}
		out := make([]attendance.AttendanceResponse, 0, len(records))
		for _, rec := range records {
			out = append(out, attendance.NewAttendanceResponse(rec))
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// GetLeaveMonitoring implements dashboard.ViewService.
func (s *ViewServiceImpl) GetLeaveMonitoring(ctx context.Context) ([]monitoring.MonitoringResponse, error) {
	return cache.GetOrLoad(ctx, s.cache, attendance.ViewLeaveMonitoring, func(ctx context.Context) ([]monitoring.MonitoringResponse, error) {
		rows, err := s.MonitoringRepository.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list leave monitoring: %w", err)
		}
		out := make([]monitoring.MonitoringResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, monitoring.NewMonitoringResponse(row))
		}
		return out, nil
	})
}
