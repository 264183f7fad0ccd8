package monitoring

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context, ...string) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *countingInvalidator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func strPtr(s string) *string { return &s }

type fixture struct {
	automaton monitoring.Automaton
	repo      monitoring.MonitoringRepository
	clock     *clock.Fake
	inv       *countingInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	for _, id := range []string{"100", "200", "300"} {
		store.PutEmployee(employee.Employee{ID: id, FullName: "Employee " + id, EmploymentStatus: employee.EmploymentStatusActive})
	}

	clk := clock.NewFake(time.Date(2024, 8, 20, 6, 0, 0, 0, wib))
	repo := memory.NewMonitoringRepository(store)
	inv := &countingInvalidator{}

	return &fixture{
		automaton: NewAutomaton(repo, memory.NewEmployeeRepository(store), inv, clk),
		repo:      repo,
		clock:     clk,
		inv:       inv,
	}
}

func TestEnroll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.automaton.Enroll(ctx, monitoring.EnrollRequest{
		EmployeeID:    "100",
		LeaveOption:   "70",
		LastLeaveDate: strPtr("2024-06-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, 66, resp.MonitoringDays)
	assert.Equal(t, monitoring.StatusMenungguCuti, resp.Status)
	require.NotNil(t, resp.NextLeaveDate)
	assert.Equal(t, "2024-08-24", *resp.NextLeaveDate)
	require.NotNil(t, resp.EmployeeName)
	assert.Equal(t, 1, f.inv.Calls())

	_, err = f.automaton.Enroll(ctx, monitoring.EnrollRequest{EmployeeID: "100", LeaveOption: "35"})
	assert.ErrorIs(t, err, monitoring.ErrAlreadyEnrolled)

	_, err = f.automaton.Enroll(ctx, monitoring.EnrollRequest{EmployeeID: "999", LeaveOption: "35"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = f.automaton.Enroll(ctx, monitoring.EnrollRequest{EmployeeID: "200", LeaveOption: "42"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestEnroll_WithoutLeaveHistory(t *testing.T) {
	f := newFixture(t)

	resp, err := f.automaton.Enroll(context.Background(), monitoring.EnrollRequest{EmployeeID: "200", LeaveOption: "35"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.MonitoringDays)
	assert.Equal(t, monitoring.StatusAktif, resp.Status)
	assert.Nil(t, resp.NextLeaveDate)
}

func TestRecompute_AdvancesWithTheCalendar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.automaton.Enroll(ctx, monitoring.EnrollRequest{EmployeeID: "100", LeaveOption: "70", LastLeaveDate: strPtr("2024-06-20")})
	require.NoError(t, err)
	_, err = f.automaton.Enroll(ctx, monitoring.EnrollRequest{EmployeeID: "200", LeaveOption: "35", LastLeaveDate: strPtr("2024-08-10")})
	require.NoError(t, err)

	row, err := f.repo.GetByEmployeeID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, 61, row.MonitoringDays)
	assert.Equal(t, monitoring.StatusAktif, row.Status)

	f.clock.Advance(4 * 24 * time.Hour)
	result, err := f.automaton.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 2, result.Changed)

	row, err = f.repo.GetByEmployeeID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, 65, row.MonitoringDays)
	assert.Equal(t, monitoring.StatusMenungguCuti, row.Status)
}

func TestRecompute_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.automaton.Enroll(ctx, monitoring.EnrollRequest{EmployeeID: "100", LeaveOption: "70", LastLeaveDate: strPtr("2024-06-20")})
	require.NoError(t, err)
	f.clock.Advance(24 * time.Hour)

	first, err := f.automaton.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Changed)
	before, err := f.repo.List(ctx)
	require.NoError(t, err)
	calls := f.inv.Calls()

	// later the same day
	f.clock.Advance(3 * time.Hour)
	second, err := f.automaton.Recompute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Changed)
	assert.Equal(t, calls, f.inv.Calls(), "no change, no invalidation")

	after, err := f.repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecordLeave_RestartsCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.automaton.Enroll(ctx, monitoring.EnrollRequest{EmployeeID: "100", LeaveOption: "70", LastLeaveDate: strPtr("2024-05-01")})
	require.NoError(t, err)

	resp, err := f.automaton.RecordLeave(ctx, monitoring.RecordLeaveRequest{
		EmployeeID:    "100",
		LastLeaveDate: "2024-08-18",
		LeaveEndDate:  strPtr("2024-08-25"),
	})
	require.NoError(t, err)
	assert.Equal(t, monitoring.StatusSedangCuti, resp.Status)
	assert.Equal(t, 2, resp.MonitoringDays)

	// three days after the leave ends
	f.clock.Set(time.Date(2024, 8, 28, 6, 0, 0, 0, wib))
	_, err = f.automaton.Recompute(ctx)
	require.NoError(t, err)
	row, err := f.repo.GetByEmployeeID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, monitoring.StatusSelesaiCuti, row.Status)

	f.clock.Set(time.Date(2024, 8, 29, 6, 0, 0, 0, wib))
	_, err = f.automaton.Recompute(ctx)
	require.NoError(t, err)
	row, err = f.repo.GetByEmployeeID(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, monitoring.StatusAktif, row.Status)

	_, err = f.automaton.RecordLeave(ctx, monitoring.RecordLeaveRequest{EmployeeID: "300", LastLeaveDate: "2024-08-18"})
	assert.ErrorIs(t, err, monitoring.ErrMonitoringNotFound)

	_, err = f.automaton.RecordLeave(ctx, monitoring.RecordLeaveRequest{EmployeeID: "100", LastLeaveDate: "2024-08-18", LeaveEndDate: strPtr("2024-08-01")})
	assert.Error(t, err)
}
