package attendance

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/schedule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	credentialService "github.com/cmlabs-hris/hris-attendance-go/internal/service/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRosterRepo struct{}

func (failingRosterRepo) ListByEmployeeAndDate(context.Context, string, time.Time) ([]schedule.RosterSchedule, error) {
	return nil, errors.New("connection refused")
}

func (failingRosterRepo) ListByDate(context.Context, time.Time) ([]schedule.RosterSchedule, error) {
	return nil, errors.New("connection refused")
}

type scanFixture struct {
	svc     attendance.AttendanceService
	clock   *clock.Fake
	store   *memory.Store
	inv     *recordingInvalidator
	payload string
}

func newScanFixture(t *testing.T, rosterRepo schedule.RosterRepository) *scanFixture {
	t.Helper()

	store := newStore()
	store.PutRoster(roster("Shift 1"))

	clk := clock.NewFake(at("07:00"))
	issuer, err := credentialService.NewIssuer("test-secret", clk)
	require.NoError(t, err)
	creds := credentialService.NewCredentialService(memory.NewTokenRepository(store), memory.NewEmployeeRepository(store), issuer, clk)

	issued, err := creds.IssueCredential(context.Background(), "123")
	require.NoError(t, err)

	if rosterRepo == nil {
		rosterRepo = memory.NewRosterRepository(store)
	}

	inv := &recordingInvalidator{}
	attendanceRepo := memory.NewAttendanceRepository(store)
	ledger := NewLedgerGuard(attendanceRepo, inv, clk, time.Second)

	return &scanFixture{
		svc:     NewAttendanceService(attendanceRepo, rosterRepo, creds, ledger, clk),
		clock:   clk,
		store:   store,
		inv:     inv,
		payload: issued.Payload,
	}
}

func TestScan_AcceptThenAlreadyAttended(t *testing.T) {
	f := newScanFixture(t, nil)
	ctx := context.Background()

	resp, err := f.svc.Scan(ctx, attendance.ScanRequest{Raw: f.payload})
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeAccepted, resp.Outcome)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, "Shift 1", resp.Attendance.Shift)
	assert.Equal(t, "2024-03-15", resp.Date)
	assert.NotEmpty(t, f.inv.Keys())

	f.clock.Set(at("14:05"))
	resp, err = f.svc.Scan(ctx, attendance.ScanRequest{Raw: f.payload})
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeRejected, resp.Outcome)
	assert.Equal(t, attendance.ReasonAlreadyAttended, resp.Reason)
	assert.Nil(t, resp.Attendance)
}

func TestScan_OutsideWindow(t *testing.T) {
	f := newScanFixture(t, nil)
	f.clock.Set(at("17:00"))

	resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: f.payload})
	require.NoError(t, err)
	assert.Equal(t, attendance.ReasonOutsideShiftWindow, resp.Reason)
	require.NotNil(t, resp.RequiredWindow)
	assert.Equal(t, "05:00", resp.RequiredWindow.Start)
	assert.Equal(t, "15:30", resp.RequiredWindow.End)
	assert.Equal(t, "17:00", resp.ActualTime)
}

func TestScan_InvalidPayloads(t *testing.T) {
	f := newScanFixture(t, nil)

	oversized := `{"id":"123","token":"` + strings.Repeat("x", 5000) + `"}`
	for _, raw := range []string{"", "garbage", `{"id":"123","token":"forged"}`, "https://app.example.com/q/unknown", oversized} {
		resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: raw})
		require.NoError(t, err)
		assert.Equal(t, attendance.ReasonInvalidQR, resp.Reason, "%.40s", raw)
	}
}

func TestScan_CompactPayload(t *testing.T) {
	f := newScanFixture(t, nil)

	cred, err := credentialService.Decode(f.payload)
	require.NoError(t, err)

	resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: "https://app.example.com/q/" + cred.Token})
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeAccepted, resp.Outcome)
	assert.Equal(t, "123", resp.EmployeeID)
}

func TestScan_URLAssertedIsWarned(t *testing.T) {
	f := newScanFixture(t, nil)

	resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: "https://app.example.com/mobile-driver?nik=123"})
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeWarned, resp.Outcome)
	assert.Contains(t, resp.Warnings, attendance.WarningUnboundIdentity)
	require.NotNil(t, resp.Attendance)
	assert.Equal(t, attendance.StatusFlagged, resp.Attendance.Status)
}

func TestScan_NotScheduled(t *testing.T) {
	f := newScanFixture(t, nil)
	f.clock.Set(at("07:00").AddDate(0, 0, 1))

	resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: f.payload})
	require.NoError(t, err)
	assert.Equal(t, attendance.ReasonNotScheduled, resp.Reason)
	assert.Equal(t, "2024-03-16", resp.Date)
}

func TestScan_StorageUnavailable(t *testing.T) {
	f := newScanFixture(t, failingRosterRepo{})

	resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: f.payload})
	require.NoError(t, err)
	assert.Equal(t, attendance.OutcomeRejected, resp.Outcome)
	assert.Equal(t, attendance.ReasonStorageUnavailable, resp.Reason)
	assert.Equal(t, "123", resp.EmployeeID)
}

func TestScan_InvalidRequest(t *testing.T) {
	f := newScanFixture(t, nil)
	blank := "  "

	_, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: f.payload, ScannerID: &blank})
	assert.Error(t, err)
}

func TestScan_ConcurrentDuplicates(t *testing.T) {
	f := newScanFixture(t, nil)

	const n = 20
	responses := make([]attendance.ScanResponse, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := f.svc.Scan(context.Background(), attendance.ScanRequest{Raw: f.payload})
			assert.NoError(t, err)
			responses[i] = resp
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, resp := range responses {
		if resp.Outcome == attendance.OutcomeAccepted {
			accepted++
			continue
		}
		assert.Equal(t, attendance.ReasonAlreadyAttended, resp.Reason)
	}
	assert.Equal(t, 1, accepted)
}
