package attendance

import (
	"context"
	"time"
)

// Invalidator drops cached views and notifies live viewers.
// Implementations must not block and must not fail the caller.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// CommitRequest carries the admitted identity and attendance fields.
type CommitRequest struct {
	EmployeeID       string
	Date             time.Time
	Time             time.Time
	Shift            string
	ScannerID        *string
	CredentialFormat string
	Warnings         []Warning
}

// LedgerGuard enforces at most one attendance record per employee per day.
type LedgerGuard interface {
	// Commit returns the stored record or a *ConflictError
	Commit(ctx context.Context, req CommitRequest) (AttendanceRecord, error)
}

// AttendanceService runs the full scan pipeline.
type AttendanceService interface {
	// Scan decodes, verifies, decides and commits one scanned payload
	Scan(ctx context.Context, req ScanRequest) (ScanResponse, error)
}
