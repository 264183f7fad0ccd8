package monitoring

import "context"

// RecomputeResult summarizes one sweep.
type RecomputeResult struct {
	Scanned int `json:"scanned"`
	Changed int `json:"changed"`
	Stale   int `json:"stale"`
	Failed  int `json:"failed"`
}

// Automaton owns the derived leave-cycle status.
type Automaton interface {
	// Recompute sweeps all rows; a second run with unchanged data changes nothing
	Recompute(ctx context.Context) (RecomputeResult, error)

	// Enroll creates a row for an employee
	Enroll(ctx context.Context, req EnrollRequest) (MonitoringResponse, error)

	// RecordLeave registers a new leave period, restarting the cycle
	RecordLeave(ctx context.Context, req RecordLeaveRequest) (MonitoringResponse, error)
}
