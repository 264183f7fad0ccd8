package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/monitoring"
)

type MonitoringJobs struct {
	automaton monitoring.Automaton
	interval  time.Duration
}

func NewMonitoringJobs(automaton monitoring.Automaton, interval time.Duration) *MonitoringJobs {
	return &MonitoringJobs{
		automaton: automaton,
		interval:  interval,
	}
}

func (j *MonitoringJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_leave_monitoring", j.interval, j.RecomputeLeaveMonitoring)
}

// RecomputeLeaveMonitoring runs one sweep, bounded by the tick interval so a
// slow sweep never overlaps the next one.
func (j *MonitoringJobs) RecomputeLeaveMonitoring(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.interval)
	defer cancel()

	result, err := j.automaton.Recompute(ctx)
	if err != nil {
		return err
	}
	if result.Changed > 0 {
		slog.Info("Cron: leave monitoring updated", "changed", result.Changed, "stale", result.Stale)
	}
	return nil
}
