// Package jobs holds scheduled background jobs.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"delivery-coordinator/internal/logx"
)

type violationFinder interface {
	AvailabilityViolations(ctx context.Context) ([]int64, error)
}

// AvailabilityAuditor periodically counts couriers whose availability disagrees
// with their active requests. It only reads; it never repairs.
type AvailabilityAuditor struct {
	repo     violationFinder
	gauge    prometheus.Gauge
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   logx.Logger
}

// NewAvailabilityAuditor creates the auditor. An empty schedule disables it.
func NewAvailabilityAuditor(repo violationFinder, gauge prometheus.Gauge, schedule string, timeout time.Duration, logger logx.Logger) *AvailabilityAuditor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &AvailabilityAuditor{
		repo:     repo,
		gauge:    gauge,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(logx.String("component", "availability_auditor")),
	}
}

// Start schedules the audit.
func (a *AvailabilityAuditor) Start() error {
	if a.schedule == "" {
		a.logger.Info("availability auditor disabled")
		return nil
	}
	if _, err := a.cron.AddFunc(a.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		if _, err := a.RunOnce(ctx); err != nil {
			a.logger.Error("availability audit failed", logx.Err(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule availability audit %q: %w", a.schedule, err)
	}

	a.cron.Start()
	a.logger.Info("availability auditor started", logx.String("schedule", a.schedule))
	return nil
}

// Stop stops scheduling and waits for a running audit up to ctx.
func (a *AvailabilityAuditor) Stop(ctx context.Context) {
	done := a.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	a.logger.Info("availability auditor stopped")
}

// RunOnce performs a single audit and returns the offending courier ids.
func (a *AvailabilityAuditor) RunOnce(ctx context.Context) ([]int64, error) {
	ids, err := a.repo.AvailabilityViolations(ctx)
	if err != nil {
		return nil, err
	}
	if a.gauge != nil {
		a.gauge.Set(float64(len(ids)))
	}
	if len(ids) > 0 {
		a.logger.Warn("courier availability violations",
			logx.Int("count", len(ids)),
			logx.Int64s("courier_ids", ids),
		)
	}
	return ids, nil
}
