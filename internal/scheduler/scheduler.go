package scheduler

import (
	"context"
	"log/slog"

	"github.com/pulsecheck-dev/pulsecheck/internal/monitor"
	"github.com/robfig/cron/v3"
)

// Scheduler triggers monitoring cycles on a cron cadence. It is a thin
// wrapper: all monitoring semantics live in the cycle itself, and the cycle
// stays idempotent whether fired from here or from the /api/cron endpoint.
type Scheduler struct {
	cron    *cron.Cron
	monitor *monitor.Monitor
}

func New(mon *monitor.Monitor) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		monitor: mon,
	}
}

// Start schedules cycles at the given cron spec and fires one immediately.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runCycle); err != nil {
		return err
	}

	s.cron.Start()

	go s.runCycle()

	slog.Info("scheduler started", slog.String("interval", spec))

	return nil
}

// Stop halts future triggers. A cycle already in flight runs to completion;
// overlap with the final cycle is bounded by the cadence, not prevented.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) runCycle() {
	result, err := s.monitor.RunCycle(context.Background())

	if err != nil {
		slog.Error("monitoring cycle failed", slog.Any("error", err))
		return
	}

	slog.Info("monitoring cycle completed",
		slog.Int("services", len(result.Services)),
		slog.Int("failures", len(result.Failures)))
}
