package schedule

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the scan function on a cron schedule inside one
// long-lived process, for deployments without an external scheduler.
type Scheduler struct {
	cron *cron.Cron
	spec string
}

func New(spec string, run func()) (*Scheduler, error) {
	c := cron.New()

	if _, err := c.AddFunc(spec, func() {
		started := time.Now()
		slog.Info("Scheduled scan starting", "spec", spec)
		run()
		slog.Info("Scheduled scan finished", "duration", time.Since(started).String())
	}); err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	return &Scheduler{cron: c, spec: spec}, nil
}

func (s *Scheduler) Start() {
	slog.Info("Scheduler started", "spec", s.spec)
	s.cron.Start()
}

// Stop halts scheduling and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}
