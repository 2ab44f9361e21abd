// Package scheduler runs periodic maintenance jobs such as the static page
// integrity sweep.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"

	"pawstails/internal/logger"
	"pawstails/internal/models"
)

// Sweeper is the integrity check invoked on every tick.
type Sweeper interface {
	Sweep(ctx context.Context, autoRepair bool) (*models.IntegrityReport, error)
}

type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, ctx: ctx, cancel: cancel}, nil
}

func (s *Scheduler) Start() {
	logger.Log.Info("Starting scheduler", zap.Int("jobs", len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() error {
	logger.Log.Info("Stopping scheduler")
	s.cancel()
	return s.scheduler.Shutdown()
}

// ScheduleIntegritySweep runs sweeper every interval. A sweep still running
// when the next tick fires causes that tick to be skipped.
func (s *Scheduler) ScheduleIntegritySweep(interval time.Duration, sweeper Sweeper, autoRepair bool) (string, error) {
	if interval <= 0 {
		return "", errors.New("integrity interval must be positive")
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.runSweep(sweeper, autoRepair) }),
		gocron.WithName("integrity-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create integrity sweep job: %w", err)
	}
	logger.Log.Info("Integrity sweep scheduled",
		zap.Duration("interval", interval),
		zap.Bool("auto_repair", autoRepair),
	)
	return job.ID().String(), nil
}

func (s *Scheduler) runSweep(sweeper Sweeper, autoRepair bool) {
	start := time.Now()
	report, err := sweeper.Sweep(s.ctx, autoRepair)
	if err != nil {
		logger.Log.Error("Integrity sweep failed", zap.Error(err))
		return
	}
	logger.Log.Info("Integrity sweep finished",
		zap.Int("issues", len(report.Issues)),
		zap.Int("repaired", report.Repaired),
		zap.Duration("took", time.Since(start)),
	)
}
