package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const sweepTimeout = time.Minute

// Scheduler runs the sweeper on a fixed interval. It is owned by main:
// Start on boot, Shutdown on exit.
type Scheduler struct {
	sched   gocron.Scheduler
	job     gocron.Job
	sweeper *Sweeper
	logger  *slog.Logger
}

func NewScheduler(sweeper *Sweeper, interval time.Duration, logger *slog.Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	s := &Scheduler{sched: sched, sweeper: sweeper, logger: logger}

	job, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run),
		gocron.WithName("expired-booking-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule cleanup job: %w", err)
	}
	s.job = job
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	if _, err := s.sweeper.Sweep(ctx); err != nil {
		if errors.Is(err, ErrSweepInProgress) {
			s.logger.Debug("cleanup skipped, previous sweep still running")
			return
		}
		s.logger.Error("cleanup failed", slog.String("error", err.Error()))
	}
}

func (s *Scheduler) Start() {
	s.sched.Start()
	s.logger.Info("cleanup scheduler started")
}

// RunNow triggers an extra run outside the regular interval.
func (s *Scheduler) RunNow() error {
	return s.job.RunNow()
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
