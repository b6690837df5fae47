package cleanup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

var ErrSweepInProgress = errors.New("cleanup already running")

type Store interface {
	DeleteBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper deletes bookings whose start is older than the grace period,
// whatever their status.
type Sweeper struct {
	store   Store
	grace   time.Duration
	logger  *slog.Logger
	now     func() time.Time
	running atomic.Bool
}

func NewSweeper(store Store, grace time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:  store,
		grace:  grace,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	if !s.running.CompareAndSwap(false, true) {
		return 0, ErrSweepInProgress
	}
	defer s.running.Store(false)

	cutoff := s.now().UTC().Add(-s.grace)
	deleted, err := s.store.DeleteBookingsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep bookings before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	s.logger.Info("expired bookings removed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)
	return deleted, nil
}
