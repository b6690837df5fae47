package cleanup

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	cutoffs []time.Time
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (f *fakeStore) DeleteBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	f.cutoffs = append(f.cutoffs, cutoff)
	f.mu.Unlock()
	return 2, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweepUsesGracePeriod(t *testing.T) {
	store := &fakeStore{}
	s := NewSweeper(store, 24*time.Hour, quietLogger())
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	n, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.Len(t, store.cutoffs, 1)
	assert.Equal(t, now.Add(-24*time.Hour), store.cutoffs[0])
}

func TestSweepRejectsConcurrentRun(t *testing.T) {
	store := &fakeStore{release: make(chan struct{})}
	s := NewSweeper(store, time.Hour, quietLogger())

	go func() { _, _ = s.Sweep(context.Background()) }()
	require.Eventually(t, func() bool { return store.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	_, err := s.Sweep(context.Background())
	assert.ErrorIs(t, err, ErrSweepInProgress)

	close(store.release)
	require.Eventually(t, func() bool {
		_, err := s.Sweep(context.Background())
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestSweepWrapsStoreError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSweeper(&fakeStore{err: boom}, time.Hour, quietLogger())
	_, err := s.Sweep(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestSchedulerRunsSweeper(t *testing.T) {
	store := &fakeStore{}
	sched, err := NewScheduler(NewSweeper(store, time.Hour, quietLogger()), time.Hour, quietLogger())
	require.NoError(t, err)
	sched.Start()
	defer func() { _ = sched.Shutdown() }()

	require.NoError(t, sched.RunNow())
	assert.Eventually(t, func() bool { return store.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}
