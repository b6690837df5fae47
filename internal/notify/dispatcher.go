package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	queueSize   = 100
	sendTimeout = 30 * time.Second
)

// Dispatcher sends mail from a single background worker. Dispatch never
// blocks; when the queue is full the message is dropped and logged.
type Dispatcher struct {
	mailer Mailer
	logger *slog.Logger
	queue  chan Message
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(mailer Mailer, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		logger: logger,
		queue:  make(chan Message, queueSize),
		done:   make(chan struct{}),
	}
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.mailer.Send(ctx, msg); err != nil {
			d.logger.Error("email delivery failed",
				slog.String("subject", msg.Subject),
				slog.Any("to", msg.To),
				slog.String("error", err.Error()),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Warn("dispatcher closed, dropping email", slog.String("subject", msg.Subject))
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("email queue full, dropping message", slog.String("subject", msg.Subject))
	}
}

// Close stops accepting messages and waits for queued ones until ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
