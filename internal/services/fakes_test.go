package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/joshua-takyi/salon/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryBookings mirrors the Mongo store, including the partial unique index
// on (serviceName, datetime) over active bookings.
type memoryBookings struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	locks    map[string]string
	lockSeq  int
	err      error
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{bookings: map[string]*models.Booking{}, locks: map[string]string{}}
}

func (m *memoryBookings) clashes(b *models.Booking) bool {
	for _, other := range m.bookings {
		if other.ID != b.ID && other.Active && other.ServiceName == b.ServiceName && other.Datetime.Equal(b.Datetime) {
			return true
		}
	}
	return false
}

func (m *memoryBookings) CreateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	b.BeforeCreate()
	if b.Active && m.clashes(b) {
		return nil, models.ErrDuplicate
	}
	cp := *b
	m.bookings[b.ID.Hex()] = &cp
	return b, nil
}

func (m *memoryBookings) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return m.list(func(*models.Booking) bool { return true })
}

func (m *memoryBookings) list(keep func(*models.Booking) bool) ([]*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []*models.Booking{}
	for _, b := range m.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out, nil
}

func (m *memoryBookings) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memoryBookings) ListActiveBookings(ctx context.Context, q models.BookingQuery) ([]*models.Booking, error) {
	return m.list(func(b *models.Booking) bool {
		return b.Active &&
			(q.ServiceName == "" || b.ServiceName == q.ServiceName) &&
			!b.Datetime.Before(q.From) && b.Datetime.Before(q.To)
	})
}

func (m *memoryBookings) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	next := *b
	next.Status = status
	next.Active = status.Blocks()
	next.UpdatedAt = time.Now().UTC()
	if next.Active && m.clashes(&next) {
		return nil, models.ErrDuplicate
	}
	*b = next
	return &next, nil
}

func (m *memoryBookings) DeleteBooking(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return models.ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

func (m *memoryBookings) DeleteBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, b := range m.bookings {
		if b.Datetime.Before(cutoff) {
			delete(m.bookings, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryBookings) AcquireLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.locks[key]; held {
		return "", models.ErrLockHeld
	}
	m.lockSeq++
	owner := fmt.Sprintf("owner-%d", m.lockSeq)
	m.locks[key] = owner
	return owner, nil
}

func (m *memoryBookings) ReleaseLock(ctx context.Context, key, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[key] == owner {
		delete(m.locks, key)
	}
	return nil
}

// insert stores a booking directly, bypassing admission.
func (m *memoryBookings) insert(b models.Booking) *models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.Active = b.Status.Blocks()
	m.bookings[b.ID.Hex()] = &b
	cp := b
	return &cp
}

type recordingNotifier struct {
	mu       sync.Mutex
	received []*models.Booking
	changed  []*models.Booking
	contacts []*models.Feedback
}

func (r *recordingNotifier) BookingReceived(b *models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, b)
}

func (r *recordingNotifier) BookingStatusChanged(b *models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, b)
}

func (r *recordingNotifier) ContactReceived(f *models.Feedback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, f)
}
