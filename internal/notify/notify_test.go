package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/salon/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu    sync.Mutex
	sent  []Message
	block chan struct{}
	err   error
}

func (r *recordingMailer) Send(ctx context.Context, msg Message) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recordingMailer) messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.sent...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleBooking(status models.BookingStatus) *models.Booking {
	return &models.Booking{
		Name:            "Asha",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		ServiceName:     "Beard Trim",
		ServiceDuration: 20,
		Datetime:        time.Date(2025, 3, 10, 4, 30, 0, 0, time.UTC),
		Status:          status,
	}
}

func TestRendererFormatsInSalonTimezone(t *testing.T) {
	r, err := NewRenderer("My Hairstyles", time.FixedZone("IST", 19800))
	require.NoError(t, err)

	subject, body, err := r.BookingConfirmation(sampleBooking(models.StatusAccepted))
	require.NoError(t, err)
	assert.Equal(t, "Booking Confirmed - My Hairstyles", subject)
	assert.Contains(t, body, "March 10, 2025 10:00 AM")
	assert.Contains(t, body, "Beard Trim")
}

func TestRendererEscapesInput(t *testing.T) {
	r, err := NewRenderer("My Hairstyles", time.UTC)
	require.NoError(t, err)

	_, body, err := r.ContactNotification(&models.Feedback{Name: "<script>x</script>", Email: "a@b.in", Message: "hi"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestDispatcherDeliversAndDrains(t *testing.T) {
	m := &recordingMailer{}
	d := NewDispatcher(m, quietLogger())
	for i := 0; i < 5; i++ {
		d.Dispatch(Message{To: []string{"x@y.in"}, Subject: "s"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	assert.Len(t, m.messages(), 5)

	d.Dispatch(Message{Subject: "late"})
	assert.Len(t, m.messages(), 5)
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	m := &recordingMailer{block: make(chan struct{})}
	d := NewDispatcher(m, quietLogger())

	done := make(chan struct{})
	go func() {
		for i := 0; i < queueSize+10; i++ {
			d.Dispatch(Message{Subject: "s"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	close(m.block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	assert.LessOrEqual(t, len(m.messages()), queueSize+1)
}

func TestDispatcherSwallowsSendErrors(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp down")}
	d := NewDispatcher(m, quietLogger())
	d.Dispatch(Message{Subject: "s"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, d.Close(ctx))
	assert.Len(t, m.messages(), 1)
}

func TestNotifierRouting(t *testing.T) {
	r, err := NewRenderer("My Hairstyles", time.UTC)
	require.NoError(t, err)
	m := &recordingMailer{}
	d := NewDispatcher(m, quietLogger())
	n := NewNotifier(d, r, "owner@example.com", quietLogger())

	n.BookingReceived(sampleBooking(models.StatusPending))
	n.BookingStatusChanged(sampleBooking(models.StatusAccepted))
	n.BookingStatusChanged(sampleBooking(models.StatusRejected))
	n.BookingStatusChanged(sampleBooking(models.StatusCancelled))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))

	sent := m.messages()
	require.Len(t, sent, 3)
	assert.Equal(t, []string{"owner@example.com"}, sent[0].To)
	assert.Equal(t, "New Booking Received", sent[0].Subject)
	assert.Equal(t, []string{"asha@example.com"}, sent[1].To)
	assert.Equal(t, "Booking Update - My Hairstyles", sent[2].Subject)
}
