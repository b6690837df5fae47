package notify

import (
	"log/slog"

	"github.com/joshua-takyi/salon/internal/models"
)

// Notifier decides who hears about what and hands the mail to the
// dispatcher. Every method returns immediately.
type Notifier struct {
	dispatcher *Dispatcher
	renderer   *Renderer
	owner      string
	logger     *slog.Logger
}

func NewNotifier(dispatcher *Dispatcher, renderer *Renderer, ownerEmail string, logger *slog.Logger) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		renderer:   renderer,
		owner:      ownerEmail,
		logger:     logger,
	}
}

func (n *Notifier) BookingReceived(b *models.Booking) {
	if n.owner == "" {
		n.logger.Debug("no owner email configured, skipping booking notification")
		return
	}
	subject, body, err := n.renderer.BookingNotification(b)
	n.enqueue(n.owner, b.Email, subject, body, err)
}

// BookingStatusChanged mails the customer for accepted and rejected bookings.
// Other statuses are silent.
func (n *Notifier) BookingStatusChanged(b *models.Booking) {
	var (
		subject, body string
		err           error
	)
	switch b.Status {
	case models.StatusAccepted:
		subject, body, err = n.renderer.BookingConfirmation(b)
	case models.StatusRejected:
		subject, body, err = n.renderer.BookingRejection(b)
	default:
		return
	}
	n.enqueue(b.Email, n.owner, subject, body, err)
}

func (n *Notifier) ContactReceived(f *models.Feedback) {
	if n.owner == "" {
		n.logger.Debug("no owner email configured, skipping contact notification")
		return
	}
	subject, body, err := n.renderer.ContactNotification(f)
	n.enqueue(n.owner, f.Email, subject, body, err)
}

func (n *Notifier) enqueue(to, replyTo, subject, body string, err error) {
	if err != nil {
		n.logger.Error("failed to render email", slog.String("subject", subject), slog.String("error", err.Error()))
		return
	}
	if to == "" {
		return
	}
	n.dispatcher.Dispatch(Message{To: []string{to}, ReplyTo: replyTo, Subject: subject, HTML: body})
}
