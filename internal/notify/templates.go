package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/joshua-takyi/salon/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const displayLayout = "January 2, 2006 03:04 PM"

const (
	pageBookingNotification = "booking_notification.html"
	pageBookingConfirmation = "booking_confirmation.html"
	pageBookingRejection    = "booking_rejection.html"
	pageContactNotification = "contact_notification.html"
)

type pageData struct {
	Salon    string
	Booking  *models.Booking
	Feedback *models.Feedback
}

// Renderer turns bookings and feedback into HTML bodies. Times are shown in
// the salon timezone.
type Renderer struct {
	salon string
	pages map[string]*template.Template
}

func NewRenderer(salon string, loc *time.Location) (*Renderer, error) {
	funcs := template.FuncMap{
		"when": func(t time.Time) string { return t.In(loc).Format(displayLayout) },
	}
	r := &Renderer{salon: salon, pages: map[string]*template.Template{}}
	for _, page := range []string{pageBookingNotification, pageBookingConfirmation, pageBookingRejection, pageContactNotification} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

func (r *Renderer) render(page string, data pageData) (string, error) {
	t, ok := r.pages[page]
	if !ok {
		return "", fmt.Errorf("unknown template %s", page)
	}
	data.Salon = r.salon
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", page, err)
	}
	return buf.String(), nil
}

func (r *Renderer) BookingNotification(b *models.Booking) (string, string, error) {
	body, err := r.render(pageBookingNotification, pageData{Booking: b})
	return "New Booking Received", body, err
}

func (r *Renderer) BookingConfirmation(b *models.Booking) (string, string, error) {
	body, err := r.render(pageBookingConfirmation, pageData{Booking: b})
	return "Booking Confirmed - " + r.salon, body, err
}

func (r *Renderer) BookingRejection(b *models.Booking) (string, string, error) {
	body, err := r.render(pageBookingRejection, pageData{Booking: b})
	return "Booking Update - " + r.salon, body, err
}

func (r *Renderer) ContactNotification(f *models.Feedback) (string, string, error) {
	body, err := r.render(pageContactNotification, pageData{Feedback: f})
	return "New Contact Form Submission - " + r.salon, body, err
}
