package models

import (
	"context"
	"strings"
	"time"

	"github.com/joshua-takyi/salon/internal/schedule"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusAccepted  BookingStatus = "accepted"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return st, true
	}
	return "", false
}

// Blocks reports whether a booking in this status still holds its slot.
func (s BookingStatus) Blocks() bool {
	return s != StatusRejected && s != StatusCancelled
}

type Booking struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Datetime        time.Time          `bson:"datetime" json:"datetime"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone" json:"phone"`
	ServiceName     string             `bson:"serviceName" json:"serviceName"`
	ServiceDuration int                `bson:"serviceDuration" json:"serviceDuration"`
	Status          BookingStatus      `bson:"status" json:"status"`
	Active          bool               `bson:"active" json:"-"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (b *Booking) Duration() time.Duration {
	return time.Duration(b.ServiceDuration) * time.Minute
}

func (b *Booking) Interval() schedule.Interval {
	return schedule.NewInterval(b.Datetime, b.Duration())
}

func (b *Booking) IsActive() bool {
	return b.Status.Blocks()
}

// BookingRequest is the public booking form. Datetime stays a string so the
// service can interpret naive values in the salon timezone.
type BookingRequest struct {
	Datetime        string `json:"datetime" validate:"required"`
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,contactemail"`
	Phone           string `json:"phone" validate:"required,inmobile"`
	ServiceName     string `json:"serviceName" validate:"required"`
	ServiceDuration int    `json:"serviceDuration,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// BookingQuery narrows ListActiveBookings. An empty ServiceName matches every service.
type BookingQuery struct {
	ServiceName string
	From        time.Time
	To          time.Time
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *Booking) (*Booking, error)
	ListBookings(ctx context.Context) ([]*Booking, error)
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	ListActiveBookings(ctx context.Context, q BookingQuery) ([]*Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) (*Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	DeleteBookingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

func (b *Booking) BeforeCreate() {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	b.Active = b.Status.Blocks()
}
