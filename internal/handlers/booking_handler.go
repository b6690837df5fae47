package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/salon/internal/models"
	"github.com/joshua-takyi/salon/internal/schedule"
)

type BookingAPI interface {
	Services() []schedule.Service
	SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	CheckSlot(ctx context.Context, datetime, serviceName string) (bool, error)
	Availability(ctx context.Context, date, serviceName string) ([]time.Time, error)
	UnavailableSlots(ctx context.Context, date, serviceName string) ([]schedule.Interval, error)
	SetStatus(ctx context.Context, id, status string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

func ListServices(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		respond(c, http.StatusOK, "", gin.H{"services": b.Services()})
	}
}

func CreateBooking(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BookingRequest
		if !bindJSON(c, &req) {
			return
		}
		booking, err := b.SubmitBooking(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Booking created successfully", gin.H{"booking": booking})
	}
}

func ListBookings(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := b.ListBookings(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"bookings": bookings})
	}
}

func CheckSlot(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		available, err := b.CheckSlot(c.Request.Context(), c.Query("datetime"), c.Query("serviceName"))
		if err != nil {
			respondError(c, err)
			return
		}
		message := "Slot is available"
		if !available {
			message = "Slot is already booked"
		}
		respond(c, http.StatusOK, message, gin.H{"available": available})
	}
}

func Availability(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		slots, err := b.Availability(c.Request.Context(), c.Query("date"), c.Query("serviceName"))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"slots": slots})
	}
}

func UnavailableSlots(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		intervals, err := b.UnavailableSlots(c.Request.Context(), c.Query("date"), c.Query("serviceName"))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "", gin.H{"unavailable": intervals})
	}
}

func UpdateBookingStatus(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.StatusRequest
		if !bindJSON(c, &req) {
			return
		}
		booking, err := b.SetStatus(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Booking status updated successfully", gin.H{"booking": booking})
	}
}

func DeleteBooking(b BookingAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := b.DeleteBooking(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Booking deleted successfully", nil)
	}
}
