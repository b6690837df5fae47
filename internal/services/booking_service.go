package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joshua-takyi/salon/internal/httperr"
	"github.com/joshua-takyi/salon/internal/models"
	"github.com/joshua-takyi/salon/internal/schedule"
	"github.com/joshua-takyi/salon/internal/timezone"
)

const (
	lockTTL      = 30 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

const (
	msgSlotTaken  = "That time and date has already been booked"
	msgSlotBusy   = "This slot is being booked by someone else, please retry"
	msgNotFound   = "Booking not found"
	msgBadStatus  = "Invalid status. Must be one of: pending, accepted, rejected, cancelled"
	msgBadService = "Unknown service"
)

type BookingNotifier interface {
	BookingReceived(b *models.Booking)
	BookingStatusChanged(b *models.Booking)
}

type BookingOptions struct {
	Catalog *schedule.Catalog
	Hours   schedule.BusinessHours
	Rule    schedule.Rule
}

type BookingService struct {
	repo     models.BookingRepo
	locker   models.Locker
	notifier BookingNotifier
	catalog  *schedule.Catalog
	hours    schedule.BusinessHours
	rule     schedule.Rule
	logger   *slog.Logger
	now      func() time.Time
}

func NewBookingService(repo models.BookingRepo, locker models.Locker, notifier BookingNotifier, opts BookingOptions, logger *slog.Logger) *BookingService {
	if opts.Catalog == nil {
		opts.Catalog = schedule.DefaultCatalog()
	}
	if opts.Rule == "" {
		opts.Rule = schedule.RuleOverlap
	}
	if opts.Hours.Location == nil {
		opts.Hours.Location = timezone.Location(timezone.DefaultTimezone)
	}
	return &BookingService{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		catalog:  opts.Catalog,
		hours:    opts.Hours,
		rule:     opts.Rule,
		logger:   logger,
		now:      time.Now,
	}
}

func (bs *BookingService) Services() []schedule.Service {
	return bs.catalog.All()
}

func (bs *BookingService) lookupService(name string) (schedule.Service, error) {
	if strings.TrimSpace(name) == "" {
		return schedule.Service{}, httperr.Validation("serviceName is required")
	}
	svc, ok := bs.catalog.Lookup(name)
	if !ok {
		return schedule.Service{}, httperr.Validation(msgBadService)
	}
	return svc, nil
}

func (bs *BookingService) SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.ServiceName = strings.TrimSpace(req.ServiceName)
	if err := models.Validate.Struct(req); err != nil {
		return nil, validationErr(err)
	}

	svc, err := bs.lookupService(req.ServiceName)
	if err != nil {
		return nil, err
	}
	start, err := timezone.ParseInstant(req.Datetime, bs.hours.Location)
	if err != nil {
		return nil, httperr.Validation("datetime is not a valid date and time")
	}
	if !start.After(bs.now()) {
		return nil, httperr.Validation("Cannot book a time in the past")
	}
	if !bs.hours.OnGrid(start) {
		return nil, httperr.Validation("Selected time is outside business hours")
	}
	if req.ServiceDuration != 0 && req.ServiceDuration != svc.DurationMinutes {
		bs.logger.DebugContext(ctx, "client duration ignored",
			slog.String("service", svc.Name),
			slog.Int("client", req.ServiceDuration),
			slog.Int("catalog", svc.DurationMinutes),
		)
	}

	booking := &models.Booking{
		Datetime:        start,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		ServiceName:     svc.Name,
		ServiceDuration: svc.DurationMinutes,
		Status:          models.StatusPending,
	}

	err = bs.withSlotLock(ctx, svc.Name, start, func() error {
		if err := bs.ensureFree(ctx, schedule.NewInterval(start, svc.Duration()), svc.Name, ""); err != nil {
			return err
		}
		if _, err := bs.repo.CreateBooking(ctx, booking); err != nil {
			if errors.Is(err, models.ErrDuplicate) {
				return httperr.Conflict(msgSlotTaken)
			}
			return storeErr(err, msgNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	bs.notifier.BookingReceived(booking)
	return booking, nil
}

// withSlotLock runs fn while holding the advisory lock for the service and
// the salon day of start.
func (bs *BookingService) withSlotLock(ctx context.Context, service string, start time.Time, fn func() error) error {
	key := fmt.Sprintf("booking:%s:%s", service, start.In(bs.hours.Location).Format(time.DateOnly))

	var (
		owner string
		err   error
	)
	for attempt := 0; attempt < lockAttempts; attempt++ {
		if owner, err = bs.locker.AcquireLock(ctx, key, lockTTL); !errors.Is(err, models.ErrLockHeld) {
			break
		}
		select {
		case <-ctx.Done():
			return httperr.Conflict(msgSlotBusy)
		case <-time.After(lockBackoff):
		}
	}
	if errors.Is(err, models.ErrLockHeld) {
		return httperr.Conflict(msgSlotBusy)
	}
	if err != nil {
		return storeErr(err, msgNotFound)
	}

	defer func() {
		if err := bs.locker.ReleaseLock(context.WithoutCancel(ctx), key, owner); err != nil {
			bs.logger.WarnContext(ctx, "failed to release booking lock", slog.String("key", key), slog.String("error", err.Error()))
		}
	}()
	return fn()
}

// ensureFree fails with a conflict when an active booking of the same
// service collides with candidate under the configured rule. exclude skips
// one booking id.
func (bs *BookingService) ensureFree(ctx context.Context, candidate schedule.Interval, service, exclude string) error {
	existing, err := bs.repo.ListActiveBookings(ctx, models.BookingQuery{
		ServiceName: service,
		From:        candidate.Start.Add(-bs.catalog.MaxDuration()),
		To:          candidate.End,
	})
	if err != nil {
		return storeErr(err, msgNotFound)
	}
	kept := existing[:0]
	for _, b := range existing {
		if b.ID.Hex() != exclude {
			kept = append(kept, b)
		}
	}
	if schedule.Conflicts(bs.rule, candidate, schedule.BlockedIntervals(kept)) {
		return httperr.Conflict(msgSlotTaken)
	}
	return nil
}

func (bs *BookingService) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	bookings, err := bs.repo.ListBookings(ctx)
	if err != nil {
		return nil, storeErr(err, msgNotFound)
	}
	return bookings, nil
}

// CheckSlot reports whether datetime is free. Without a service it only
// looks for an active booking starting at that exact instant.
func (bs *BookingService) CheckSlot(ctx context.Context, datetime, serviceName string) (bool, error) {
	start, err := timezone.ParseInstant(datetime, bs.hours.Location)
	if err != nil {
		return false, httperr.Validation("datetime is not a valid date and time")
	}

	if strings.TrimSpace(serviceName) == "" {
		existing, err := bs.repo.ListActiveBookings(ctx, models.BookingQuery{From: start, To: start.Add(time.Millisecond)})
		if err != nil {
			return false, storeErr(err, msgNotFound)
		}
		return len(existing) == 0, nil
	}

	svc, err := bs.lookupService(serviceName)
	if err != nil {
		return false, err
	}
	if err := bs.ensureFree(ctx, schedule.NewInterval(start, svc.Duration()), svc.Name, ""); err != nil {
		if httperr.Is(err, httperr.KindConflict) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// dayBookings loads active bookings that can intrude on the salon day
// containing date. An empty service matches all services.
func (bs *BookingService) dayBookings(ctx context.Context, date time.Time, service string) ([]*models.Booking, error) {
	start, end, _ := bs.hours.Day(date)
	if start.IsZero() {
		y, m, d := date.In(bs.hours.Location).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, bs.hours.Location)
		end = start.AddDate(0, 0, 1)
	}
	bookings, err := bs.repo.ListActiveBookings(ctx, models.BookingQuery{
		ServiceName: service,
		From:        start.Add(-bs.catalog.MaxDuration()),
		To:          end,
	})
	if err != nil {
		return nil, storeErr(err, msgNotFound)
	}
	return bookings, nil
}

func (bs *BookingService) Availability(ctx context.Context, date, serviceName string) ([]time.Time, error) {
	day, err := timezone.ParseDate(date, bs.hours.Location)
	if err != nil {
		return nil, httperr.Validation("date must be in YYYY-MM-DD format")
	}
	svc, err := bs.lookupService(serviceName)
	if err != nil {
		return nil, err
	}
	candidates := bs.upcoming(bs.hours.Slots(day))
	if len(candidates) == 0 {
		return candidates, nil
	}
	bookings, err := bs.dayBookings(ctx, day, svc.Name)
	if err != nil {
		return nil, err
	}
	return schedule.ComputeAvailability(candidates, svc.Duration(), schedule.BlockedIntervals(bookings)), nil
}

// upcoming drops slots that admission would refuse as already started.
func (bs *BookingService) upcoming(slots []time.Time) []time.Time {
	now := bs.now()
	kept := slots[:0]
	for _, slot := range slots {
		if slot.After(now) {
			kept = append(kept, slot)
		}
	}
	return kept
}

// UnavailableSlots returns the occupied intervals of a day, for one service
// or for all when serviceName is empty.
func (bs *BookingService) UnavailableSlots(ctx context.Context, date, serviceName string) ([]schedule.Interval, error) {
	day, err := timezone.ParseDate(date, bs.hours.Location)
	if err != nil {
		return nil, httperr.Validation("date must be in YYYY-MM-DD format")
	}
	service := ""
	if strings.TrimSpace(serviceName) != "" {
		svc, err := bs.lookupService(serviceName)
		if err != nil {
			return nil, err
		}
		service = svc.Name
	}
	bookings, err := bs.dayBookings(ctx, day, service)
	if err != nil {
		return nil, err
	}
	return schedule.BlockedIntervals(bookings), nil
}

// SetStatus moves a booking to any status. Re-activating a rejected or
// cancelled booking is refused when its slot has been taken since.
func (bs *BookingService) SetStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	st, ok := models.ParseBookingStatus(status)
	if !ok {
		return nil, httperr.InvalidStatus(msgBadStatus)
	}

	current, err := bs.repo.GetBookingByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, msgNotFound)
	}

	var updated *models.Booking
	apply := func() error {
		b, err := bs.repo.UpdateBookingStatus(ctx, id, st)
		if errors.Is(err, models.ErrDuplicate) {
			return httperr.Conflict(msgSlotTaken)
		}
		if err != nil {
			return storeErr(err, msgNotFound)
		}
		updated = b
		return nil
	}

	if st.Blocks() && !current.IsActive() {
		err = bs.withSlotLock(ctx, current.ServiceName, current.Datetime, func() error {
			if err := bs.ensureFree(ctx, current.Interval(), current.ServiceName, current.ID.Hex()); err != nil {
				return err
			}
			return apply()
		})
	} else {
		err = apply()
	}
	if err != nil {
		return nil, err
	}

	bs.notifier.BookingStatusChanged(updated)
	return updated, nil
}

func (bs *BookingService) DeleteBooking(ctx context.Context, id string) error {
	return storeErr(bs.repo.DeleteBooking(ctx, id), msgNotFound)
}
