package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a wall clock time of day in minutes after midnight.
type Clock int

func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) on(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.In(loc).Date()
	return time.Date(y, m, d, int(c)/60, int(c)%60, 0, 0, loc)
}

type BusinessHours struct {
	Open       Clock
	Close      Clock
	Interval   time.Duration
	ClosedDays map[time.Weekday]bool
	Location   *time.Location
}

// ParseWeekdays reads a comma separated list such as "sunday,tuesday".
func ParseWeekdays(s string) (map[time.Weekday]bool, error) {
	out := map[time.Weekday]bool{}
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			if strings.ToLower(d.String()) == name || strings.ToLower(d.String()[:3]) == name {
				out[d] = true
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
	}
	return out, nil
}

// Day returns the opening window of the calendar day containing date.
// open is false when the salon is closed that day.
func (h BusinessHours) Day(date time.Time) (start, end time.Time, open bool) {
	local := date.In(h.Location)
	if h.ClosedDays[local.Weekday()] {
		return time.Time{}, time.Time{}, false
	}
	return h.Open.on(local, h.Location), h.Close.on(local, h.Location), h.Open < h.Close
}

// Slots is the candidate grid for the day containing date.
func (h BusinessHours) Slots(date time.Time) []time.Time {
	start, end, open := h.Day(date)
	if !open {
		return []time.Time{}
	}
	return GenerateSlots(start, end, h.Interval)
}

// OnGrid reports whether start is one of the candidate slots of its day.
func (h BusinessHours) OnGrid(start time.Time) bool {
	dayStart, dayEnd, open := h.Day(start)
	if !open || start.Before(dayStart) || !start.Before(dayEnd) {
		return false
	}
	if h.Interval <= 0 {
		return true
	}
	return start.Sub(dayStart)%h.Interval == 0
}
