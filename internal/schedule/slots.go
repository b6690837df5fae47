package schedule

import "time"

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Overlaps is true when a and b share any instant. Intervals that only
// touch at an endpoint do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// GenerateSlots returns candidate start times spaced interval apart,
// beginning at dayStart. Every slot starts strictly before dayEnd.
func GenerateSlots(dayStart, dayEnd time.Time, interval time.Duration) []time.Time {
	if interval <= 0 || !dayStart.Before(dayEnd) {
		return []time.Time{}
	}
	slots := make([]time.Time, 0, int(dayEnd.Sub(dayStart)/interval)+1)
	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(interval) {
		slots = append(slots, cur)
	}
	return slots
}

// ComputeAvailability keeps the candidates whose [s, s+duration) window
// intersects none of blocked. Input order is preserved.
func ComputeAvailability(candidates []time.Time, duration time.Duration, blocked []Interval) []time.Time {
	free := make([]time.Time, 0, len(candidates))
	for _, s := range candidates {
		window := NewInterval(s, duration)
		taken := false
		for _, b := range blocked {
			if Overlaps(window, b) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, s)
		}
	}
	return free
}

// Occupant is anything that may hold a stretch of the calendar.
type Occupant interface {
	Interval() Interval
	IsActive() bool
}

// BlockedIntervals collects the windows of active occupants only.
func BlockedIntervals[T Occupant](items []T) []Interval {
	out := make([]Interval, 0, len(items))
	for _, it := range items {
		if it.IsActive() {
			out = append(out, it.Interval())
		}
	}
	return out
}
