package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	s, ok := c.Lookup("Classic Haircut")
	require.True(t, ok)
	assert.Equal(t, 30*time.Minute, s.Duration())

	s, ok = c.Lookup("  Beard Trim ")
	require.True(t, ok)
	assert.Equal(t, 20, s.DurationMinutes)

	_, ok = c.Lookup("Perm")
	assert.False(t, ok)

	assert.Equal(t, time.Hour, c.MaxDuration())
	assert.Len(t, c.All(), 4)
	assert.Equal(t, "Classic Haircut", c.All()[0].Name)
}

func TestConflictRules(t *testing.T) {
	existing := []Interval{NewInterval(at(10, 0), 30*time.Minute)}

	assert.True(t, Conflicts(RuleOverlap, NewInterval(at(10, 0), 30*time.Minute), existing))
	assert.True(t, Conflicts(RuleOverlap, NewInterval(at(9, 30), 60*time.Minute), existing))
	assert.False(t, Conflicts(RuleOverlap, NewInterval(at(10, 30), 30*time.Minute), existing))

	assert.True(t, Conflicts(RuleExact, NewInterval(at(10, 0), 20*time.Minute), existing))
	assert.False(t, Conflicts(RuleExact, NewInterval(at(9, 30), 60*time.Minute), existing))
}

func TestParseRule(t *testing.T) {
	r, err := ParseRule("")
	require.NoError(t, err)
	assert.Equal(t, RuleOverlap, r)

	r, err = ParseRule("EXACT")
	require.NoError(t, err)
	assert.Equal(t, RuleExact, r)

	_, err = ParseRule("fuzzy")
	assert.Error(t, err)
}

func testHours(t *testing.T) BusinessHours {
	open, err := ParseClock("07:00")
	require.NoError(t, err)
	closing, err := ParseClock("20:00")
	require.NoError(t, err)
	closed, err := ParseWeekdays("sunday")
	require.NoError(t, err)
	return BusinessHours{Open: open, Close: closing, Interval: 30 * time.Minute, ClosedDays: closed, Location: ist}
}

func TestBusinessHoursDay(t *testing.T) {
	h := testHours(t)

	// 2025-03-10 is a Monday.
	start, end, open := h.Day(time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC))
	require.True(t, open)
	assert.Equal(t, at(7, 0), start)
	assert.Equal(t, at(20, 0), end)

	_, _, open = h.Day(time.Date(2025, 3, 9, 12, 0, 0, 0, ist))
	assert.False(t, open)
	assert.Empty(t, h.Slots(time.Date(2025, 3, 9, 12, 0, 0, 0, ist)))
	assert.Len(t, h.Slots(at(0, 0)), 26)
}

func TestBusinessHoursOnGrid(t *testing.T) {
	h := testHours(t)

	assert.True(t, h.OnGrid(at(7, 0)))
	assert.True(t, h.OnGrid(at(19, 30)))
	assert.True(t, h.OnGrid(at(10, 0).UTC()))
	assert.False(t, h.OnGrid(at(10, 15)))
	assert.False(t, h.OnGrid(at(6, 30)))
	assert.False(t, h.OnGrid(at(20, 0)))
	assert.False(t, h.OnGrid(time.Date(2025, 3, 9, 10, 0, 0, 0, ist)))
}

func TestParseHelpers(t *testing.T) {
	c, err := ParseClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", c.String())

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	days, err := ParseWeekdays("Sun, tue")
	require.NoError(t, err)
	assert.True(t, days[time.Sunday])
	assert.True(t, days[time.Tuesday])

	_, err = ParseWeekdays("funday")
	assert.Error(t, err)
}
