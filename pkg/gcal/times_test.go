package gcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMeetingTime(t *testing.T) {
	// Wednesday, 10:00 local time.
	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)

	t.Run("weekday with hour", func(t *testing.T) {
		parsed, ok := ParseMeetingTime("Thursday at 2pm", now)
		require.True(t, ok)
		assert.Equal(t, time.Thursday, parsed.Weekday())
		assert.Equal(t, 14, parsed.Hour())
		assert.True(t, parsed.After(now))
	})

	t.Run("tomorrow", func(t *testing.T) {
		parsed, ok := ParseMeetingTime("tomorrow at 11am", now)
		require.True(t, ok)
		assert.Equal(t, now.Day()+1, parsed.Day())
		assert.Equal(t, 11, parsed.Hour())
	})

	t.Run("same day past time rolls to tomorrow", func(t *testing.T) {
		parsed, ok := ParseMeetingTime("today at 9am", now)
		require.True(t, ok)
		assert.True(t, parsed.After(now))
		assert.Equal(t, 9, parsed.Hour())
	})

	t.Run("unparseable", func(t *testing.T) {
		_, ok := ParseMeetingTime("whenever works for you both honestly", now)
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		_, ok := ParseMeetingTime("", now)
		assert.False(t, ok)
	})
}

func TestNextFreeSlot(t *testing.T) {
	// Monday 09:00.
	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	week := monday.AddDate(0, 0, 7)

	t.Run("empty calendar takes first slot", func(t *testing.T) {
		slot := nextFreeSlot(monday, week, 30*time.Minute, nil)
		assert.Equal(t, monday, slot)
	})

	t.Run("mid-hour start rounds up, never back", func(t *testing.T) {
		from := time.Date(2026, 8, 24, 9, 40, 0, 0, time.UTC)
		slot := nextFreeSlot(from, week, 30*time.Minute, nil)
		assert.Equal(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), slot)
		assert.False(t, slot.Before(from))
	})

	t.Run("start just past the hour takes the half-hour slot", func(t *testing.T) {
		from := time.Date(2026, 8, 24, 9, 10, 0, 0, time.UTC)
		slot := nextFreeSlot(from, week, 30*time.Minute, nil)
		assert.Equal(t, time.Date(2026, 8, 24, 9, 30, 0, 0, time.UTC), slot)
	})

	t.Run("skips busy window", func(t *testing.T) {
		busy := []busyWindow{
			{start: monday, end: monday.Add(time.Hour)},
		}
		slot := nextFreeSlot(monday, week, 30*time.Minute, busy)
		assert.Equal(t, monday.Add(time.Hour), slot)
	})

	t.Run("after hours rolls to next morning", func(t *testing.T) {
		evening := time.Date(2026, 8, 24, 18, 30, 0, 0, time.UTC)
		slot := nextFreeSlot(evening, evening.AddDate(0, 0, 7), 30*time.Minute, nil)
		assert.Equal(t, time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC), slot)
	})

	t.Run("weekend rolls to monday", func(t *testing.T) {
		saturday := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
		slot := nextFreeSlot(saturday, saturday.AddDate(0, 0, 7), 30*time.Minute, nil)
		assert.Equal(t, time.Monday, slot.Weekday())
		assert.Equal(t, 9, slot.Hour())
	})

	t.Run("fully booked window", func(t *testing.T) {
		busy := []busyWindow{
			{start: monday.AddDate(0, 0, -1), end: week.AddDate(0, 0, 1)},
		}
		slot := nextFreeSlot(monday, week, 30*time.Minute, busy)
		assert.True(t, slot.IsZero())
	})
}
