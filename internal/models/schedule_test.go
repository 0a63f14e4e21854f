package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("Wednesday")
	require.NoError(t, err)
	assert.Equal(t, Wednesday, day)

	day, err = ParseWeekday(" friday ")
	require.NoError(t, err)
	assert.Equal(t, Friday, day)

	_, err = ParseWeekday("Sunday")
	assert.Error(t, err)
}

func TestClockConversion(t *testing.T) {
	minutes, err := ClockToMinutes("07:30")
	require.NoError(t, err)
	assert.Equal(t, 450, minutes)
	assert.Equal(t, "07:30", MinutesToClock(450))

	_, err = ClockToMinutes("24:00")
	assert.Error(t, err)
	_, err = ClockToMinutes("0730")
	assert.Error(t, err)
	_, err = ClockToMinutes("aa:bb")
	assert.Error(t, err)
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := TimeSlot{Day: Monday, Start: 480, End: 600}

	assert.True(t, base.Overlaps(TimeSlot{Day: Monday, Start: 540, End: 660}))
	// Half-open intervals: touching slots do not overlap.
	assert.False(t, base.Overlaps(TimeSlot{Day: Monday, Start: 600, End: 720}))
	assert.False(t, base.Overlaps(TimeSlot{Day: Tuesday, Start: 480, End: 600}))
}

func TestTimeWindowContains(t *testing.T) {
	w := TimeWindow{Start: 420, End: 720}

	assert.True(t, w.Contains(420, 720))
	assert.True(t, w.Contains(480, 600))
	assert.False(t, w.Contains(400, 500))
	assert.False(t, w.Contains(600, 750))
}

func TestTimeSlotString(t *testing.T) {
	s := TimeSlot{Day: Thursday, Start: 420, End: 540}
	assert.Equal(t, "Thursday 07:00-09:00", s.String())
	assert.InDelta(t, 2.0, s.DurationHours(), 1e-9)
}
