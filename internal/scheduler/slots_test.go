package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

func TestCandidateSlotsCountFormula(t *testing.T) {
	window := models.DayEndMinute - models.DayStartMinute
	for hours := 1; hours <= 13; hours++ {
		perDay := (window-hours*60)/models.SlotStepMinutes + 1
		if perDay < 1 {
			perDay = 0
		}
		slots := CandidateSlots(hours)
		assert.Len(t, slots, perDay*len(models.Weekdays), "duration %dh", hours)
	}
}

func TestCandidateSlotsOrdering(t *testing.T) {
	slots := CandidateSlots(2)
	require.NotEmpty(t, slots)

	assert.Equal(t, models.Monday, slots[0].Day)
	assert.Equal(t, models.DayStartMinute, slots[0].Start)
	assert.Equal(t, models.DayStartMinute+120, slots[0].End)

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if cur.Day == prev.Day {
			assert.Equal(t, prev.Start+models.SlotStepMinutes, cur.Start)
		} else {
			assert.Equal(t, prev.Day+1, cur.Day)
			assert.Equal(t, models.DayStartMinute, cur.Start)
		}
	}

	last := slots[len(slots)-1]
	assert.Equal(t, models.Friday, last.Day)
	assert.LessOrEqual(t, last.End, models.DayEndMinute)
}

func TestCandidateSlotsDegenerateDurations(t *testing.T) {
	assert.Empty(t, CandidateSlots(0))
	assert.Empty(t, CandidateSlots(-1))
	assert.Empty(t, CandidateSlots(14), "duration longer than the teaching day")
}
