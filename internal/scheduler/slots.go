package scheduler

import (
	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

// CandidateSlots enumerates every legal weekly window for a session of the
// given duration: weekday-major, start-time-minor, aligned to the 30-minute
// grid between day open and close. The slice order doubles as the default
// placement priority. A non-positive duration yields no candidates.
func CandidateSlots(durationHours int) []models.TimeSlot {
	delta := durationHours * 60
	if delta <= 0 {
		return nil
	}
	var slots []models.TimeSlot
	for _, day := range models.Weekdays {
		for t := models.DayStartMinute; t+delta <= models.DayEndMinute; t += models.SlotStepMinutes {
			slots = append(slots, models.TimeSlot{Day: day, Start: t, End: t + delta})
		}
	}
	return slots
}
