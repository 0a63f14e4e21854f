package scheduler

import (
	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

// ProfessorAvailable reports whether one of the professor's declared windows
// for the slot's weekday fully contains the slot. Containment, not overlap:
// a window that merely intersects the slot does not qualify. A professor
// with no windows on that weekday is unavailable.
func ProfessorAvailable(p *models.Professor, slot models.TimeSlot) bool {
	if p == nil {
		return false
	}
	for _, window := range p.Availability[slot.Day] {
		if window.Contains(slot.Start, slot.End) {
			return true
		}
	}
	return false
}
