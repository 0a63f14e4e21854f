package scheduler

import (
	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

// Ledger tracks room and professor bookings for one engine instance. It is
// owned exclusively by that instance: callers verify freedom through the
// query methods before booking, and Book performs no conflict check.
type Ledger struct {
	rooms      map[string][]models.Assignment
	professors map[string][]models.Assignment
}

// NewLedger returns an empty occupancy ledger.
func NewLedger() *Ledger {
	return &Ledger{
		rooms:      make(map[string][]models.Assignment),
		professors: make(map[string][]models.Assignment),
	}
}

// RoomFree reports whether the slot overlaps none of the room's bookings.
func (l *Ledger) RoomFree(roomID string, slot models.TimeSlot) bool {
	for _, a := range l.rooms[roomID] {
		if slot.Overlaps(a.Slot) {
			return false
		}
	}
	return true
}

// ProfessorFree reports whether the slot overlaps none of the professor's
// bookings.
func (l *Ledger) ProfessorFree(profID string, slot models.TimeSlot) bool {
	for _, a := range l.professors[profID] {
		if slot.Overlaps(a.Slot) {
			return false
		}
	}
	return true
}

// DailyHours sums the professor's booked hours on the given weekday.
func (l *Ledger) DailyHours(profID string, day models.Weekday) float64 {
	var total float64
	for _, a := range l.professors[profID] {
		if a.Slot.Day == day {
			total += a.Slot.DurationHours()
		}
	}
	return total
}

// ProfessorBookings returns the booking sequence for a professor, in
// booking order.
func (l *Ledger) ProfessorBookings(profID string) []models.Assignment {
	return l.professors[profID]
}

// Book appends the assignment to the room's sequence and, when a professor
// is attached, to the professor's sequence. This is the sole mutator of
// ledger state; freedom must have been verified by the caller.
func (l *Ledger) Book(a models.Assignment) {
	l.rooms[a.RoomID] = append(l.rooms[a.RoomID], a)
	if a.HasProfessor() {
		l.professors[a.ProfessorID] = append(l.professors[a.ProfessorID], a)
	}
}
