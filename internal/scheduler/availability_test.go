package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

func TestProfessorAvailableRequiresContainment(t *testing.T) {
	prof := &models.Professor{
		ID:   "p1",
		Name: "Prof A",
		Availability: map[models.Weekday][]models.TimeWindow{
			models.Monday: {{Start: 8 * 60, End: 12 * 60}},
		},
	}

	contained := models.TimeSlot{Day: models.Monday, Start: 8 * 60, End: 10 * 60}
	assert.True(t, ProfessorAvailable(prof, contained))

	overlapping := models.TimeSlot{Day: models.Monday, Start: 7*60 + 30, End: 9*60 + 30}
	assert.False(t, ProfessorAvailable(prof, overlapping), "overlap without containment must not qualify")

	exact := models.TimeSlot{Day: models.Monday, Start: 8 * 60, End: 12 * 60}
	assert.True(t, ProfessorAvailable(prof, exact))
}

func TestProfessorAvailableNoWindowsForDay(t *testing.T) {
	prof := &models.Professor{
		ID: "p1",
		Availability: map[models.Weekday][]models.TimeWindow{
			models.Monday: {{Start: 7 * 60, End: 20 * 60}},
		},
	}
	slot := models.TimeSlot{Day: models.Tuesday, Start: 9 * 60, End: 11 * 60}
	assert.False(t, ProfessorAvailable(prof, slot))
	assert.False(t, ProfessorAvailable(nil, slot))
}

func TestProfessorAvailableSecondWindow(t *testing.T) {
	prof := &models.Professor{
		ID: "p1",
		Availability: map[models.Weekday][]models.TimeWindow{
			models.Wednesday: {
				{Start: 7 * 60, End: 9 * 60},
				{Start: 14 * 60, End: 18 * 60},
			},
		},
	}
	slot := models.TimeSlot{Day: models.Wednesday, Start: 15 * 60, End: 17 * 60}
	assert.True(t, ProfessorAvailable(prof, slot))
}
