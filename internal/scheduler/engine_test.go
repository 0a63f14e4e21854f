package scheduler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

func allWeekAvailability() map[models.Weekday][]models.TimeWindow {
	av := make(map[models.Weekday][]models.TimeWindow, len(models.Weekdays))
	for _, day := range models.Weekdays {
		av[day] = []models.TimeWindow{{Start: models.DayStartMinute, End: models.DayEndMinute}}
	}
	return av
}

func scienceRooms() []models.Room {
	return []models.Room{
		{ID: "Sci-201", Faculty: "Science", Kind: models.RoomTheory, Capacity: 60},
		{ID: "Sci-202", Faculty: "Science", Kind: models.RoomTheory, Capacity: 60},
		{ID: "Sci-Lab1", Faculty: "Science", Kind: models.RoomLab, Capacity: 20},
		{ID: "Sci-Lab2", Faculty: "Science", Kind: models.RoomLab, Capacity: 20},
	}
}

func fullTimeProfessor(id, name string) models.Professor {
	return models.Professor{
		ID:               id,
		Name:             name,
		EnabledFromCycle: 1,
		LabCapable:       true,
		Availability:     allWeekAvailability(),
	}
}

func TestEngineLabPlacementSplitsGroups(t *testing.T) {
	course := models.Course{
		Code: "BIO401", Name: "Molecular Biology", Faculty: "Science",
		Cycle: 4, EnrolledLab: 30, LabHours: 2, ProfessorID: "p2",
	}
	engine := New(models.SemesterAugustDecember, scienceRooms(),
		[]models.Professor{fullTimeProfessor("p2", "Prof B")},
		[]models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())

	assignments := engine.Assignments()
	require.Len(t, assignments, 2)
	assert.Equal(t, "Lab-1", assignments[0].Group)
	assert.Equal(t, "Lab-2", assignments[1].Group)
	for _, a := range assignments {
		assert.Contains(t, []string{"Sci-Lab1", "Sci-Lab2"}, a.RoomID)
	}
	assert.Empty(t, engine.Alerts())
}

func TestEngineLabGroupCountLaw(t *testing.T) {
	course := models.Course{
		Code: "CHM300", Name: "Organic Chemistry", Faculty: "Science",
		Cycle: 2, EnrolledLab: 45, LabHours: 2,
	}

	engine := New(models.SemesterAugustDecember, scienceRooms(), nil, []models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())
	assert.Len(t, engine.Assignments(), 3, "ceil(45/15) groups placed")

	// Without lab rooms every group becomes an alert instead.
	noLabs := New(models.SemesterAugustDecember, nil, nil, []models.Course{course}, nil, nil)
	require.NoError(t, noLabs.Build())
	assert.Empty(t, noLabs.Assignments())
	require.Len(t, noLabs.Alerts(), 3)
	for i, alert := range noLabs.Alerts() {
		assert.Contains(t, alert, "Organic Chemistry")
		assert.Contains(t, alert, labGroupLabel(i+1))
	}
}

func TestEngineTheorySplitPlacesConsecutivePair(t *testing.T) {
	course := models.Course{
		Code: "BIO401", Name: "Molecular Biology", Faculty: "Science",
		Cycle: 4, EnrolledTheory: 80, TheoryHours: 2, ProfessorID: "p2",
	}
	engine := New(models.SemesterAugustDecember, scienceRooms(),
		[]models.Professor{fullTimeProfessor("p2", "Prof B")},
		[]models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())

	assignments := engine.Assignments()
	require.Len(t, assignments, 2)
	a, b := assignments[0], assignments[1]
	assert.Equal(t, "Teo-A", a.Group)
	assert.Equal(t, "Teo-B", b.Group)
	assert.Equal(t, a.Slot.Day, b.Slot.Day)
	assert.Equal(t, a.Slot.End+PairGapMinutes, b.Slot.Start, "second session starts after the pairing gap")
	assert.Equal(t, "p2", a.ProfessorID)
	assert.Equal(t, "p2", b.ProfessorID)
}

func TestEngineTheorySingleGroupUnderCap(t *testing.T) {
	course := models.Course{
		Code: "LIT202", Name: "World Literature", Faculty: "Arts",
		Cycle: 2, EnrolledTheory: 40, TheoryHours: 2,
	}
	rooms := []models.Room{{ID: "Art-301", Faculty: "Arts", Kind: models.RoomTheory, Capacity: 60}}
	engine := New(models.SemesterAugustDecember, rooms, nil, []models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())

	assignments := engine.Assignments()
	require.Len(t, assignments, 1)
	assert.Equal(t, "Teo-A", assignments[0].Group)
	assert.False(t, assignments[0].HasProfessor())
}

func TestEngineTheoryPairFallsBackToSingles(t *testing.T) {
	// The only room is too small for Teo-A (60) so pairing can never
	// succeed; Teo-B (20) still lands via the single-group path.
	course := models.Course{
		Code: "PHY101", Name: "Physics I", Faculty: "Science",
		Cycle: 2, EnrolledTheory: 80, TheoryHours: 2,
	}
	rooms := []models.Room{{ID: "Sci-Small", Faculty: "Science", Kind: models.RoomTheory, Capacity: 50}}
	engine := New(models.SemesterAugustDecember, rooms, nil, []models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())

	assignments := engine.Assignments()
	require.Len(t, assignments, 1)
	assert.Equal(t, "Teo-B", assignments[0].Group)
	require.Len(t, engine.Alerts(), 1)
	assert.Contains(t, engine.Alerts()[0], "Physics I Teo-A")
}

func TestEngineSemesterCycleExclusion(t *testing.T) {
	course := models.Course{
		Code: "MAT101", Name: "Calculus I", Faculty: "Science",
		Cycle: 1, EnrolledTheory: 55, EnrolledLab: 20, TheoryHours: 2, LabHours: 2,
	}
	engine := New(models.SemesterAugustDecember, scienceRooms(), nil, []models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())

	assert.Empty(t, engine.Assignments())
	require.Len(t, engine.Alerts(), 1, "single validation alert, placement phases skip silently")
	assert.Contains(t, engine.Alerts()[0], "Calculus I")
	assert.Contains(t, engine.Alerts()[0], "cycle 1")
}

func TestEngineUnrecognisedSemesterPermitsAllCycles(t *testing.T) {
	courses := []models.Course{
		{Code: "A1", Name: "Odd Course", Faculty: "Science", Cycle: 1, EnrolledTheory: 30, TheoryHours: 2},
		{Code: "A2", Name: "Even Course", Faculty: "Science", Cycle: 2, EnrolledTheory: 30, TheoryHours: 2},
	}
	engine := New("Summer", scienceRooms(), nil, courses, nil, nil)
	require.NoError(t, engine.Build())
	assert.Len(t, engine.Assignments(), 2)
	assert.Empty(t, engine.Alerts())
}

func TestEngineIneligibleProfessorAlertsAndUnassigns(t *testing.T) {
	prof := fullTimeProfessor("p1", "Prof A")
	prof.EnabledFromCycle = 3
	course := models.Course{
		Code: "MAT101", Name: "Calculus I", Faculty: "Science",
		Cycle: 1, EnrolledTheory: 55, TheoryHours: 2, ProfessorID: "p1",
	}
	engine := New(models.SemesterAprilAugust, scienceRooms(), []models.Professor{prof}, []models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())

	require.Len(t, engine.Assignments(), 1)
	assert.False(t, engine.Assignments()[0].HasProfessor())
	require.NotEmpty(t, engine.Alerts())
	assert.Contains(t, engine.Alerts()[0], "professor not eligible")
	assert.Contains(t, engine.Alerts()[0], "Prof A")
}

func TestEngineDailyCapStopsProfessorAttachment(t *testing.T) {
	prof := models.Professor{
		ID: "p1", Name: "Prof A", EnabledFromCycle: 1, LabCapable: true,
		Availability: map[models.Weekday][]models.TimeWindow{
			models.Monday: {{Start: models.DayStartMinute, End: models.DayEndMinute}},
		},
	}
	rooms := []models.Room{{ID: "Sci-201", Faculty: "Science", Kind: models.RoomTheory, Capacity: 60}}
	var courses []models.Course
	for _, code := range []string{"C1", "C2", "C3", "C4"} {
		courses = append(courses, models.Course{
			Code: code, Name: "Course " + code, Faculty: "Science",
			Cycle: 2, EnrolledTheory: 40, TheoryHours: 2, ProfessorID: "p1",
		})
	}
	engine := New(models.SemesterAugustDecember, rooms, []models.Professor{prof}, courses, nil, nil)
	require.NoError(t, engine.Build())

	assignments := engine.Assignments()
	require.Len(t, assignments, 4)
	var withProf int
	for _, a := range assignments {
		if a.HasProfessor() {
			withProf++
		}
	}
	assert.Equal(t, 3, withProf, "fourth placement would push the professor past the daily cap")
	assert.Empty(t, engine.Alerts(), "cap fallback is silent")
}

func TestEngineNoDoubleBookings(t *testing.T) {
	professors := []models.Professor{fullTimeProfessor("p1", "Prof A"), fullTimeProfessor("p2", "Prof B")}
	courses := []models.Course{
		{Code: "BIO401", Name: "Molecular Biology", Faculty: "Science", Cycle: 4, EnrolledTheory: 80, EnrolledLab: 30, TheoryHours: 2, LabHours: 2, ProfessorID: "p2"},
		{Code: "PHY203", Name: "Physics II", Faculty: "Science", Cycle: 2, EnrolledTheory: 100, EnrolledLab: 45, TheoryHours: 2, LabHours: 3, ProfessorID: "p2"},
		{Code: "CHM202", Name: "Analytical Chemistry", Faculty: "Science", Cycle: 2, EnrolledTheory: 40, EnrolledLab: 20, TheoryHours: 2, LabHours: 2, ProfessorID: "p1"},
	}
	engine := New(models.SemesterAugustDecember, scienceRooms(), professors, courses, []string{"a1"}, nil)
	require.NoError(t, engine.Build())

	assignments := engine.Assignments()
	require.NotEmpty(t, assignments)
	for i := 0; i < len(assignments); i++ {
		for j := i + 1; j < len(assignments); j++ {
			a, b := assignments[i], assignments[j]
			if a.RoomID == b.RoomID {
				assert.False(t, a.Slot.Overlaps(b.Slot), "room %s double-booked: %s vs %s", a.RoomID, a.Slot, b.Slot)
			}
			if a.HasProfessor() && a.ProfessorID == b.ProfessorID {
				assert.False(t, a.Slot.Overlaps(b.Slot), "professor %s double-booked: %s vs %s", a.ProfessorID, a.Slot, b.Slot)
			}
		}
	}
}

func TestEngineDeterminism(t *testing.T) {
	build := func() ([]models.Assignment, []string) {
		professors := []models.Professor{fullTimeProfessor("p1", "Prof A"), fullTimeProfessor("p2", "Prof B")}
		courses := []models.Course{
			{Code: "BIO401", Name: "Molecular Biology", Faculty: "Science", Cycle: 4, EnrolledTheory: 80, EnrolledLab: 30, TheoryHours: 2, LabHours: 2, ProfessorID: "p2"},
			{Code: "PHY203", Name: "Physics II", Faculty: "Science", Cycle: 2, EnrolledTheory: 100, EnrolledLab: 45, TheoryHours: 2, LabHours: 3, ProfessorID: "p2"},
			{Code: "MAT102", Name: "Calculus II", Faculty: "Science", Cycle: 2, EnrolledTheory: 55, TheoryHours: 2, ProfessorID: "p1"},
		}
		engine := New(models.SemesterAugustDecember, scienceRooms(), professors, courses, nil, nil)
		require.NoError(t, engine.Build())
		return engine.Assignments(), engine.Alerts()
	}

	firstAssignments, firstAlerts := build()
	for i := 0; i < 5; i++ {
		assignments, alerts := build()
		require.Equal(t, firstAssignments, assignments)
		require.Equal(t, firstAlerts, alerts)
	}
}

func TestEngineBuildTwiceFails(t *testing.T) {
	engine := New(models.SemesterAugustDecember, nil, nil, nil, nil, nil)
	require.NoError(t, engine.Build())
	assert.ErrorIs(t, engine.Build(), ErrAlreadyBuilt)
}

func TestEngineTheoryPrefersLabWeekday(t *testing.T) {
	course := models.Course{
		Code: "BIO401", Name: "Molecular Biology", Faculty: "Science",
		Cycle: 4, EnrolledTheory: 40, EnrolledLab: 10, TheoryHours: 2, LabHours: 2,
	}
	engine := New(models.SemesterAugustDecember, scienceRooms(), nil, []models.Course{course}, nil, nil)
	require.NoError(t, engine.Build())

	assignments := engine.Assignments()
	require.Len(t, assignments, 2)
	lab, theory := assignments[0], assignments[1]
	require.Equal(t, "Lab-1", lab.Group)
	assert.Equal(t, lab.Slot.Day, theory.Slot.Day, "theory gravitates to the lab weekday")
}

func TestPreferredLabDayAveragesAndClamps(t *testing.T) {
	engine := New("Summer", nil, nil, nil, nil, nil)
	engine.assignments = []models.Assignment{
		{CourseCode: "C1", Group: "Lab-1", Slot: slotAt(models.Monday, 7, 2)},
		{CourseCode: "C1", Group: "Lab-2", Slot: slotAt(models.Thursday, 7, 2)},
		{CourseCode: "C2", Group: "Lab-1", Slot: slotAt(models.Friday, 7, 2)},
	}

	day, ok := engine.preferredLabDay("C1")
	require.True(t, ok)
	assert.Equal(t, models.Wednesday, day, "mean of Monday and Thursday rounds to Wednesday")

	_, ok = engine.preferredLabDay("C3")
	assert.False(t, ok)
}

func TestValidatePhaseAlerts(t *testing.T) {
	prof := fullTimeProfessor("p1", "Prof A")
	courses := []models.Course{
		{Code: "C1", Name: "Split Course", Faculty: "Science", Cycle: 2, EnrolledTheory: 30, EnrolledLab: 10},
	}
	engine := New("Summer", scienceRooms(), []models.Professor{prof}, courses, nil, nil)

	// Seed bookings directly: theory Monday, lab Friday, and an 8-hour
	// Tuesday for the professor.
	seed := []models.Assignment{
		{CourseCode: "C1", Group: "Teo-A", Slot: slotAt(models.Monday, 8, 2), RoomID: "Sci-201"},
		{CourseCode: "C1", Group: "Lab-1", Slot: slotAt(models.Friday, 8, 2), RoomID: "Sci-Lab1"},
		{CourseCode: "X1", Group: "Teo-A", Slot: slotAt(models.Tuesday, 7, 4), RoomID: "Sci-201", ProfessorID: "p1"},
		{CourseCode: "X2", Group: "Teo-A", Slot: slotAt(models.Tuesday, 12, 4), RoomID: "Sci-201", ProfessorID: "p1"},
	}
	for _, a := range seed {
		engine.assignments = append(engine.assignments, a)
		engine.ledger.Book(a)
	}

	engine.validate()

	alerts := engine.Alerts()
	require.Len(t, alerts, 2)
	assert.Contains(t, alerts[0], "Split Course")
	assert.Contains(t, alerts[0], "min 4 days")
	assert.Contains(t, alerts[1], "Prof A")
	assert.Contains(t, alerts[1], "Tuesday")
	assert.True(t, strings.Contains(alerts[1], "8.0h"))
}
