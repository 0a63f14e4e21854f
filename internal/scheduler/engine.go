package scheduler

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

// Placement limits.
const (
	LabGroupSize        = 15
	TheoryGroupCap      = 60
	MaxDailyHours       = 6.0
	PairGapMinutes      = 30
	TheoryLabMaxGapDays = 2
)

const (
	theoryGroupA = "Teo-A"
	theoryGroupB = "Teo-B"
)

// ErrAlreadyBuilt is returned when Build is invoked twice on one engine.
// Ledger and alert state are cumulative, so a second pass would double-book.
var ErrAlreadyBuilt = errors.New("scheduler: engine already built")

// Engine places weekly sessions for one scheduling run. It owns its ledger
// and alert log exclusively; concurrent runs must each construct their own
// instance.
type Engine struct {
	semester   string
	rooms      []models.Room
	professors map[string]*models.Professor
	profOrder  []string
	courses    []models.Course
	assistants []string

	ledger      *Ledger
	alerts      *AlertLog
	assignments []models.Assignment
	built       bool
	logger      *zap.Logger
}

// New constructs an engine for a single run. Inputs are treated as
// immutable; ordering of the input slices fixes all tie-breaks.
func New(semester string, rooms []models.Room, professors []models.Professor, courses []models.Course, assistants []string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	profs := make(map[string]*models.Professor, len(professors))
	order := make([]string, 0, len(professors))
	for i := range professors {
		p := professors[i]
		profs[p.ID] = &p
		order = append(order, p.ID)
	}
	return &Engine{
		semester:   semester,
		rooms:      rooms,
		professors: profs,
		profOrder:  order,
		courses:    courses,
		assistants: assistants,
		ledger:     NewLedger(),
		alerts:     &AlertLog{},
		logger:     logger,
	}
}

// Build runs the three placement phases in order: laboratories, theory
// sessions, then validation. Infeasible demand is recorded as an alert and
// never aborts the run.
func (e *Engine) Build() error {
	if e.built {
		return ErrAlreadyBuilt
	}
	e.built = true

	e.placeLabs()
	e.placeTheory()
	e.validate()

	e.logger.Debug("schedule built",
		zap.String("semester", e.semester),
		zap.Int("assignments", len(e.assignments)),
		zap.Int("alerts", e.alerts.Len()),
	)
	return nil
}

// Assignments returns the placed sessions in creation order.
func (e *Engine) Assignments() []models.Assignment {
	out := make([]models.Assignment, len(e.assignments))
	copy(out, e.assignments)
	return out
}

// Alerts returns the diagnostic messages in generation order.
func (e *Engine) Alerts() []string {
	return e.alerts.Entries()
}

// Semester returns the active semester code.
func (e *Engine) Semester() string {
	return e.semester
}

// cyclePermitted applies the semester parity rule: odd cycles run in
// April-August, even cycles in August-December. Unrecognised semester codes
// permit every cycle.
func (e *Engine) cyclePermitted(cycle int) bool {
	switch e.semester {
	case models.SemesterAprilAugust:
		return cycle%2 == 1
	case models.SemesterAugustDecember:
		return cycle%2 == 0
	default:
		return true
	}
}

// freeRooms returns, in input order, the rooms of the faculty and kind with
// sufficient capacity that are free at the slot.
func (e *Engine) freeRooms(faculty string, kind models.RoomKind, capacity int, slot models.TimeSlot) []models.Room {
	var free []models.Room
	for _, r := range e.rooms {
		if r.Faculty != faculty || r.Kind != kind || r.Capacity < capacity {
			continue
		}
		if e.ledger.RoomFree(r.ID, slot) {
			free = append(free, r)
		}
	}
	return free
}

// place books one assignment. Freedom has been verified by the caller.
func (e *Engine) place(course models.Course, group string, slot models.TimeSlot, room models.Room, profID string) {
	a := models.Assignment{
		CourseCode:  course.Code,
		Group:       group,
		Slot:        slot,
		RoomID:      room.ID,
		ProfessorID: profID,
	}
	e.assignments = append(e.assignments, a)
	e.ledger.Book(a)
	e.logger.Debug("session placed",
		zap.String("course", course.Code),
		zap.String("group", group),
		zap.String("slot", slot.String()),
		zap.String("room", room.ID),
		zap.String("professor", profID),
	)
}

func labGroupCount(enrolled int) int {
	return (enrolled + LabGroupSize - 1) / LabGroupSize
}

// placeLabs is Phase 1: lab groups first, largest demand first. Each group
// takes the earliest candidate slot with a free lab room of the course's
// faculty; the designated professor joins only when lab-capable, available,
// free and under the daily cap, otherwise an assistant covers the group.
func (e *Engine) placeLabs() {
	var labCourses []models.Course
	for _, c := range e.courses {
		if c.EnrolledLab > 0 && e.cyclePermitted(c.Cycle) {
			labCourses = append(labCourses, c)
		}
	}
	sort.SliceStable(labCourses, func(i, j int) bool {
		return labGroupCount(labCourses[i].EnrolledLab) > labGroupCount(labCourses[j].EnrolledLab)
	})

	for _, c := range labCourses {
		groups := labGroupCount(c.EnrolledLab)
		prof := e.professors[c.ProfessorID]
		candidates := CandidateSlots(c.LabHours)
		for g := 1; g <= groups; g++ {
			placed := false
			for _, slot := range candidates {
				rooms := e.freeRooms(c.Faculty, models.RoomLab, LabGroupSize, slot)
				if len(rooms) == 0 {
					continue
				}
				profID := ""
				if prof != nil && prof.LabCapable && ProfessorAvailable(prof, slot) && e.ledger.ProfessorFree(prof.ID, slot) {
					if e.ledger.DailyHours(prof.ID, slot.Day)+slot.DurationHours() <= MaxDailyHours {
						profID = prof.ID
					}
				}
				// A professor who does not take labs still yields a valid
				// placement: the group is assistant-covered.
				e.place(c, labGroupLabel(g), slot, rooms[0], profID)
				placed = true
				break
			}
			if !placed {
				e.alerts.Appendf("lab not assigned: %s requires group %s and no slot is available", c.Name, labGroupLabel(g))
			}
		}
	}
}

func labGroupLabel(n int) string {
	return fmt.Sprintf("Lab-%d", n)
}

type theoryGroup struct {
	label string
	size  int
}

// placeTheory is Phase 2: theory sessions after labs, in course input
// order. Enrollment above the cap splits into two groups which are first
// attempted as a consecutive double session.
func (e *Engine) placeTheory() {
	for _, c := range e.courses {
		if c.EnrolledTheory <= 0 || !e.cyclePermitted(c.Cycle) {
			continue
		}

		var groups []theoryGroup
		if c.EnrolledTheory > TheoryGroupCap {
			groups = append(groups,
				theoryGroup{theoryGroupA, TheoryGroupCap},
				theoryGroup{theoryGroupB, c.EnrolledTheory - TheoryGroupCap},
			)
		} else {
			groups = append(groups, theoryGroup{theoryGroupA, c.EnrolledTheory})
		}

		candidates := CandidateSlots(c.TheoryHours)
		if target, ok := e.preferredLabDay(c.Code); ok {
			sort.SliceStable(candidates, func(i, j int) bool {
				return weekdayDistance(candidates[i].Day, target) < weekdayDistance(candidates[j].Day, target)
			})
		}

		prof := e.professors[c.ProfessorID]
		if prof != nil && prof.EnabledFromCycle > c.Cycle {
			e.alerts.Appendf("professor not eligible: %s teaches from cycle %d and above, requested for %s (cycle %d)",
				prof.Name, prof.EnabledFromCycle, c.Name, c.Cycle)
			prof = nil
		}

		if len(groups) == 2 {
			if !e.placeTheoryPair(c, groups, candidates, prof) {
				for _, g := range groups {
					e.placeTheorySingle(c, g, candidates, prof)
				}
			}
		} else {
			e.placeTheorySingle(c, groups[0], candidates, prof)
		}
	}
}

// preferredLabDay averages the weekdays of the course's already-placed lab
// groups, rounded and clamped to the teaching week.
func (e *Engine) preferredLabDay(courseCode string) (models.Weekday, bool) {
	var sum, n int
	for _, a := range e.assignments {
		if a.CourseCode == courseCode && isLabGroup(a.Group) {
			sum += int(a.Slot.Day)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	avg := int(math.RoundToEven(float64(sum) / float64(n)))
	if avg < int(models.Monday) {
		avg = int(models.Monday)
	}
	if avg > int(models.Friday) {
		avg = int(models.Friday)
	}
	return models.Weekday(avg), true
}

func weekdayDistance(a, b models.Weekday) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// placeTheoryPair attempts a consecutive double session: group A at s,
// group B on the same day starting 30 minutes after s ends. The professor
// is attached only when eligible for both sessions and the combined load
// stays under the daily cap; otherwise both sessions go to assistants.
func (e *Engine) placeTheoryPair(c models.Course, groups []theoryGroup, candidates []models.TimeSlot, prof *models.Professor) bool {
	duration := c.TheoryHours * 60
	for _, s := range candidates {
		s2 := models.TimeSlot{Day: s.Day, Start: s.End + PairGapMinutes, End: s.End + PairGapMinutes + duration}
		if s2.End > models.DayEndMinute {
			continue
		}
		roomsA := e.freeRooms(c.Faculty, models.RoomTheory, theoryCapacity(groups[0].size), s)
		if len(roomsA) == 0 {
			continue
		}
		roomsB := e.freeRooms(c.Faculty, models.RoomTheory, theoryCapacity(groups[1].size), s2)
		if len(roomsB) == 0 {
			continue
		}
		profID := ""
		if prof != nil &&
			ProfessorAvailable(prof, s) && ProfessorAvailable(prof, s2) &&
			e.ledger.ProfessorFree(prof.ID, s) && e.ledger.ProfessorFree(prof.ID, s2) {
			if e.ledger.DailyHours(prof.ID, s.Day)+s.DurationHours()+s2.DurationHours() <= MaxDailyHours {
				profID = prof.ID
			}
		}
		e.place(c, groups[0].label, s, roomsA[0], profID)
		e.place(c, groups[1].label, s2, roomsB[0], profID)
		return true
	}
	return false
}

// placeTheorySingle books one theory group at the first candidate with a
// free room. A professor excluded only by availability or the daily cap is
// silently replaced by an assistant; exhausting all candidates raises an
// alert instead.
func (e *Engine) placeTheorySingle(c models.Course, g theoryGroup, candidates []models.TimeSlot, prof *models.Professor) {
	for _, s := range candidates {
		rooms := e.freeRooms(c.Faculty, models.RoomTheory, theoryCapacity(g.size), s)
		if len(rooms) == 0 {
			continue
		}
		profID := ""
		if prof != nil && ProfessorAvailable(prof, s) && e.ledger.ProfessorFree(prof.ID, s) {
			if e.ledger.DailyHours(prof.ID, s.Day)+s.DurationHours() <= MaxDailyHours {
				profID = prof.ID
			}
		}
		e.place(c, g.label, s, rooms[0], profID)
		return
	}
	e.alerts.Appendf("theory not assigned: %s %s", c.Name, g.label)
}

func theoryCapacity(groupSize int) int {
	if groupSize > TheoryGroupCap {
		return TheoryGroupCap
	}
	return groupSize
}

func isLabGroup(group string) bool {
	return len(group) >= 4 && group[:4] == "Lab-"
}

func isTheoryGroup(group string) bool {
	return len(group) >= 4 && group[:4] == "Teo-"
}

// validate is Phase 3. It only appends alerts: courses excluded by the
// semester rule, theory/lab weekday gaps above the limit, and professors
// whose booked totals exceed the daily cap.
func (e *Engine) validate() {
	for _, c := range e.courses {
		if !e.cyclePermitted(c.Cycle) {
			e.alerts.Appendf("course outside permitted cycle (%s): %s (cycle %d)", e.semester, c.Name, c.Cycle)
		}
	}

	for _, c := range e.courses {
		var theoryDays, labDays []models.Weekday
		for _, a := range e.assignments {
			if a.CourseCode != c.Code {
				continue
			}
			switch {
			case isTheoryGroup(a.Group):
				theoryDays = append(theoryDays, a.Slot.Day)
			case isLabGroup(a.Group):
				labDays = append(labDays, a.Slot.Day)
			}
		}
		if len(theoryDays) == 0 || len(labDays) == 0 {
			continue
		}
		minGap := -1
		for _, t := range theoryDays {
			for _, l := range labDays {
				if gap := weekdayDistance(t, l); minGap < 0 || gap < minGap {
					minGap = gap
				}
			}
		}
		if minGap > TheoryLabMaxGapDays {
			e.alerts.Appendf("gap above %d days between theory and lab: %s (min %d days)", TheoryLabMaxGapDays, c.Name, minGap)
		}
	}

	// Professors are visited in input order so the alert sequence is
	// deterministic regardless of booking history.
	for _, profID := range e.profOrder {
		bookings := e.ledger.ProfessorBookings(profID)
		if len(bookings) == 0 {
			continue
		}
		totals := make([]float64, len(models.Weekdays))
		for _, a := range bookings {
			totals[a.Slot.Day] += a.Slot.DurationHours()
		}
		for _, day := range models.Weekdays {
			if totals[day] > MaxDailyHours {
				e.alerts.Appendf("professor %s exceeded the daily hour cap on %s: %.1fh", e.professors[profID].Name, day, totals[day])
			}
		}
	}
}
