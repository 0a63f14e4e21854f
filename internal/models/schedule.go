package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Weekday indexes the five teaching days, Monday first.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the teaching days in scan order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday resolves a day name (case-insensitive) to its index.
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// Teaching-day window and slot alignment, in minutes of day.
const (
	DayStartMinute  = 7 * 60
	DayEndMinute    = 20 * 60
	SlotStepMinutes = 30
)

// Recognised semester codes. Any other value permits all cycles.
const (
	SemesterAprilAugust    = "April-August"
	SemesterAugustDecember = "August-December"
)

// RoomKind distinguishes theory rooms from laboratories.
type RoomKind string

const (
	RoomTheory RoomKind = "theory"
	RoomLab    RoomKind = "lab"
)

// Room is a bookable space. Immutable once loaded.
type Room struct {
	ID       string
	Faculty  string
	Kind     RoomKind
	Capacity int
}

// TimeWindow is a half-open [Start,End) interval in minutes of day.
type TimeWindow struct {
	Start int
	End   int
}

// Contains reports whether the window fully covers [start,end).
func (w TimeWindow) Contains(start, end int) bool {
	return w.Start <= start && end <= w.End
}

// Professor is a lecturer with per-weekday free-time windows. Immutable
// once loaded; availability is parsed from clock strings at load time.
type Professor struct {
	ID               string
	Name             string
	EnabledFromCycle int
	LabCapable       bool
	Availability     map[Weekday][]TimeWindow
}

// Course describes weekly demand for one subject.
type Course struct {
	Code           string
	Name           string
	Faculty        string
	Cycle          int
	EnrolledTheory int
	EnrolledLab    int
	TheoryHours    int
	LabHours       int
	ProfessorID    string // empty when no professor is designated
}

// TimeSlot is a half-open weekly time window on a single weekday.
type TimeSlot struct {
	Day   Weekday
	Start int
	End   int
}

// Overlaps reports whether two slots intersect on the same weekday.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.Day == o.Day && s.Start < o.End && o.Start < s.End
}

// DurationHours returns the slot length in hours.
func (s TimeSlot) DurationHours() float64 {
	return float64(s.End-s.Start) / 60.0
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day, MinutesToClock(s.Start), MinutesToClock(s.End))
}

// Assignment binds a course group to a slot and a room. An empty
// ProfessorID means the session is assistant-covered. Assignments are
// created by the engine and never mutated afterwards.
type Assignment struct {
	CourseCode  string
	Group       string
	Slot        TimeSlot
	RoomID      string
	ProfessorID string
}

// HasProfessor reports whether a lead professor was attached.
func (a Assignment) HasProfessor() bool {
	return a.ProfessorID != ""
}

// MinutesToClock renders minutes of day as HH:MM.
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ClockToMinutes parses an HH:MM 24-hour clock string into minutes of day.
func ClockToMinutes(clock string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(clock), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", clock)
	}
	return h*60 + m, nil
}
