// Package csvio loads scheduling input from CSV files for the command line
// front end.
package csvio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/mvargas-dev/uni-scheduler-api/internal/dto"
)

type roomRecord struct {
	ID       string `csv:"id"`
	Faculty  string `csv:"faculty"`
	Kind     string `csv:"kind"`
	Capacity int    `csv:"capacity"`
}

// professorRecord flattens the availability map into one column:
// "Monday 07:00-12:00|14:00-18:00;Tuesday 07:00-12:00".
type professorRecord struct {
	ID               string `csv:"id"`
	Name             string `csv:"name"`
	EnabledFromCycle int    `csv:"enabled_from_cycle"`
	LabCapable       bool   `csv:"lab_capable"`
	Availability     string `csv:"availability"`
}

type courseRecord struct {
	Code           string `csv:"code"`
	Name           string `csv:"name"`
	Faculty        string `csv:"faculty"`
	Cycle          int    `csv:"cycle"`
	EnrolledTheory int    `csv:"enrolled_theory"`
	EnrolledLab    int    `csv:"enrolled_lab"`
	TheoryHours    int    `csv:"theory_hours"`
	LabHours       int    `csv:"lab_hours"`
	ProfessorID    string `csv:"professor_id"`
}

// LoadRooms reads room definitions from a CSV file.
func LoadRooms(path string) ([]dto.RoomPayload, error) {
	var records []roomRecord
	if err := unmarshalFile(path, &records); err != nil {
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	rooms := make([]dto.RoomPayload, 0, len(records))
	for _, r := range records {
		rooms = append(rooms, dto.RoomPayload{
			ID:       r.ID,
			Faculty:  r.Faculty,
			Kind:     r.Kind,
			Capacity: r.Capacity,
		})
	}
	return rooms, nil
}

// LoadProfessors reads professor definitions from a CSV file.
func LoadProfessors(path string) ([]dto.ProfessorPayload, error) {
	var records []professorRecord
	if err := unmarshalFile(path, &records); err != nil {
		return nil, fmt.Errorf("load professors: %w", err)
	}
	professors := make([]dto.ProfessorPayload, 0, len(records))
	for _, r := range records {
		availability, err := ParseAvailabilityColumn(r.Availability)
		if err != nil {
			return nil, fmt.Errorf("load professors: %s: %w", r.ID, err)
		}
		labCapable := r.LabCapable
		professors = append(professors, dto.ProfessorPayload{
			ID:               r.ID,
			Name:             r.Name,
			EnabledFromCycle: r.EnabledFromCycle,
			LabCapable:       &labCapable,
			Availability:     availability,
		})
	}
	return professors, nil
}

// LoadCourses reads course definitions from a CSV file.
func LoadCourses(path string) ([]dto.CoursePayload, error) {
	var records []courseRecord
	if err := unmarshalFile(path, &records); err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	courses := make([]dto.CoursePayload, 0, len(records))
	for _, r := range records {
		course := dto.CoursePayload{
			Code:           r.Code,
			Name:           r.Name,
			Faculty:        r.Faculty,
			Cycle:          r.Cycle,
			EnrolledTheory: r.EnrolledTheory,
			EnrolledLab:    r.EnrolledLab,
			TheoryHours:    r.TheoryHours,
			LabHours:       r.LabHours,
		}
		if r.ProfessorID != "" {
			id := r.ProfessorID
			course.ProfessorID = &id
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// ParseAvailabilityColumn decodes the flattened availability column. Day
// entries are separated by semicolons, windows within a day by pipes.
func ParseAvailabilityColumn(raw string) (map[string][][2]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	availability := make(map[string][][2]string)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		day, windowsRaw, ok := strings.Cut(entry, " ")
		if !ok {
			return nil, fmt.Errorf("availability entry %q: expected \"<day> <windows>\"", entry)
		}
		var windows [][2]string
		for _, windowRaw := range strings.Split(windowsRaw, "|") {
			start, end, ok := strings.Cut(strings.TrimSpace(windowRaw), "-")
			if !ok {
				return nil, fmt.Errorf("availability window %q: expected \"HH:MM-HH:MM\"", windowRaw)
			}
			windows = append(windows, [2]string{strings.TrimSpace(start), strings.TrimSpace(end)})
		}
		availability[day] = windows
	}
	return availability, nil
}

func unmarshalFile(path string, out interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return unmarshalReader(file, out)
}

func unmarshalReader(r io.Reader, out interface{}) error {
	return gocsv.Unmarshal(r, out)
}
