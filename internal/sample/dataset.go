// Package sample provides a ready-made scheduling request used by the
// sample endpoint and the CLI demo mode. The dataset exercises lab group
// splitting, theory splitting, professor eligibility and assistant fallback.
package sample

import "github.com/mvargas-dev/uni-scheduler-api/internal/dto"

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

// Request returns the demo scheduling input.
func Request() dto.ScheduleRequest {
	fullWeek := map[string][][2]string{
		"Monday":    {{"07:00", "20:00"}},
		"Tuesday":   {{"07:00", "20:00"}},
		"Wednesday": {{"07:00", "20:00"}},
		"Thursday":  {{"07:00", "20:00"}},
		"Friday":    {{"07:00", "20:00"}},
	}

	return dto.ScheduleRequest{
		Semester: "2026-I",
		Rooms: []dto.RoomPayload{
			{ID: "Eng-A101", Faculty: "Engineering", Kind: "theory", Capacity: 60},
			{ID: "Eng-A102", Faculty: "Engineering", Kind: "theory", Capacity: 60},
			{ID: "Eng-Lab1", Faculty: "Engineering", Kind: "lab", Capacity: 20},
			{ID: "Eng-Lab2", Faculty: "Engineering", Kind: "lab", Capacity: 20},
			{ID: "Sci-201", Faculty: "Science", Kind: "theory", Capacity: 60},
			{ID: "Sci-202", Faculty: "Science", Kind: "theory", Capacity: 60},
			{ID: "Sci-Lab5", Faculty: "Science", Kind: "lab", Capacity: 20},
			{ID: "Hum-301", Faculty: "Humanities", Kind: "theory", Capacity: 60},
			{ID: "Hum-302", Faculty: "Humanities", Kind: "theory", Capacity: 60},
		},
		Professors: []dto.ProfessorPayload{
			{
				ID:               "p1",
				Name:             "Prof. X",
				EnabledFromCycle: 3,
				LabCapable:       boolPtr(false),
				Availability: map[string][][2]string{
					"Monday":    {{"07:00", "12:00"}, {"14:00", "18:00"}},
					"Tuesday":   {{"07:00", "12:00"}},
					"Wednesday": {{"12:30", "18:00"}},
					"Thursday":  {{"07:00", "12:00"}},
					"Friday":    {{"14:00", "20:00"}},
				},
			},
			{
				ID:               "p2",
				Name:             "Prof. Y",
				EnabledFromCycle: 1,
				LabCapable:       boolPtr(true),
				Availability:     fullWeek,
			},
		},
		Courses: []dto.CoursePayload{
			{
				Code: "BIO401", Name: "Molecular Biology", Faculty: "Science", Cycle: 4,
				EnrolledTheory: 80, EnrolledLab: 30,
				TheoryHours: 2, LabHours: 2,
				ProfessorID: strPtr("p2"),
			},
			{
				Code: "MAT101", Name: "Calculus I", Faculty: "Engineering", Cycle: 1,
				EnrolledTheory: 55,
				ProfessorID:    strPtr("p1"),
			},
			{
				Code: "PHY203", Name: "Physics II", Faculty: "Engineering", Cycle: 3,
				EnrolledTheory: 100, EnrolledLab: 45,
				LabHours:    3,
				ProfessorID: strPtr("p2"),
			},
			{
				Code: "LIT202", Name: "World Literature", Faculty: "Humanities", Cycle: 2,
				EnrolledTheory: 40,
				ProfessorID:    strPtr("p1"),
			},
		},
		Assistants: []string{"assist1", "assist2"},
	}
}
