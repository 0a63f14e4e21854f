package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvargas-dev/uni-scheduler-api/internal/dto"
	appErrors "github.com/mvargas-dev/uni-scheduler-api/pkg/errors"
)

type staticSnapshots struct {
	snapshot *RunSnapshot
}

func (s *staticSnapshots) Snapshot(_ context.Context, runID string) (*RunSnapshot, error) {
	if s.snapshot == nil || s.snapshot.Response.RunID != runID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule run not found")
	}
	return s.snapshot, nil
}

func professorRef(id string) *string { return &id }

func exportSnapshot() *RunSnapshot {
	return &RunSnapshot{
		Response: dto.ScheduleResponse{
			RunID:    "run-1",
			Semester: "2026-I",
			Assignments: []dto.AssignmentPayload{
				{
					CourseCode: "PHY203", Group: "Teo-A",
					Slot:   dto.SlotPayload{Day: "Tuesday", Start: 420, End: 540},
					RoomID: "Eng-A101", ProfessorID: professorRef("p2"),
				},
				{
					CourseCode: "BIO401", Group: "Lab-1",
					Slot:   dto.SlotPayload{Day: "Monday", Start: 540, End: 660},
					RoomID: "Sci-Lab5",
				},
				{
					CourseCode: "BIO401", Group: "Teo-A",
					Slot:   dto.SlotPayload{Day: "Monday", Start: 420, End: 540},
					RoomID: "Sci-201", ProfessorID: professorRef("p2"),
				},
			},
			Alerts: []string{"professor p2 exceeded the daily hour cap on Monday: 7.0h"},
		},
		Courses: map[string]CourseMeta{
			"BIO401": {Name: "Molecular Biology", Faculty: "Science", Cycle: 4},
			"PHY203": {Name: "Physics II", Faculty: "Engineering", Cycle: 3},
		},
		Professors: map[string]string{"p2": "Prof. Y"},
	}
}

func TestBuildWorkbook_GroupsByFacultyAndCycle(t *testing.T) {
	wb := BuildWorkbook(exportSnapshot())

	// Two faculty blocks sorted by name, then the alert table.
	require.Len(t, wb.Tables, 3)
	assert.Equal(t, "Engineering-C3", wb.Tables[0].Name)
	assert.Equal(t, "Science-C4", wb.Tables[1].Name)
	assert.Equal(t, "Alerts", wb.Tables[2].Name)

	science := wb.Tables[1]
	require.Len(t, science.Rows, 2)
	// Monday theory before Monday lab: ordered by start time.
	assert.Equal(t, "Teo-A", science.Rows[0][1])
	assert.Equal(t, "07:00", science.Rows[0][3])
	assert.Equal(t, "Lab-1", science.Rows[1][1])
	assert.Equal(t, "Prof. Y", science.Rows[0][6])
	assert.Equal(t, "Assistant/Unassigned", science.Rows[1][6])
	assert.Equal(t, "BIO401 Molecular Biology", science.Rows[0][0])
}

func TestBuildWorkbook_EmptyRunStillRenders(t *testing.T) {
	snapshot := &RunSnapshot{Response: dto.ScheduleResponse{RunID: "run-2", Alerts: []string{}}}

	wb := BuildWorkbook(snapshot)
	require.Len(t, wb.Tables, 1)
	assert.Equal(t, "Schedule", wb.Tables[0].Name)
	assert.Empty(t, wb.Tables[0].Rows)
}

func TestBuildWorkbook_TruncatesLongSheetNames(t *testing.T) {
	snapshot := exportSnapshot()
	meta := snapshot.Courses["BIO401"]
	meta.Faculty = strings.Repeat("VeryLongFacultyName", 3)
	snapshot.Courses["BIO401"] = meta

	svc := NewExportService(&staticSnapshots{snapshot: snapshot}, nil)
	artifact, err := svc.Export(context.Background(), "run-1", "xlsx")
	require.NoError(t, err)
	assert.NotEmpty(t, artifact.Data)
}

func TestExportService_Formats(t *testing.T) {
	svc := NewExportService(&staticSnapshots{snapshot: exportSnapshot()}, nil)

	cases := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "schedule-"},
		{"csv", "text/csv", "schedule-"},
		{"pdf", "application/pdf", "alerts-"},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			artifact, err := svc.Export(context.Background(), "run-1", tc.format)
			require.NoError(t, err)
			assert.Equal(t, tc.contentType, artifact.ContentType)
			assert.True(t, strings.HasPrefix(artifact.Filename, tc.prefix))
			assert.NotEmpty(t, artifact.Data)
		})
	}
}

func TestExportService_CSVContent(t *testing.T) {
	svc := NewExportService(&staticSnapshots{snapshot: exportSnapshot()}, nil)

	artifact, err := svc.Export(context.Background(), "run-1", "csv")
	require.NoError(t, err)

	content := string(artifact.Data)
	assert.Contains(t, content, "Engineering-C3")
	assert.Contains(t, content, "Science-C4")
	assert.Contains(t, content, "Assistant/Unassigned")
	assert.Contains(t, content, "exceeded the daily hour cap")
}

func TestExportService_UnknownFormat(t *testing.T) {
	svc := NewExportService(&staticSnapshots{snapshot: exportSnapshot()}, nil)

	_, err := svc.Export(context.Background(), "run-1", "docx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportService_MissingRun(t *testing.T) {
	svc := NewExportService(&staticSnapshots{}, nil)

	_, err := svc.Export(context.Background(), "run-9", "csv")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
