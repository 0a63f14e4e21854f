package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mvargas-dev/uni-scheduler-api/internal/dto"
	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
	appErrors "github.com/mvargas-dev/uni-scheduler-api/pkg/errors"
	"github.com/mvargas-dev/uni-scheduler-api/pkg/export"
)

type snapshotSource interface {
	Snapshot(ctx context.Context, runID string) (*RunSnapshot, error)
}

// Artifact is one rendered export ready to be sent or written to disk.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService turns stored run snapshots into downloadable artifacts.
type ExportService struct {
	runs   snapshotSource
	csv    *export.CSVExporter
	xlsx   *export.XLSXExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService wires the export renderers against a snapshot source.
func NewExportService(runs snapshotSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		runs:   runs,
		csv:    export.NewCSVExporter(),
		xlsx:   export.NewXLSXExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Export renders the run's timetable in the requested format. The xlsx and
// csv artifacts carry one table per faculty-and-cycle block plus a trailing
// alert table; the pdf artifact is the alert report alone.
func (s *ExportService) Export(ctx context.Context, runID, format string) (*Artifact, error) {
	snapshot, err := s.runs.Snapshot(ctx, runID)
	if err != nil {
		return nil, err
	}

	switch format {
	case "xlsx":
		wb := BuildWorkbook(snapshot)
		data, err := s.xlsx.Render(wb)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render spreadsheet")
		}
		return &Artifact{
			Filename:    fmt.Sprintf("schedule-%s.xlsx", runID),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	case "csv":
		wb := BuildWorkbook(snapshot)
		data, err := s.csv.Render(wb)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &Artifact{
			Filename:    fmt.Sprintf("schedule-%s.csv", runID),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case "pdf":
		wb := BuildAlertWorkbook(snapshot)
		data, err := s.pdf.Render(wb, "Schedule Alerts")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &Artifact{
			Filename:    fmt.Sprintf("alerts-%s.pdf", runID),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}
}

var timetableHeaders = []string{"Course", "Group", "Day", "Start", "End", "Room", "Professor"}

// BuildWorkbook groups a run's assignments into one table per faculty and
// cycle, rows ordered by weekday, start time, course code and group.
func BuildWorkbook(snapshot *RunSnapshot) export.Workbook {
	type blockKey struct {
		faculty string
		cycle   int
	}
	blocks := make(map[blockKey][]dto.AssignmentPayload)
	for _, a := range snapshot.Response.Assignments {
		meta := snapshot.Courses[a.CourseCode]
		key := blockKey{faculty: meta.Faculty, cycle: meta.Cycle}
		blocks[key] = append(blocks[key], a)
	}

	keys := make([]blockKey, 0, len(blocks))
	for key := range blocks {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].faculty != keys[j].faculty {
			return keys[i].faculty < keys[j].faculty
		}
		return keys[i].cycle < keys[j].cycle
	})

	wb := export.Workbook{}
	for _, key := range keys {
		rows := blocks[key]
		sort.SliceStable(rows, func(i, j int) bool {
			di, _ := models.ParseWeekday(rows[i].Slot.Day)
			dj, _ := models.ParseWeekday(rows[j].Slot.Day)
			if di != dj {
				return di < dj
			}
			if rows[i].Slot.Start != rows[j].Slot.Start {
				return rows[i].Slot.Start < rows[j].Slot.Start
			}
			if rows[i].CourseCode != rows[j].CourseCode {
				return rows[i].CourseCode < rows[j].CourseCode
			}
			return rows[i].Group < rows[j].Group
		})

		table := export.Table{
			Name:    fmt.Sprintf("%s-C%d", key.faculty, key.cycle),
			Headers: timetableHeaders,
		}
		for _, a := range rows {
			table.Rows = append(table.Rows, []string{
				courseLabel(snapshot, a.CourseCode),
				a.Group,
				a.Slot.Day,
				models.MinutesToClock(a.Slot.Start),
				models.MinutesToClock(a.Slot.End),
				a.RoomID,
				professorLabel(snapshot, a.ProfessorID),
			})
		}
		wb.Tables = append(wb.Tables, table)
	}

	if len(snapshot.Response.Alerts) > 0 {
		wb.Tables = append(wb.Tables, alertTable(snapshot.Response.Alerts))
	}
	if len(wb.Tables) == 0 {
		wb.Tables = append(wb.Tables, export.Table{Name: "Schedule", Headers: timetableHeaders})
	}
	return wb
}

// BuildAlertWorkbook carries only the run's alert list, one row per alert.
func BuildAlertWorkbook(snapshot *RunSnapshot) export.Workbook {
	return export.Workbook{Tables: []export.Table{alertTable(snapshot.Response.Alerts)}}
}

func alertTable(alerts []string) export.Table {
	table := export.Table{
		Name:    "Alerts",
		Headers: []string{"#", "Alert"},
	}
	for i, alert := range alerts {
		table.Rows = append(table.Rows, []string{fmt.Sprintf("%d", i+1), alert})
	}
	return table
}

func courseLabel(snapshot *RunSnapshot, code string) string {
	if meta, ok := snapshot.Courses[code]; ok && meta.Name != "" {
		return fmt.Sprintf("%s %s", code, meta.Name)
	}
	return code
}

func professorLabel(snapshot *RunSnapshot, professorID *string) string {
	if professorID == nil || *professorID == "" {
		return "Assistant/Unassigned"
	}
	if name, ok := snapshot.Professors[*professorID]; ok && name != "" {
		return name
	}
	return *professorID
}
