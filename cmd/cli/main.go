// Command cli runs the scheduler once over CSV inputs (or the built-in
// sample dataset) and prints the timetable. With -export it also writes
// schedule.xlsx and alerts.pdf artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/mvargas-dev/uni-scheduler-api/internal/csvio"
	"github.com/mvargas-dev/uni-scheduler-api/internal/dto"
	"github.com/mvargas-dev/uni-scheduler-api/internal/sample"
	"github.com/mvargas-dev/uni-scheduler-api/internal/service"
)

func main() {
	var (
		semester   = flag.String("semester", "", "semester code (e.g. April-August); overrides the dataset value")
		roomsPath  = flag.String("rooms", "", "rooms CSV file")
		profsPath  = flag.String("professors", "", "professors CSV file")
		coursePath = flag.String("courses", "", "courses CSV file")
		exportDir  = flag.String("export", "", "directory to write schedule.xlsx and alerts.pdf into")
		verbose    = flag.Bool("v", false, "verbose engine logging")
	)
	flag.Parse()

	req, err := buildRequest(*semester, *roomsPath, *profsPath, *coursePath)
	if err != nil {
		log.Fatalf("load input: %v", err)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("init logger: %v", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	svc := service.NewScheduleService(nil, nil, nil, nil, logger, service.ScheduleServiceConfig{})
	ctx := context.Background()

	resp, err := svc.Generate(ctx, *req)
	if err != nil {
		log.Fatalf("generate schedule: %v", err)
	}

	snapshot, err := svc.Snapshot(ctx, resp.RunID)
	if err != nil {
		log.Fatalf("load run: %v", err)
	}

	printWorkbook(snapshot)

	if *exportDir != "" {
		if err := writeArtifacts(ctx, svc, resp, *exportDir); err != nil {
			log.Fatalf("export: %v", err)
		}
	}
}

func buildRequest(semester, roomsPath, profsPath, coursePath string) (*dto.ScheduleRequest, error) {
	if roomsPath == "" && profsPath == "" && coursePath == "" {
		req := sample.Request()
		if semester != "" {
			req.Semester = semester
		}
		fmt.Println("No CSV inputs given, running the built-in sample dataset.")
		return &req, nil
	}
	if roomsPath == "" || coursePath == "" {
		return nil, fmt.Errorf("-rooms and -courses are required when loading from CSV")
	}

	rooms, err := csvio.LoadRooms(roomsPath)
	if err != nil {
		return nil, err
	}
	courses, err := csvio.LoadCourses(coursePath)
	if err != nil {
		return nil, err
	}
	var professors []dto.ProfessorPayload
	if profsPath != "" {
		professors, err = csvio.LoadProfessors(profsPath)
		if err != nil {
			return nil, err
		}
	}
	if semester == "" {
		return nil, fmt.Errorf("-semester is required when loading from CSV")
	}
	return &dto.ScheduleRequest{
		Semester:   semester,
		Rooms:      rooms,
		Professors: professors,
		Courses:    courses,
	}, nil
}

func printWorkbook(snapshot *service.RunSnapshot) {
	wb := service.BuildWorkbook(snapshot)
	for _, table := range wb.Tables {
		fmt.Printf("\n== %s ==\n", table.Name)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		printRow(w, table.Headers)
		for _, row := range table.Rows {
			printRow(w, row)
		}
		w.Flush() //nolint:errcheck
	}
	fmt.Printf("\n%d assignments, %d alerts\n",
		snapshot.Response.Stats.Assignments, snapshot.Response.Stats.Alerts)
}

func printRow(w *tabwriter.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, cell)
	}
	fmt.Fprintln(w)
}

func writeArtifacts(ctx context.Context, svc *service.ScheduleService, resp *dto.ScheduleResponse, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	exporter := service.NewExportService(svc, nil)

	targets := map[string]string{
		"xlsx": "schedule.xlsx",
		"pdf":  "alerts.pdf",
	}
	for format, name := range targets {
		artifact, err := exporter.Export(ctx, resp.RunID, format)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
