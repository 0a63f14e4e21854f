package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/mvargas-dev/uni-scheduler-api/internal/dto"
	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
	"github.com/mvargas-dev/uni-scheduler-api/internal/scheduler"
	appErrors "github.com/mvargas-dev/uni-scheduler-api/pkg/errors"
)

// RunRepository archives completed runs. Optional.
type RunRepository interface {
	Insert(ctx context.Context, run *models.ScheduleRun) error
	FindByID(ctx context.Context, id string) (*models.ScheduleRun, error)
	List(ctx context.Context, semester string, limit, offset int) ([]models.ScheduleRunSummary, error)
	Count(ctx context.Context, semester string) (int, error)
}

// RunCache is a string key-value store for run snapshots. Optional.
type RunCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RunObserver receives per-run measurements. Optional.
type RunObserver interface {
	ObserveRun(duration time.Duration, assignments, alerts int)
}

// CourseMeta carries the course attributes the export layer needs beyond
// the assignment list itself.
type CourseMeta struct {
	Name    string `json:"name"`
	Faculty string `json:"faculty"`
	Cycle   int    `json:"cycle"`
}

// RunSnapshot is the immutable result of one scheduling run, kept for
// replay and export. It never aliases engine state.
type RunSnapshot struct {
	Response   dto.ScheduleResponse  `json:"response"`
	Courses    map[string]CourseMeta `json:"courses"`
	Professors map[string]string     `json:"professors"`
	CreatedAt  time.Time             `json:"createdAt"`
}

// ScheduleServiceConfig tunes run retention.
type ScheduleServiceConfig struct {
	RunTTL   time.Duration
	CacheTTL time.Duration
}

// ScheduleService validates scheduling requests, runs the engine (one
// isolated instance per request) and retains run snapshots.
type ScheduleService struct {
	repo      RunRepository
	cache     RunCache
	metrics   RunObserver
	validator *validator.Validate
	logger    *zap.Logger
	store     *runStore
	cfg       ScheduleServiceConfig
}

// NewScheduleService wires the scheduling dependencies. Repository, cache
// and metrics are optional.
func NewScheduleService(repo RunRepository, cache RunCache, metrics RunObserver, validate *validator.Validate, logger *zap.Logger, cfg ScheduleServiceConfig) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RunTTL <= 0 {
		cfg.RunTTL = time.Hour
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 30 * time.Minute
	}
	return &ScheduleService{
		repo:      repo,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		store:     newRunStore(cfg.RunTTL),
		cfg:       cfg,
	}
}

// Generate runs one scheduling pass over the request payload and returns
// the assignment and alert lists together with run metadata.
func (s *ScheduleService) Generate(ctx context.Context, req dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	rooms, professors, courses, err := buildEngineInput(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	engine := scheduler.New(req.Semester, rooms, professors, courses, req.Assistants, s.logger)
	if err := engine.Build(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "schedule build failed")
	}
	elapsed := time.Since(start)

	assignments := lo.Map(engine.Assignments(), func(a models.Assignment, _ int) dto.AssignmentPayload {
		return toAssignmentPayload(a)
	})
	alerts := engine.Alerts()
	if alerts == nil {
		alerts = []string{}
	}

	resp := dto.ScheduleResponse{
		RunID:       uuid.NewString(),
		Semester:    req.Semester,
		Assignments: assignments,
		Alerts:      alerts,
		Stats: dto.RunStats{
			Courses:        len(courses),
			Assignments:    len(assignments),
			Alerts:         len(alerts),
			DurationMillis: elapsed.Milliseconds(),
		},
	}

	snapshot := RunSnapshot{
		Response: resp,
		Courses: lo.SliceToMap(courses, func(c models.Course) (string, CourseMeta) {
			return c.Code, CourseMeta{Name: c.Name, Faculty: c.Faculty, Cycle: c.Cycle}
		}),
		Professors: lo.SliceToMap(professors, func(p models.Professor) (string, string) {
			return p.ID, p.Name
		}),
		CreatedAt: time.Now().UTC(),
	}
	s.store.Save(snapshot)
	s.cacheSnapshot(ctx, snapshot)
	s.persistSnapshot(ctx, snapshot)

	if s.metrics != nil {
		s.metrics.ObserveRun(elapsed, len(assignments), len(alerts))
	}

	s.logger.Info("schedule run completed",
		zap.String("run_id", resp.RunID),
		zap.String("semester", req.Semester),
		zap.Int("assignments", len(assignments)),
		zap.Int("alerts", len(alerts)),
		zap.Duration("duration", elapsed),
	)
	return &resp, nil
}

// GetRun replays a stored run result.
func (s *ScheduleService) GetRun(ctx context.Context, runID string) (*dto.ScheduleResponse, error) {
	snapshot, err := s.Snapshot(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &snapshot.Response, nil
}

// Snapshot resolves a run snapshot from memory, cache or the archive.
func (s *ScheduleService) Snapshot(ctx context.Context, runID string) (*RunSnapshot, error) {
	if runID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "run id is required")
	}
	if snapshot, ok := s.store.Get(runID); ok {
		return &snapshot, nil
	}
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, runCacheKey(runID)); err == nil && raw != "" {
			var snapshot RunSnapshot
			if err := json.Unmarshal([]byte(raw), &snapshot); err == nil {
				return &snapshot, nil
			}
			s.logger.Warn("discarding undecodable cached run", zap.String("run_id", runID))
		}
	}
	if s.repo != nil {
		record, err := s.repo.FindByID(ctx, runID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule run not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule run")
		}
		snapshot, err := snapshotFromRecord(record)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode schedule run")
		}
		return snapshot, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule run not found or expired")
}

// ListRuns pages through the persisted run archive.
func (s *ScheduleService) ListRuns(ctx context.Context, query dto.RunListQuery) ([]models.ScheduleRunSummary, *models.Pagination, error) {
	if s.repo == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "run archive is not enabled")
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	total, err := s.repo.Count(ctx, query.Semester)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count schedule runs")
	}
	items, err := s.repo.List(ctx, query.Semester, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule runs")
	}
	pagination := &models.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return items, pagination, nil
}

func (s *ScheduleService) cacheSnapshot(ctx context.Context, snapshot RunSnapshot) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Warn("failed to encode run for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, runCacheKey(snapshot.Response.RunID), string(payload), s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache run", zap.String("run_id", snapshot.Response.RunID), zap.Error(err))
	}
}

func (s *ScheduleService) persistSnapshot(ctx context.Context, snapshot RunSnapshot) {
	if s.repo == nil {
		return
	}
	record, err := recordFromSnapshot(snapshot)
	if err != nil {
		s.logger.Warn("failed to encode run for archive", zap.Error(err))
		return
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		s.logger.Warn("failed to archive run", zap.String("run_id", record.ID), zap.Error(err))
	}
}

func runCacheKey(runID string) string {
	return "schedule:run:" + runID
}

type runMeta struct {
	Courses    map[string]CourseMeta `json:"courses"`
	Professors map[string]string     `json:"professors"`
}

func recordFromSnapshot(snapshot RunSnapshot) (*models.ScheduleRun, error) {
	assignments, err := json.Marshal(snapshot.Response.Assignments)
	if err != nil {
		return nil, fmt.Errorf("encode assignments: %w", err)
	}
	alerts, err := json.Marshal(snapshot.Response.Alerts)
	if err != nil {
		return nil, fmt.Errorf("encode alerts: %w", err)
	}
	meta, err := json.Marshal(runMeta{Courses: snapshot.Courses, Professors: snapshot.Professors})
	if err != nil {
		return nil, fmt.Errorf("encode meta: %w", err)
	}
	return &models.ScheduleRun{
		ID:              snapshot.Response.RunID,
		Semester:        snapshot.Response.Semester,
		Assignments:     assignments,
		Alerts:          alerts,
		Meta:            meta,
		AssignmentCount: snapshot.Response.Stats.Assignments,
		AlertCount:      snapshot.Response.Stats.Alerts,
		CourseCount:     snapshot.Response.Stats.Courses,
		DurationMillis:  snapshot.Response.Stats.DurationMillis,
		CreatedAt:       snapshot.CreatedAt,
	}, nil
}

func snapshotFromRecord(record *models.ScheduleRun) (*RunSnapshot, error) {
	var assignments []dto.AssignmentPayload
	if err := json.Unmarshal(record.Assignments, &assignments); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	alerts := []string{}
	if len(record.Alerts) > 0 {
		if err := json.Unmarshal(record.Alerts, &alerts); err != nil {
			return nil, fmt.Errorf("decode alerts: %w", err)
		}
	}
	var meta runMeta
	if len(record.Meta) > 0 {
		if err := json.Unmarshal(record.Meta, &meta); err != nil {
			return nil, fmt.Errorf("decode meta: %w", err)
		}
	}
	return &RunSnapshot{
		Response: dto.ScheduleResponse{
			RunID:       record.ID,
			Semester:    record.Semester,
			Assignments: assignments,
			Alerts:      alerts,
			Stats: dto.RunStats{
				Courses:        record.CourseCount,
				Assignments:    record.AssignmentCount,
				Alerts:         record.AlertCount,
				DurationMillis: record.DurationMillis,
			},
		},
		Courses:    meta.Courses,
		Professors: meta.Professors,
		CreatedAt:  record.CreatedAt,
	}, nil
}

// --- payload conversion ---

const defaultSessionHours = 2

func buildEngineInput(req dto.ScheduleRequest) ([]models.Room, []models.Professor, []models.Course, error) {
	rooms := make([]models.Room, 0, len(req.Rooms))
	for _, r := range req.Rooms {
		rooms = append(rooms, models.Room{
			ID:       r.ID,
			Faculty:  r.Faculty,
			Kind:     models.RoomKind(r.Kind),
			Capacity: r.Capacity,
		})
	}

	professors := make([]models.Professor, 0, len(req.Professors))
	for _, p := range req.Professors {
		availability, err := parseAvailability(p.Availability)
		if err != nil {
			return nil, nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("professor %s: %v", p.ID, err))
		}
		enabledFrom := p.EnabledFromCycle
		if enabledFrom < 1 {
			enabledFrom = 1
		}
		labCapable := true
		if p.LabCapable != nil {
			labCapable = *p.LabCapable
		}
		professors = append(professors, models.Professor{
			ID:               p.ID,
			Name:             p.Name,
			EnabledFromCycle: enabledFrom,
			LabCapable:       labCapable,
			Availability:     availability,
		})
	}

	courses := make([]models.Course, 0, len(req.Courses))
	for _, c := range req.Courses {
		theoryHours := c.TheoryHours
		if theoryHours == 0 {
			theoryHours = defaultSessionHours
		}
		labHours := c.LabHours
		if labHours == 0 {
			labHours = defaultSessionHours
		}
		professorID := ""
		if c.ProfessorID != nil {
			professorID = *c.ProfessorID
		}
		courses = append(courses, models.Course{
			Code:           c.Code,
			Name:           c.Name,
			Faculty:        c.Faculty,
			Cycle:          c.Cycle,
			EnrolledTheory: c.EnrolledTheory,
			EnrolledLab:    c.EnrolledLab,
			TheoryHours:    theoryHours,
			LabHours:       labHours,
			ProfessorID:    professorID,
		})
	}
	return rooms, professors, courses, nil
}

func parseAvailability(raw map[string][][2]string) (map[models.Weekday][]models.TimeWindow, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	availability := make(map[models.Weekday][]models.TimeWindow, len(raw))
	for dayName, windows := range raw {
		day, err := models.ParseWeekday(dayName)
		if err != nil {
			return nil, err
		}
		parsed := make([]models.TimeWindow, 0, len(windows))
		for _, w := range windows {
			start, err := models.ClockToMinutes(w[0])
			if err != nil {
				return nil, err
			}
			end, err := models.ClockToMinutes(w[1])
			if err != nil {
				return nil, err
			}
			if end <= start {
				return nil, fmt.Errorf("availability window %s-%s on %s is empty", w[0], w[1], day)
			}
			parsed = append(parsed, models.TimeWindow{Start: start, End: end})
		}
		availability[day] = parsed
	}
	return availability, nil
}

func toAssignmentPayload(a models.Assignment) dto.AssignmentPayload {
	payload := dto.AssignmentPayload{
		CourseCode: a.CourseCode,
		Group:      a.Group,
		Slot: dto.SlotPayload{
			Day:   a.Slot.Day.String(),
			Start: a.Slot.Start,
			End:   a.Slot.End,
			Label: a.Slot.String(),
		},
		RoomID: a.RoomID,
	}
	if a.HasProfessor() {
		profID := a.ProfessorID
		payload.ProfessorID = &profID
	}
	return payload
}

// --- run store ---

type runStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]RunSnapshot
}

func newRunStore(ttl time.Duration) *runStore {
	return &runStore{
		ttl:   ttl,
		items: make(map[string]RunSnapshot),
	}
}

func (s *runStore) Save(snapshot RunSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[snapshot.Response.RunID] = snapshot
}

func (s *runStore) Get(id string) (RunSnapshot, bool) {
	s.mu.RLock()
	snapshot, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return RunSnapshot{}, false
	}
	if time.Since(snapshot.CreatedAt) > s.ttl {
		s.Delete(id)
		return RunSnapshot{}, false
	}
	return snapshot, true
}

func (s *runStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
