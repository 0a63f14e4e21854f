package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

// ScheduleRunRepository archives completed scheduling runs in Postgres.
type ScheduleRunRepository struct {
	db *sqlx.DB
}

// NewScheduleRunRepository builds the run archive over an sqlx handle.
func NewScheduleRunRepository(db *sqlx.DB) *ScheduleRunRepository {
	return &ScheduleRunRepository{db: db}
}

const insertRunQuery = `
	INSERT INTO schedule_runs (
		id, semester, assignments, alerts, meta,
		assignment_count, alert_count, course_count, duration_ms, created_at
	) VALUES (
		:id, :semester, :assignments, :alerts, :meta,
		:assignment_count, :alert_count, :course_count, :duration_ms, :created_at
	)`

// Insert stores one completed run.
func (r *ScheduleRunRepository) Insert(ctx context.Context, run *models.ScheduleRun) error {
	if _, err := r.db.NamedExecContext(ctx, insertRunQuery, run); err != nil {
		return fmt.Errorf("insert schedule run: %w", err)
	}
	return nil
}

// FindByID loads one archived run. sql.ErrNoRows passes through so callers
// can map it to a not-found response.
func (r *ScheduleRunRepository) FindByID(ctx context.Context, id string) (*models.ScheduleRun, error) {
	var run models.ScheduleRun
	query := `
		SELECT id, semester, assignments, alerts, meta,
		       assignment_count, alert_count, course_count, duration_ms, created_at
		FROM schedule_runs
		WHERE id = $1`
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns run summaries newest first, optionally filtered by semester.
func (r *ScheduleRunRepository) List(ctx context.Context, semester string, limit, offset int) ([]models.ScheduleRunSummary, error) {
	runs := []models.ScheduleRunSummary{}
	query := `
		SELECT id, semester, assignment_count, alert_count, course_count, duration_ms, created_at
		FROM schedule_runs
		WHERE ($1 = '' OR semester = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &runs, query, semester, limit, offset); err != nil {
		return nil, fmt.Errorf("list schedule runs: %w", err)
	}
	return runs, nil
}

// Count reports how many archived runs match the semester filter.
func (r *ScheduleRunRepository) Count(ctx context.Context, semester string) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM schedule_runs WHERE ($1 = '' OR semester = $1)`
	if err := r.db.GetContext(ctx, &total, query, semester); err != nil {
		return 0, fmt.Errorf("count schedule runs: %w", err)
	}
	return total, nil
}
