package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
)

func newMockRepository(t *testing.T) (*ScheduleRunRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewScheduleRunRepository(sqlx.NewDb(db, "postgres")), mock
}

func sampleRun() *models.ScheduleRun {
	return &models.ScheduleRun{
		ID:              "run-1",
		Semester:        "2026-I",
		Assignments:     types.JSONText(`[]`),
		Alerts:          types.JSONText(`[]`),
		Meta:            types.JSONText(`{}`),
		AssignmentCount: 3,
		AlertCount:      1,
		CourseCount:     2,
		DurationMillis:  12,
		CreatedAt:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestScheduleRunRepository_Insert(t *testing.T) {
	repo, mock := newMockRepository(t)
	run := sampleRun()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_runs")).
		WithArgs(
			run.ID, run.Semester, run.Assignments, run.Alerts, run.Meta,
			run.AssignmentCount, run.AlertCount, run.CourseCount,
			run.DurationMillis, run.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(context.Background(), run)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepository_FindByID(t *testing.T) {
	repo, mock := newMockRepository(t)
	run := sampleRun()

	rows := sqlmock.NewRows([]string{
		"id", "semester", "assignments", "alerts", "meta",
		"assignment_count", "alert_count", "course_count", "duration_ms", "created_at",
	}).AddRow(
		run.ID, run.Semester, []byte(run.Assignments), []byte(run.Alerts), []byte(run.Meta),
		run.AssignmentCount, run.AlertCount, run.CourseCount, run.DurationMillis, run.CreatedAt,
	)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_runs")).
		WithArgs(run.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, run.Semester, found.Semester)
	assert.Equal(t, run.AssignmentCount, found.AssignmentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepository_FindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedule_runs")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestScheduleRunRepository_List(t *testing.T) {
	repo, mock := newMockRepository(t)
	run := sampleRun()

	rows := sqlmock.NewRows([]string{
		"id", "semester", "assignment_count", "alert_count", "course_count", "duration_ms", "created_at",
	}).AddRow(run.ID, run.Semester, run.AssignmentCount, run.AlertCount, run.CourseCount, run.DurationMillis, run.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("2026-I", 20, 0).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), "2026-I", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, run.ID, items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRunRepository_Count(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM schedule_runs")).
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
