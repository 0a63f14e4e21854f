package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleRun is the persisted snapshot of one completed scheduling run.
// It records engine output, never engine state.
type ScheduleRun struct {
	ID              string         `db:"id" json:"id"`
	Semester        string         `db:"semester" json:"semester"`
	Assignments     types.JSONText `db:"assignments" json:"assignments"`
	Alerts          types.JSONText `db:"alerts" json:"alerts"`
	Meta            types.JSONText `db:"meta" json:"meta"`
	AssignmentCount int            `db:"assignment_count" json:"assignmentCount"`
	AlertCount      int            `db:"alert_count" json:"alertCount"`
	CourseCount     int            `db:"course_count" json:"courseCount"`
	DurationMillis  int64          `db:"duration_ms" json:"durationMs"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
}

// ScheduleRunSummary is the list-endpoint projection of a run.
type ScheduleRunSummary struct {
	ID              string    `db:"id" json:"id"`
	Semester        string    `db:"semester" json:"semester"`
	AssignmentCount int       `db:"assignment_count" json:"assignmentCount"`
	AlertCount      int       `db:"alert_count" json:"alertCount"`
	CourseCount     int       `db:"course_count" json:"courseCount"`
	DurationMillis  int64     `db:"duration_ms" json:"durationMs"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// Pagination carries standard list metadata.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
