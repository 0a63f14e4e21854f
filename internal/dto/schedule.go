package dto

// RoomPayload is the wire shape of a bookable room.
type RoomPayload struct {
	ID       string `json:"id" validate:"required"`
	Faculty  string `json:"faculty" validate:"required"`
	Kind     string `json:"kind" validate:"required,oneof=theory lab"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

// ProfessorPayload is the wire shape of a professor. Availability maps a
// weekday name to ordered (start, end) clock pairs in HH:MM 24-hour format.
// LabCapable defaults to true and EnabledFromCycle to 1 when omitted.
type ProfessorPayload struct {
	ID               string                 `json:"id" validate:"required"`
	Name             string                 `json:"name" validate:"required"`
	EnabledFromCycle int                    `json:"enabledFromCycle" validate:"omitempty,min=1"`
	LabCapable       *bool                  `json:"labCapable"`
	Availability     map[string][][2]string `json:"availability"`
}

// CoursePayload is the wire shape of a course. Durations default to two
// hours when omitted.
type CoursePayload struct {
	Code           string  `json:"code" validate:"required"`
	Name           string  `json:"name" validate:"required"`
	Faculty        string  `json:"faculty" validate:"required"`
	Cycle          int     `json:"cycle" validate:"required,min=1"`
	EnrolledTheory int     `json:"enrolledTheory" validate:"min=0"`
	EnrolledLab    int     `json:"enrolledLab" validate:"min=0"`
	TheoryHours    int     `json:"theoryHours" validate:"omitempty,min=1,max=12"`
	LabHours       int     `json:"labHours" validate:"omitempty,min=1,max=12"`
	ProfessorID    *string `json:"professorId"`
}

// ScheduleRequest is the full input of one scheduling run.
type ScheduleRequest struct {
	Semester   string             `json:"semester" validate:"required"`
	Rooms      []RoomPayload      `json:"rooms" validate:"required,min=1,dive"`
	Professors []ProfessorPayload `json:"professors" validate:"omitempty,dive"`
	Courses    []CoursePayload    `json:"courses" validate:"required,min=1,dive"`
	Assistants []string           `json:"assistants"`
}

// SlotPayload is a placed weekly time window.
type SlotPayload struct {
	Day   string `json:"day"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label string `json:"label"`
}

// AssignmentPayload is a placed session. A nil professorId means the
// session is assistant-covered.
type AssignmentPayload struct {
	CourseCode  string      `json:"courseCode"`
	Group       string      `json:"group"`
	Slot        SlotPayload `json:"slot"`
	RoomID      string      `json:"roomId"`
	ProfessorID *string     `json:"professorId"`
}

// RunStats summarises one run.
type RunStats struct {
	Courses        int   `json:"courses"`
	Assignments    int   `json:"assignments"`
	Alerts         int   `json:"alerts"`
	DurationMillis int64 `json:"durationMs"`
}

// ScheduleResponse returns the engine output plus run metadata.
type ScheduleResponse struct {
	RunID       string              `json:"runId"`
	Semester    string              `json:"semester"`
	Assignments []AssignmentPayload `json:"assignments"`
	Alerts      []string            `json:"alerts"`
	Stats       RunStats            `json:"stats"`
}

// RunListQuery filters persisted run summaries.
type RunListQuery struct {
	Semester string `form:"semester" json:"semester"`
	Page     int    `form:"page" json:"page"`
	PerPage  int    `form:"perPage" json:"perPage"`
}

// ExportQuery selects the artifact format for a stored run.
type ExportQuery struct {
	Format string `form:"format" validate:"required,oneof=xlsx csv pdf"`
}
