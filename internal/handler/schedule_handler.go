package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mvargas-dev/uni-scheduler-api/internal/dto"
	"github.com/mvargas-dev/uni-scheduler-api/internal/models"
	"github.com/mvargas-dev/uni-scheduler-api/internal/sample"
	"github.com/mvargas-dev/uni-scheduler-api/internal/service"
	appErrors "github.com/mvargas-dev/uni-scheduler-api/pkg/errors"
	"github.com/mvargas-dev/uni-scheduler-api/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.ScheduleRequest) (*dto.ScheduleResponse, error)
	GetRun(ctx context.Context, runID string) (*dto.ScheduleResponse, error)
	ListRuns(ctx context.Context, query dto.RunListQuery) ([]models.ScheduleRunSummary, *models.Pagination, error)
}

type scheduleExporter interface {
	Export(ctx context.Context, runID, format string) (*service.Artifact, error)
}

// ScheduleHandler exposes the scheduling engine over HTTP.
type ScheduleHandler struct {
	schedules scheduleGenerator
	exports   scheduleExporter
	logger    *zap.Logger
}

// NewScheduleHandler wires the schedule routes.
func NewScheduleHandler(schedules scheduleGenerator, exports scheduleExporter, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{schedules: schedules, exports: exports, logger: logger}
}

// Register mounts the schedule routes on the given group.
func (h *ScheduleHandler) Register(group *gin.RouterGroup) {
	schedule := group.Group("/schedule")
	schedule.GET("/sample", h.Sample)
	schedule.POST("/generate", h.Generate)
	schedule.GET("/runs", h.ListRuns)
	schedule.GET("/runs/:id", h.GetRun)
	schedule.GET("/runs/:id/export", h.ExportRun)
}

// Generate godoc
// @Summary Generate a schedule
// @Description Runs the three-phase placement over the submitted rooms, professors and courses and returns assignments plus alerts.
// @Tags schedule
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleRequest true "Scheduling input"
// @Success 201 {object} response.Envelope{data=dto.ScheduleResponse}
// @Failure 400 {object} response.Envelope
// @Router /schedule/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body"))
		return
	}

	result, err := h.schedules.Generate(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("schedule generation rejected", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetRun godoc
// @Summary Replay a schedule run
// @Description Returns the stored result of a previous run.
// @Tags schedule
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} response.Envelope{data=dto.ScheduleResponse}
// @Failure 404 {object} response.Envelope
// @Router /schedule/runs/{id} [get]
func (h *ScheduleHandler) GetRun(c *gin.Context) {
	result, err := h.schedules.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListRuns godoc
// @Summary List archived schedule runs
// @Tags schedule
// @Produce json
// @Param semester query string false "Semester filter"
// @Param page query int false "Page number"
// @Param perPage query int false "Page size"
// @Success 200 {object} response.Envelope{data=[]models.ScheduleRunSummary}
// @Router /schedule/runs [get]
func (h *ScheduleHandler) ListRuns(c *gin.Context) {
	var query dto.RunListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed query"))
		return
	}

	items, pagination, err := h.schedules.ListRuns(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// ExportRun godoc
// @Summary Export a schedule run
// @Description Streams the run timetable as a spreadsheet, CSV or alert PDF.
// @Tags schedule
// @Produce application/octet-stream
// @Param id path string true "Run ID"
// @Param format query string true "Export format" Enums(xlsx, csv, pdf)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule/runs/{id}/export [get]
func (h *ScheduleHandler) ExportRun(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil || query.Format == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format query parameter is required (xlsx, csv or pdf)"))
		return
	}

	artifact, err := h.exports.Export(c.Request.Context(), c.Param("id"), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// Sample godoc
// @Summary Sample scheduling payload
// @Description Returns a ready-to-submit example request covering labs, theory splits and alert cases.
// @Tags schedule
// @Produce json
// @Success 200 {object} response.Envelope{data=dto.ScheduleRequest}
// @Router /schedule/sample [get]
func (h *ScheduleHandler) Sample(c *gin.Context) {
	response.JSON(c, http.StatusOK, sample.Request(), nil)
}
