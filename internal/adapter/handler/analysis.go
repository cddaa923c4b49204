package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studybuddy-team/study-buddy/errors"
	dto "github.com/studybuddy-team/study-buddy/internal/adapter/dto/analysis"
	"github.com/studybuddy-team/study-buddy/internal/usecase/analysis"
)

// Analysis exposes the analysis pipeline over HTTP
type Analysis struct {
	svc    *analysis.Service
	logger *zap.Logger
}

// NewAnalysisHandler creates the analysis handler
func NewAnalysisHandler(svc *analysis.Service, logger *zap.Logger) *Analysis {
	return &Analysis{svc: svc, logger: logger}
}

// Analyze godoc
// @Summary      Analyze a YouTube video
// @Description  Fetches the transcript and generates summary, timestamps and quizzes
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AnalyzeRequest  true  "Video URL and summary depth"
// @Success      200      {object}  map[string]interface{}  "Completed analysis"
// @Failure      400      {object}  map[string]interface{}  "Invalid YouTube URL or payload"
// @Failure      500      {object}  map[string]interface{}  "Analysis failed"
// @Router       /api/analyze [post]
func (h *Analysis) Analyze(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.Analyze(c.Request().Context(), req.URL, req.SummaryDepth)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewAnalysisResponse(result))
}

// GetAnalysis godoc
// @Summary      Get a stored analysis
// @Tags         Analysis
// @Produce      json
// @Param        videoId  path      string  true  "YouTube video ID"
// @Success      200      {object}  map[string]interface{}  "Stored analysis"
// @Failure      404      {object}  map[string]interface{}  "Analysis not found"
// @Router       /api/analysis/{videoId} [get]
func (h *Analysis) GetAnalysis(c echo.Context) error {
	videoID := c.Param("videoId")
	if videoID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("videoId is required"))
	}

	result, err := h.svc.GetAnalysis(c.Request().Context(), videoID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewAnalysisResponse(result))
}

// ListAnalyses godoc
// @Summary      List recent analyses
// @Tags         Analysis
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of analyses, 20 by default"
// @Success      200    {object}  map[string]interface{}  "Recent analyses, newest first"
// @Router       /api/analyses [get]
func (h *Analysis) ListAnalyses(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("limit must be a positive integer"))
		}
		limit = n
	}

	analyses, err := h.svc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewAnalysisListResponse(analyses))
}

// DeleteAnalysis godoc
// @Summary      Delete a stored analysis
// @Tags         Analysis
// @Produce      json
// @Param        videoId  path      string  true  "YouTube video ID"
// @Success      200      {object}  map[string]interface{}  "Deletion confirmation"
// @Failure      404      {object}  map[string]interface{}  "Analysis not found"
// @Router       /api/analysis/{videoId} [delete]
func (h *Analysis) DeleteAnalysis(c echo.Context) error {
	videoID := c.Param("videoId")
	if videoID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("videoId is required"))
	}

	if err := h.svc.DeleteAnalysis(c.Request().Context(), videoID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"video_id": videoID})
}

// AnalyzeAsync godoc
// @Summary      Start an async analysis job
// @Description  Queues the analysis pipeline and returns the job immediately
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AnalyzeRequest  true  "Video URL and summary depth"
// @Success      202      {object}  map[string]interface{}  "Queued job"
// @Failure      400      {object}  map[string]interface{}  "Invalid YouTube URL or payload"
// @Router       /api/analyze/async [post]
func (h *Analysis) AnalyzeAsync(c echo.Context) error {
	var req dto.AnalyzeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	job, err := h.svc.StartAsync(c.Request().Context(), req.URL, req.SummaryDepth)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleAccepted(h.logger, c, dto.NewJobResponse(job))
}

// JobStatus godoc
// @Summary      Get async job status
// @Tags         Analysis
// @Produce      json
// @Param        jobId  path      string  true  "Job ID (UUID)"
// @Success      200    {object}  map[string]interface{}  "Job status and progress"
// @Failure      404    {object}  map[string]interface{}  "Job not found"
// @Router       /api/status/{jobId} [get]
func (h *Analysis) JobStatus(c echo.Context) error {
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("jobId must be a UUID"))
	}

	job, err := h.svc.JobStatus(c.Request().Context(), jobID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewJobResponse(job))
}
