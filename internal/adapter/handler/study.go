package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/studybuddy-team/study-buddy/errors"
	dto "github.com/studybuddy-team/study-buddy/internal/adapter/dto/analysis"
	"github.com/studybuddy-team/study-buddy/internal/usecase/analysis"
	"github.com/studybuddy-team/study-buddy/internal/usecase/study"
)

// Study exposes the derived study operations: grading, timestamp search,
// note export, flashcards.
type Study struct {
	svc    *analysis.Service
	logger *zap.Logger
}

// NewStudyHandler creates the study handler
func NewStudyHandler(svc *analysis.Service, logger *zap.Logger) *Study {
	return &Study{svc: svc, logger: logger}
}

// GradeQuiz godoc
// @Summary      Grade a quiz
// @Description  Scores a sparse answer mapping against a stored quiz
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        videoId  path      string                 true  "YouTube video ID"
// @Param        index    path      int                    true  "Quiz index within the analysis"
// @Param        request  body      dto.GradeQuizRequest   true  "Answers keyed by question index"
// @Success      200      {object}  map[string]interface{} "Score and per-question feedback"
// @Failure      404      {object}  map[string]interface{} "Analysis or quiz not found"
// @Router       /api/analysis/{videoId}/quizzes/{index}/grade [post]
func (h *Study) GradeQuiz(c echo.Context) error {
	videoID := c.Param("videoId")
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("quiz index must be an integer"))
	}

	var req dto.GradeQuizRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.GradeQuiz(c.Request().Context(), videoID, index, req.Answers)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// SearchTimestamps godoc
// @Summary      Filter timestamps
// @Description  Case-insensitive keyword search over topic, description and keywords, plus an exact topic selector
// @Tags         Study
// @Produce      json
// @Param        videoId  path      string  true   "YouTube video ID"
// @Param        q        query     string  false  "Search query"
// @Param        topic    query     string  false  "Topic selector, 'all' by default"
// @Success      200      {object}  map[string]interface{}  "Matches and topic options"
// @Failure      404      {object}  map[string]interface{}  "Analysis not found"
// @Router       /api/analysis/{videoId}/timestamps [get]
func (h *Study) SearchTimestamps(c echo.Context) error {
	videoID := c.Param("videoId")
	query := c.QueryParam("q")
	topic := queryParam(c, "topic", study.TopicAll)

	matches, topics, err := h.svc.SearchTimestamps(c.Request().Context(), videoID, query, topic)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.TimestampSearchResponse{
		VideoID: videoID,
		Query:   query,
		Topic:   topic,
		Matches: matches,
		Topics:  topics,
	})
}

// ExportNotes godoc
// @Summary      Export study notes
// @Description  Renders the analysis as downloadable markdown or plain text
// @Tags         Study
// @Produce      plain
// @Param        videoId  path      string  true   "YouTube video ID"
// @Param        format   query     string  false  "markdown or text, markdown by default"
// @Success      200      {string}  string  "Rendered notes as an attachment"
// @Failure      400      {object}  map[string]interface{}  "Unsupported format"
// @Failure      404      {object}  map[string]interface{}  "Analysis not found"
// @Router       /api/analysis/{videoId}/export [get]
func (h *Study) ExportNotes(c echo.Context) error {
	videoID := c.Param("videoId")
	format := queryParam(c, "format", study.FormatMarkdown)

	fileName, content, err := h.svc.ExportNotes(c.Request().Context(), videoID, format)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	contentType := "text/markdown; charset=utf-8"
	if format == study.FormatText {
		contentType = "text/plain; charset=utf-8"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Blob(http.StatusOK, contentType, []byte(content))
}

// GenerateFlashcards godoc
// @Summary      Generate flashcards
// @Description  Builds revision cards from a stored analysis or raw transcript text
// @Tags         Study
// @Accept       json
// @Produce      json
// @Param        request  body      dto.FlashcardsRequest  true  "Video ID or transcript plus optional summary"
// @Success      200      {object}  map[string]interface{} "Generated cards"
// @Failure      404      {object}  map[string]interface{} "Analysis not found"
// @Router       /api/generate-flashcards [post]
func (h *Study) GenerateFlashcards(c echo.Context) error {
	var req dto.FlashcardsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	transcript := req.Transcript
	summary := req.Summary
	if transcript == "" {
		stored, err := h.svc.GetAnalysis(ctx, req.VideoID)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		transcript = stored.Transcript
		if summary == "" {
			summary = stored.Summary.Text()
		}
	}

	cards, err := h.svc.GenerateFlashcards(ctx, transcript, summary)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.FlashcardsResponse{Cards: cards, Count: len(cards)})
}
