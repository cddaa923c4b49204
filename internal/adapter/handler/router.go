package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/studybuddy-team/study-buddy/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	analysisHandler *Analysis
	studyHandler    *Study
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, analysisHandler *Analysis, studyHandler *Study) *Router {
	return &Router{
		cfg:             cfg,
		analysisHandler: analysisHandler,
		studyHandler:    studyHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.POST("/analyze", rt.analysisHandler.Analyze)
	api.POST("/analyze/async", rt.analysisHandler.AnalyzeAsync)
	api.GET("/status/:jobId", rt.analysisHandler.JobStatus)
	api.GET("/analyses", rt.analysisHandler.ListAnalyses)
	api.GET("/analysis/:videoId", rt.analysisHandler.GetAnalysis)
	api.DELETE("/analysis/:videoId", rt.analysisHandler.DeleteAnalysis)

	api.POST("/analysis/:videoId/quizzes/:index/grade", rt.studyHandler.GradeQuiz)
	api.GET("/analysis/:videoId/timestamps", rt.studyHandler.SearchTimestamps)
	api.GET("/analysis/:videoId/export", rt.studyHandler.ExportNotes)
	api.POST("/generate-flashcards", rt.studyHandler.GenerateFlashcards)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"services": []string{"youtube", "ai", "quiz"},
	})
}
