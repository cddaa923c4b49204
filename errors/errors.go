package errors

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is the custom error type for the application
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped error for errors.Is/As
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

// Video / transcript Errors

func ErrInvalidVideoURL(url string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_VIDEO_INVALID_URL,
		Message:  "Invalid YouTube URL",
	}.WithDetail("url", url)
}

func ErrVideoNotFound(videoID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_VIDEO_NOT_FOUND,
		Message:  "Video not found",
	}.WithDetail("video_id", videoID)
}

func ErrTranscriptUnavailable(videoID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_TRANSCRIPT_UNAVAILABLE,
		Message:  "No transcript available for this video",
	}.WithDetail("video_id", videoID)
}

func ErrTranscriptFetchFailed(videoID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPT_FETCH_FAILED,
		Message:  "Failed to fetch transcript",
	}.WithDetail("video_id", videoID)
}

func ErrTranscriptParseFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_TRANSCRIPT_PARSE_FAILED,
		Message:  "Failed to parse caption data",
	}
}

func ErrVideoMetadataFailed(videoID string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_VIDEO_METADATA_FAILED,
		Message:  "Failed to fetch video metadata",
	}.WithDetail("video_id", videoID)
}

func ErrAnalysisNotFound(videoID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_ANALYSIS_NOT_FOUND,
		Message:  "Analysis not found",
	}.WithDetail("video_id", videoID)
}

// AI Errors

func ErrAIAnalysisFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_ANALYSIS_FAILED,
		Message:  "AI analysis failed",
	}
}

func ErrAISummaryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_SUMMARY_FAILED,
		Message:  "Summary generation failed",
	}
}

func ErrAIQuizFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_QUIZ_FAILED,
		Message:  "Quiz generation failed",
	}
}

func ErrAIFlashcardsFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_AI_FLASHCARDS_FAILED,
		Message:  "Flashcard generation failed",
	}
}

func ErrAIServiceUnavailable(service string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_AI_SERVICE_UNAVAILABLE,
		Message:  fmt.Sprintf("AI service unavailable: %s", service),
	}
}

func ErrAIResponseUnparseable(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_AI_RESPONSE_UNPARSEABLE,
		Message:  "Could not parse model response",
	}
}

// Study operation Errors

func ErrQuizNotFound(videoID string, index int) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_QUIZ_NOT_FOUND,
		Message:  "Quiz not found",
	}.WithDetail("video_id", videoID).WithDetail("quiz_index", fmt.Sprintf("%d", index))
}

func ErrExportBadFormat(format string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EXPORT_BAD_FORMAT,
		Message:  fmt.Sprintf("Unsupported export format: %s", format),
	}
}

func ErrExportFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_EXPORT_FAILED,
		Message:  "Export failed",
	}
}

func ErrJobNotFound(jobID string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_JOB_NOT_FOUND,
		Message:  "Analysis job not found",
	}.WithDetail("job_id", jobID)
}

func ErrJobStartFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_JOB_START_FAILED,
		Message:  "Failed to start analysis job",
	}
}

// Infrastructure Errors

func ErrDBQueryFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_DB_QUERY_FAILED,
		Message:  "Database query failed",
	}
}

func ErrCacheFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CACHE_FAILED,
		Message:  "Cache operation failed",
	}.WithDetail("operation", operation)
}
