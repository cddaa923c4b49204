package analysis

import (
	"time"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// AnalysisResponse is the stored analysis plus the derived media URLs.
type AnalysisResponse struct {
	*entities.VideoAnalysis
	ThumbnailURL string `json:"thumbnail_url"`
	WatchURL     string `json:"watch_url"`
}

// NewAnalysisResponse builds the response shape for an analysis
func NewAnalysisResponse(a *entities.VideoAnalysis) *AnalysisResponse {
	return &AnalysisResponse{
		VideoAnalysis: a,
		ThumbnailURL:  a.ThumbnailURL(),
		WatchURL:      a.WatchURL(),
	}
}

// AnalysisListResponse carries the recent-analyses listing.
type AnalysisListResponse struct {
	Analyses []*AnalysisResponse `json:"analyses"`
	Count    int                 `json:"count"`
}

// NewAnalysisListResponse builds the listing shape
func NewAnalysisListResponse(analyses []*entities.VideoAnalysis) *AnalysisListResponse {
	items := make([]*AnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, NewAnalysisResponse(a))
	}
	return &AnalysisListResponse{Analyses: items, Count: len(items)}
}

// JobResponse is the async job status shape.
type JobResponse struct {
	JobID        string     `json:"job_id"`
	VideoID      string     `json:"video_id"`
	Status       string     `json:"status"`
	Progress     int        `json:"progress"`
	SummaryDepth string     `json:"summary_depth"`
	RetryCount   int        `json:"retry_count"`
	LastError    *string    `json:"last_error,omitempty"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NewJobResponse builds the response shape for a job
func NewJobResponse(job *entities.AnalysisJob) *JobResponse {
	return &JobResponse{
		JobID:        job.ID.String(),
		VideoID:      job.VideoID,
		Status:       string(job.Status),
		Progress:     job.Progress,
		SummaryDepth: job.SummaryDepth,
		RetryCount:   job.RetryCount,
		LastError:    job.LastError,
		StartedAt:    job.StartedAt,
		CompletedAt:  job.CompletedAt,
		CreatedAt:    job.CreatedAt,
	}
}

// TimestampSearchResponse carries the filtered entries and the selector
// options the client renders.
type TimestampSearchResponse struct {
	VideoID string                    `json:"video_id"`
	Query   string                    `json:"query"`
	Topic   string                    `json:"topic"`
	Matches []entities.TimestampEntry `json:"matches"`
	Topics  []string                  `json:"topics"`
}

// FlashcardsResponse carries generated revision cards.
type FlashcardsResponse struct {
	Cards []entities.Flashcard `json:"cards"`
	Count int                  `json:"count"`
}
