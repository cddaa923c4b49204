package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of an async analysis job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"    // Queued, waiting for a worker
	JobStatusProcessing JobStatus = "processing" // Pipeline running
	JobStatusCompleted  JobStatus = "completed"  // Analysis stored
	JobStatusFailed     JobStatus = "failed"     // Pipeline failed after retries
	JobStatusCancelled  JobStatus = "cancelled"  // Job was cancelled
)

// AnalysisJob tracks one async run of the analysis pipeline for a video.
type AnalysisJob struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VideoID      string    `json:"video_id" gorm:"type:varchar(20);not null;index"`
	URL          string    `json:"url" gorm:"type:text;not null"`
	SummaryDepth string    `json:"summary_depth" gorm:"type:varchar(20);not null;default:'medium'"`
	Status       JobStatus `json:"status" gorm:"type:varchar(20);not null;index;default:'pending'"`
	Progress     int       `json:"progress" gorm:"type:integer;default:0"` // 0-100

	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
	RetryCount  int        `json:"retry_count" gorm:"type:integer;default:0"`
	MaxRetries  int        `json:"max_retries" gorm:"type:integer;default:3"`
	LastError   *string    `json:"last_error,omitempty" gorm:"type:text"`

	Metadata JobMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for AnalysisJob
func (AnalysisJob) TableName() string {
	return "analysis_jobs"
}

// JobMetadata stores additional metadata for analysis jobs
type JobMetadata struct {
	DurationSeconds  int    `json:"duration_seconds,omitempty"`
	Language         string `json:"language,omitempty"`
	WordCount        int    `json:"word_count,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms,omitempty"`
	Degraded         bool   `json:"degraded,omitempty"`
}

// Scan implements sql.Scanner interface for GORM
func (m *JobMetadata) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &m)
}

// Value implements driver.Valuer interface for GORM
func (m JobMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// NewAnalysisJob creates a pending job for a video URL.
func NewAnalysisJob(videoID, url, summaryDepth string) *AnalysisJob {
	if summaryDepth == "" {
		summaryDepth = SummaryDepthMedium
	}
	return &AnalysisJob{
		ID:           uuid.New(),
		VideoID:      videoID,
		URL:          url,
		SummaryDepth: summaryDepth,
		Status:       JobStatusPending,
		MaxRetries:   3,
	}
}

// MarkProcessing transitions the job to processing and stamps the start time.
func (j *AnalysisJob) MarkProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.StartedAt = &now
	j.Progress = 10
}

// MarkCompleted transitions the job to completed.
func (j *AnalysisJob) MarkCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.Progress = 100
}

// MarkFailed records the failure and transitions to failed.
func (j *AnalysisJob) MarkFailed(err error) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	if err != nil {
		msg := err.Error()
		j.LastError = &msg
	}
}

// CanRetry reports whether the job has retry budget left.
func (j *AnalysisJob) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}
