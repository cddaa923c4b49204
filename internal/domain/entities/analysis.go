package entities

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DifficultyLevel classifies how demanding the source material is.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// SummaryDepth values accepted by the analyze endpoints.
const (
	SummaryDepthShort    = "short"
	SummaryDepthMedium   = "medium"
	SummaryDepthDetailed = "detailed"
)

// DegradedReasonNoTranscript tags analyses built from the placeholder
// transcript because the video had no captions.
const DegradedReasonNoTranscript = "no transcript available"

// Summary is the AI-generated summary of a video. Two mutually exclusive
// shapes exist: the structured form (overview, key points, main topics) and
// the single clean_summary paragraph. Exactly one is populated per analysis.
type Summary struct {
	Overview             string   `json:"overview,omitempty"`
	KeyPoints            []string `json:"key_points,omitempty"`
	MainTopics           []string `json:"main_topics,omitempty"`
	CleanSummary         string   `json:"clean_summary,omitempty"`
	DifficultyLevel      string   `json:"difficulty_level"`
	EstimatedReadingTime int      `json:"estimated_reading_time"` // minutes
}

// IsStructured reports whether the summary uses the structured shape rather
// than the single clean_summary paragraph.
func (s Summary) IsStructured() bool {
	return s.CleanSummary == ""
}

// Text returns the best prose rendering of the summary regardless of shape.
func (s Summary) Text() string {
	if s.CleanSummary != "" {
		return s.CleanSummary
	}
	return s.Overview
}

// TimestampEntry is one topic-tagged navigation point into the source video.
// The set is fixed per analysis; ordering by ascending Seconds is produced by
// the pipeline but not enforced here.
type TimestampEntry struct {
	Time        string   `json:"time"` // display form, "m:ss"
	Seconds     int      `json:"seconds"`
	Topic       string   `json:"topic"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Question is a single multiple-choice quiz question. CorrectAnswer must
// equal one element of Options by string identity; the response parser
// enforces this before a question is accepted.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty,omitempty"` // easy, medium, hard
	Topic         string   `json:"topic,omitempty"`
}

// HasValidAnswer reports whether CorrectAnswer matches one of Options exactly.
func (q Question) HasValidAnswer() bool {
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// Quiz is a titled group of questions generated for one video.
type Quiz struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	EstimatedTime  int        `json:"estimated_time"` // minutes
}

// Flashcard is a front/back revision card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// VideoAnalysis is the complete, persisted analysis of one video. It is
// immutable once stored; re-analyzing a video replaces the whole row.
// Summary, timestamps and quizzes are stored as JSONB.
type VideoAnalysis struct {
	VideoID          string           `json:"video_id" gorm:"type:varchar(20);primary_key"`
	Title            string           `json:"title" gorm:"type:text;not null"`
	Duration         int              `json:"duration" gorm:"type:integer;not null"` // seconds
	Summary          Summary          `json:"summary" gorm:"type:jsonb;serializer:json"`
	Timestamps       []TimestampEntry `json:"timestamps" gorm:"type:jsonb;serializer:json"`
	Quizzes          []Quiz           `json:"quizzes" gorm:"type:jsonb;serializer:json"`
	Transcript       string           `json:"transcript,omitempty" gorm:"type:text"`
	Degraded         bool             `json:"degraded" gorm:"type:boolean;not null;default:false"`
	DegradedReason   string           `json:"degraded_reason,omitempty" gorm:"type:text"`
	ModelUsed        string           `json:"model_used,omitempty" gorm:"type:varchar(50)"`
	ProcessingTimeMs int64            `json:"processing_time_ms,omitempty"`
	Metadata         datatypes.JSON   `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for VideoAnalysis
func (VideoAnalysis) TableName() string {
	return "video_analyses"
}

// ThumbnailURL returns the public thumbnail image URL for the video.
func (a *VideoAnalysis) ThumbnailURL() string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", a.VideoID)
}

// WatchURL returns the public watch link for the video.
func (a *VideoAnalysis) WatchURL() string {
	return WatchURL(a.VideoID)
}

// WatchURL builds the public watch link for a video id.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// WatchURLAt builds a watch link that starts playback at the given offset.
func WatchURLAt(videoID string, seconds int) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&t=%ds", videoID, seconds)
}
