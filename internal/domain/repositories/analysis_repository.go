package repositories

import (
	"context"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// AnalysisRepository defines persistence operations for video analyses
type AnalysisRepository interface {
	// Save stores or replaces the analysis for a video
	Save(ctx context.Context, analysis *entities.VideoAnalysis) error

	// GetByVideoID retrieves a stored analysis, nil when absent
	GetByVideoID(ctx context.Context, videoID string) (*entities.VideoAnalysis, error)

	// ListRecent returns the most recently created analyses
	ListRecent(ctx context.Context, limit int) ([]*entities.VideoAnalysis, error)

	// Delete removes a stored analysis
	Delete(ctx context.Context, videoID string) error
}
