package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// AnalysisRepository handles video analysis persistence
type AnalysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save stores or replaces the analysis for a video. Re-analyzing replaces
// the whole row.
func (r *AnalysisRepository) Save(ctx context.Context, analysis *entities.VideoAnalysis) error {
	if analysis == nil {
		return errors.New("analysis cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}},
			UpdateAll: true,
		}).
		Create(analysis).Error
}

// GetByVideoID retrieves a stored analysis, nil when absent
func (r *AnalysisRepository) GetByVideoID(ctx context.Context, videoID string) (*entities.VideoAnalysis, error) {
	var analysis entities.VideoAnalysis
	if err := r.db.WithContext(ctx).Where("video_id = ?", videoID).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &analysis, nil
}

// ListRecent returns the most recently created analyses
func (r *AnalysisRepository) ListRecent(ctx context.Context, limit int) ([]*entities.VideoAnalysis, error) {
	if limit <= 0 {
		limit = 20
	}
	var analyses []*entities.VideoAnalysis
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error; err != nil {
		return nil, err
	}
	return analyses, nil
}

// Delete removes a stored analysis
func (r *AnalysisRepository) Delete(ctx context.Context, videoID string) error {
	return r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&entities.VideoAnalysis{}).Error
}
