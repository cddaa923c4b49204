package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// AnalysisCache stores serialized video analyses in a Store. It satisfies
// the analysis usecase's Cache interface.
type AnalysisCache struct {
	store Store
}

// NewAnalysisCache wraps a Store for analysis caching
func NewAnalysisCache(store Store) *AnalysisCache {
	return &AnalysisCache{store: store}
}

func analysisKey(videoID string) string {
	return "analysis:" + videoID
}

// GetAnalysis returns the cached analysis for a video, nil on a miss
func (c *AnalysisCache) GetAnalysis(ctx context.Context, videoID string) (*entities.VideoAnalysis, error) {
	raw, ok, err := c.store.Get(ctx, analysisKey(videoID))
	if err != nil || !ok {
		return nil, err
	}

	var analysis entities.VideoAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		// A corrupt entry is dropped rather than served.
		_ = c.store.Delete(ctx, analysisKey(videoID))
		return nil, fmt.Errorf("corrupt cache entry for %s: %w", videoID, err)
	}
	return &analysis, nil
}

// DeleteAnalysis evicts the cached analysis for a video
func (c *AnalysisCache) DeleteAnalysis(ctx context.Context, videoID string) error {
	return c.store.Delete(ctx, analysisKey(videoID))
}

// SetAnalysis caches an analysis with the given TTL
func (c *AnalysisCache) SetAnalysis(ctx context.Context, analysis *entities.VideoAnalysis, ttl time.Duration) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}
	return c.store.Set(ctx, analysisKey(analysis.VideoID), string(raw), ttl)
}
