package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// JobRepository handles async analysis job persistence
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create stores a new job
func (r *JobRepository) Create(ctx context.Context, job *entities.AnalysisJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves a job, nil when absent
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisJob, error) {
	var job entities.AnalysisJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// Update persists job state changes
func (r *JobRepository) Update(ctx context.Context, job *entities.AnalysisJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.AnalysisJob{}).
		Where("id = ?", job.ID).
		Save(job).Error
}

// TryClaim atomically transitions a pending job to processing. The status
// guard in the WHERE clause makes the claim exclusive: a job queued twice is
// only ever run by the worker whose update hits first.
func (r *JobRepository) TryClaim(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.AnalysisJob{}).
		Where("id = ? AND status = ?", id, entities.JobStatusPending).
		Updates(map[string]interface{}{
			"status":     entities.JobStatusProcessing,
			"started_at": time.Now(),
			"progress":   10,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListStale returns jobs stuck in processing since before the cutoff
func (r *JobRepository) ListStale(ctx context.Context, cutoff time.Time) ([]*entities.AnalysisJob, error) {
	var jobs []*entities.AnalysisJob
	if err := r.db.WithContext(ctx).
		Where("status = ? AND started_at < ?", entities.JobStatusProcessing, cutoff).
		Order("started_at ASC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListByStatus returns jobs in the given status, oldest first
func (r *JobRepository) ListByStatus(ctx context.Context, status entities.JobStatus, limit int) ([]*entities.AnalysisJob, error) {
	if limit <= 0 {
		limit = 50
	}
	var jobs []*entities.AnalysisJob
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
