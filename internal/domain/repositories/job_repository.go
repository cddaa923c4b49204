package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// JobRepository defines persistence operations for async analysis jobs
type JobRepository interface {
	// Create stores a new job
	Create(ctx context.Context, job *entities.AnalysisJob) error

	// GetByID retrieves a job, nil when absent
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AnalysisJob, error)

	// Update persists job state changes
	Update(ctx context.Context, job *entities.AnalysisJob) error

	// TryClaim atomically transitions a pending job to processing. False
	// means another worker already holds the job.
	TryClaim(ctx context.Context, id uuid.UUID) (bool, error)

	// ListStale returns jobs stuck in processing since before the cutoff
	ListStale(ctx context.Context, cutoff time.Time) ([]*entities.AnalysisJob, error)

	// ListByStatus returns jobs in the given status, oldest first
	ListByStatus(ctx context.Context, status entities.JobStatus, limit int) ([]*entities.AnalysisJob, error)
}
