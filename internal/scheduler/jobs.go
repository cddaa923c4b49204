package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	domainrepo "github.com/studybuddy-team/study-buddy/internal/domain/repositories"
)

const (
	sweepTimeout = time.Minute

	// pendingGrace keeps the sweep away from jobs that were created or
	// retried moments ago: those are already on the queue (or about to be
	// via the retry timer), and requeueing them would double-run the claim.
	pendingGrace = time.Minute
)

// RequeueJob implements cron.Job. It rescues analysis jobs that lost their
// worker: jobs stuck in processing past the stale cutoff are reset to
// pending, and pending jobs that never made it onto the queue (queue was
// full at submit time) are pushed again.
type RequeueJob struct {
	requeuer   Requeuer
	jobs       domainrepo.JobRepository
	staleAfter time.Duration
	logger     *zap.Logger
}

// Run performs one requeue sweep.
func (j *RequeueJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	rescued := j.rescueStale(ctx)
	requeued := j.requeuePending(ctx)

	if rescued > 0 || requeued > 0 {
		j.logger.Info("🔄 Requeue sweep finished",
			zap.Int("stale_rescued", rescued),
			zap.Int("pending_requeued", requeued),
		)
	}
}

func (j *RequeueJob) rescueStale(ctx context.Context) int {
	cutoff := time.Now().Add(-j.staleAfter)
	stale, err := j.jobs.ListStale(ctx, cutoff)
	if err != nil {
		j.logger.Error("stale job listing failed", zap.Error(err))
		return 0
	}

	rescued := 0
	for _, job := range stale {
		job.Status = entities.JobStatusPending
		job.StartedAt = nil
		if err := j.jobs.Update(ctx, job); err != nil {
			j.logger.Error("failed to reset stale job",
				zap.String("job_id", job.ID.String()), zap.Error(err))
			continue
		}
		if !j.requeuer.Requeue(job) {
			// Queue still full, the next sweep picks it up as pending.
			continue
		}
		rescued++
	}
	return rescued
}

func (j *RequeueJob) requeuePending(ctx context.Context) int {
	pending, err := j.jobs.ListByStatus(ctx, entities.JobStatusPending, 50)
	if err != nil {
		j.logger.Error("pending job listing failed", zap.Error(err))
		return 0
	}

	cutoff := time.Now().Add(-pendingGrace)
	requeued := 0
	for _, job := range pending {
		if job.UpdatedAt.After(cutoff) {
			continue
		}
		if j.requeuer.Requeue(job) {
			requeued++
		}
	}
	return requeued
}

// PurgeJob implements cron.Job. It evicts expired entries from the in-memory
// cache store.
type PurgeJob struct {
	purger Purger
	logger *zap.Logger
}

// Run performs one purge pass.
func (j *PurgeJob) Run() {
	if n := j.purger.PurgeExpired(); n > 0 {
		j.logger.Info("cache purge finished", zap.Int("evicted", n))
	}
}
