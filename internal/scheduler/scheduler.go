package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	domainrepo "github.com/studybuddy-team/study-buddy/internal/domain/repositories"
	"github.com/studybuddy-team/study-buddy/pkg/config"
)

// Requeuer pushes a job back onto the analysis worker queue. The analysis
// service satisfies it.
type Requeuer interface {
	Requeue(job *entities.AnalysisJob) bool
}

// Purger evicts expired cache entries. The in-memory store satisfies it;
// Redis expires keys on its own, so the purge job is skipped there.
type Purger interface {
	PurgeExpired() int
}

// Scheduler runs the periodic maintenance jobs: requeueing stranded analysis
// jobs and purging the expired in-memory cache entries.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New registers the maintenance jobs from the cron specs in config.
// A nil purger skips the cache purge job.
func New(
	requeuer Requeuer,
	jobs domainrepo.JobRepository,
	purger Purger,
	cfg *config.Config,
	logger *zap.Logger,
) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cron.New()

	requeue := &RequeueJob{
		requeuer:   requeuer,
		jobs:       jobs,
		staleAfter: time.Duration(cfg.Scheduler.StaleAfterMin) * time.Minute,
		logger:     logger,
	}
	if _, err := c.AddJob(cfg.Scheduler.RequeueSpec, requeue); err != nil {
		return nil, err
	}

	if purger != nil {
		purge := &PurgeJob{purger: purger, logger: logger}
		if _, err := c.AddJob(cfg.Scheduler.PurgeSpec, purge); err != nil {
			return nil, err
		}
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the cron loop without blocking.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("📋 Maintenance scheduler started")
}

// Stop waits for running jobs to finish, up to a grace period.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
		s.logger.Info("📋 Maintenance scheduler stopped")
	case <-time.After(10 * time.Second):
		s.logger.Warn("scheduler stop timed out, jobs may still be running")
	}
}
