package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	"github.com/studybuddy-team/study-buddy/pkg/config"
)

type recordingRequeuer struct {
	queued []uuid.UUID
	full   bool
}

func (r *recordingRequeuer) Requeue(job *entities.AnalysisJob) bool {
	if r.full {
		return false
	}
	r.queued = append(r.queued, job.ID)
	return true
}

type staticJobRepo struct {
	stale   []*entities.AnalysisJob
	pending []*entities.AnalysisJob
	updated []*entities.AnalysisJob
}

func (r *staticJobRepo) Create(_ context.Context, _ *entities.AnalysisJob) error { return nil }

func (r *staticJobRepo) GetByID(_ context.Context, _ uuid.UUID) (*entities.AnalysisJob, error) {
	return nil, nil
}

func (r *staticJobRepo) Update(_ context.Context, job *entities.AnalysisJob) error {
	r.updated = append(r.updated, job)
	return nil
}

func (r *staticJobRepo) TryClaim(_ context.Context, _ uuid.UUID) (bool, error) {
	return true, nil
}

func (r *staticJobRepo) ListStale(_ context.Context, _ time.Time) ([]*entities.AnalysisJob, error) {
	return r.stale, nil
}

func (r *staticJobRepo) ListByStatus(_ context.Context, _ entities.JobStatus, _ int) ([]*entities.AnalysisJob, error) {
	return r.pending, nil
}

type countingPurger struct {
	evicted int
	calls   int
}

func (p *countingPurger) PurgeExpired() int {
	p.calls++
	return p.evicted
}

func processingJob() *entities.AnalysisJob {
	job := entities.NewAnalysisJob("vid123abc00", "https://youtu.be/vid123abc00", "")
	job.MarkProcessing()
	return job
}

func TestRequeueJob_RescuesStale(t *testing.T) {
	stale := processingJob()
	repo := &staticJobRepo{stale: []*entities.AnalysisJob{stale}}
	requeuer := &recordingRequeuer{}

	job := &RequeueJob{requeuer: requeuer, jobs: repo, staleAfter: 15 * time.Minute, logger: zap.NewNop()}
	job.Run()

	if stale.Status != entities.JobStatusPending || stale.StartedAt != nil {
		t.Fatalf("stale job not reset: %s / %v", stale.Status, stale.StartedAt)
	}
	if len(repo.updated) != 1 {
		t.Fatalf("reset must be persisted, got %d updates", len(repo.updated))
	}
	if len(requeuer.queued) != 1 || requeuer.queued[0] != stale.ID {
		t.Fatalf("stale job not requeued: %v", requeuer.queued)
	}
}

func TestRequeueJob_PushesStrandedPending(t *testing.T) {
	pending := entities.NewAnalysisJob("vid123abc00", "https://youtu.be/vid123abc00", "")
	repo := &staticJobRepo{pending: []*entities.AnalysisJob{pending}}
	requeuer := &recordingRequeuer{}

	job := &RequeueJob{requeuer: requeuer, jobs: repo, staleAfter: 15 * time.Minute, logger: zap.NewNop()}
	job.Run()

	if len(requeuer.queued) != 1 {
		t.Fatalf("pending job not requeued: %v", requeuer.queued)
	}
	if len(repo.updated) != 0 {
		t.Fatal("pending jobs are requeued without state changes")
	}
}

func TestRequeueJob_SkipsFreshPending(t *testing.T) {
	fresh := entities.NewAnalysisJob("vid123abc00", "https://youtu.be/vid123abc00", "")
	fresh.UpdatedAt = time.Now()
	repo := &staticJobRepo{pending: []*entities.AnalysisJob{fresh}}
	requeuer := &recordingRequeuer{}

	job := &RequeueJob{requeuer: requeuer, jobs: repo, staleAfter: 15 * time.Minute, logger: zap.NewNop()}
	job.Run()

	if len(requeuer.queued) != 0 {
		t.Fatalf("a just-updated pending job is already queued, must not be pushed again: %v", requeuer.queued)
	}
}

func TestRequeueJob_FullQueueLeavesJobPending(t *testing.T) {
	stale := processingJob()
	repo := &staticJobRepo{stale: []*entities.AnalysisJob{stale}}
	requeuer := &recordingRequeuer{full: true}

	job := &RequeueJob{requeuer: requeuer, jobs: repo, staleAfter: 15 * time.Minute, logger: zap.NewNop()}
	job.Run()

	if stale.Status != entities.JobStatusPending {
		t.Fatalf("stale job must still be reset, got %s", stale.Status)
	}
	if len(requeuer.queued) != 0 {
		t.Fatalf("full queue must not accept jobs: %v", requeuer.queued)
	}
}

func TestPurgeJob(t *testing.T) {
	purger := &countingPurger{evicted: 3}

	job := &PurgeJob{purger: purger, logger: zap.NewNop()}
	job.Run()

	if purger.calls != 1 {
		t.Fatalf("purger must run once, got %d", purger.calls)
	}
}

func TestNew_RegistersJobs(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.RequeueSpec = "*/5 * * * *"
	cfg.Scheduler.PurgeSpec = "0 * * * *"
	cfg.Scheduler.StaleAfterMin = 15

	s, err := New(&recordingRequeuer{}, &staticJobRepo{}, &countingPurger{}, cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Start()
	s.Stop()
}

func TestNew_BadSpec(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scheduler.RequeueSpec = "not a cron spec"

	if _, err := New(&recordingRequeuer{}, &staticJobRepo{}, nil, cfg, nil); err == nil {
		t.Fatal("invalid cron spec must fail")
	}
}
