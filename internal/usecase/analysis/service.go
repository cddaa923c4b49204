package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	errs "github.com/studybuddy-team/study-buddy/errors"
	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	domainrepo "github.com/studybuddy-team/study-buddy/internal/domain/repositories"
	"github.com/studybuddy-team/study-buddy/internal/usecase/study"
	pkgai "github.com/studybuddy-team/study-buddy/pkg/ai"
	"github.com/studybuddy-team/study-buddy/pkg/config"
	"github.com/studybuddy-team/study-buddy/pkg/jobcontext"
)

// Generator produces model completions. *ai.GeminiClient satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// VideoSource provides video metadata and caption transcripts.
// *ai.YouTubeClient satisfies it.
type VideoSource interface {
	GetVideoInfo(ctx context.Context, videoID string) (*pkgai.VideoInfo, error)
	GetTranscript(ctx context.Context, videoID string) (*entities.Transcript, error)
}

// Cache is the subset of the cache store the pipeline uses. Implementations
// return (nil, nil) on a miss.
type Cache interface {
	GetAnalysis(ctx context.Context, videoID string) (*entities.VideoAnalysis, error)
	SetAnalysis(ctx context.Context, analysis *entities.VideoAnalysis, ttl time.Duration) error
	DeleteAnalysis(ctx context.Context, videoID string) error
}

// Service orchestrates the analysis pipeline: transcript fetch, Gemini
// generation with per-stage fallbacks, persistence, and the derived study
// operations (grading, timestamp search, note export, flashcards).
type Service struct {
	analysisRepo domainrepo.AnalysisRepository
	jobRepo      domainrepo.JobRepository
	generator    Generator
	videos       VideoSource
	cache        Cache
	parser       *Parser
	cfg          *config.Config
	logger       *zap.Logger

	jobQueue            chan uuid.UUID
	workerStopChan      chan struct{}
	workerWg            sync.WaitGroup
	workerMutex         sync.Mutex
	isWorkerPoolRunning bool
}

// NewService wires the analysis service.
func NewService(
	analysisRepo domainrepo.AnalysisRepository,
	jobRepo domainrepo.JobRepository,
	generator Generator,
	videos VideoSource,
	cache Cache,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		analysisRepo:   analysisRepo,
		jobRepo:        jobRepo,
		generator:      generator,
		videos:         videos,
		cache:          cache,
		parser:         NewParser(),
		cfg:            cfg,
		logger:         logger,
		jobQueue:       make(chan uuid.UUID, 100),
		workerStopChan: make(chan struct{}),
	}
}

// Analyze runs the full pipeline synchronously and returns the stored
// analysis. Re-analyzing a video replaces its stored row.
func (s *Service) Analyze(ctx context.Context, url, summaryDepth string) (*entities.VideoAnalysis, error) {
	videoID, err := pkgai.ExtractVideoID(url)
	if err != nil {
		return nil, errs.ErrInvalidVideoURL(url)
	}
	return s.runPipeline(ctx, videoID, summaryDepth)
}

// GetAnalysis returns a stored analysis, checking the cache first.
func (s *Service) GetAnalysis(ctx context.Context, videoID string) (*entities.VideoAnalysis, error) {
	if cached, err := s.cache.GetAnalysis(ctx, videoID); err != nil {
		s.logger.Warn("cache lookup failed", zap.String("video_id", videoID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}

	analysis, err := s.analysisRepo.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, errs.ErrDBQueryFailed(err)
	}
	if analysis == nil {
		return nil, errs.ErrAnalysisNotFound(videoID)
	}

	if err := s.cache.SetAnalysis(ctx, analysis, s.cacheTTL()); err != nil {
		s.logger.Warn("cache store failed", zap.String("video_id", videoID), zap.Error(err))
	}
	return analysis, nil
}

// ListRecent returns the most recently stored analyses, newest first.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*entities.VideoAnalysis, error) {
	analyses, err := s.analysisRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errs.ErrDBQueryFailed(err)
	}
	return analyses, nil
}

// DeleteAnalysis removes a stored analysis and evicts its cache entry.
func (s *Service) DeleteAnalysis(ctx context.Context, videoID string) error {
	analysis, err := s.analysisRepo.GetByVideoID(ctx, videoID)
	if err != nil {
		return errs.ErrDBQueryFailed(err)
	}
	if analysis == nil {
		return errs.ErrAnalysisNotFound(videoID)
	}

	if err := s.analysisRepo.Delete(ctx, videoID); err != nil {
		return errs.ErrDBQueryFailed(err)
	}
	if err := s.cache.DeleteAnalysis(ctx, videoID); err != nil {
		s.logger.Warn("cache eviction failed", zap.String("video_id", videoID), zap.Error(err))
	}
	return nil
}

// StartAsync creates a pending analysis job and hands it to the worker pool.
func (s *Service) StartAsync(ctx context.Context, url, summaryDepth string) (*entities.AnalysisJob, error) {
	videoID, err := pkgai.ExtractVideoID(url)
	if err != nil {
		return nil, errs.ErrInvalidVideoURL(url)
	}

	job := entities.NewAnalysisJob(videoID, url, summaryDepth)
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, errs.ErrJobStartFailed(err)
	}

	select {
	case s.jobQueue <- job.ID:
	default:
		// Queue full: leave the job pending, the scheduler requeues it.
		s.logger.Warn("job queue full, job left pending",
			zap.String("job_id", job.ID.String()),
			zap.String("video_id", videoID),
		)
	}

	s.logger.Info("📋 Analysis job queued",
		zap.String("job_id", job.ID.String()),
		zap.String("video_id", videoID),
		zap.String("summary_depth", job.SummaryDepth),
	)
	return job, nil
}

// JobStatus returns the current state of an async job.
func (s *Service) JobStatus(ctx context.Context, jobID uuid.UUID) (*entities.AnalysisJob, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, errs.ErrDBQueryFailed(err)
	}
	if job == nil {
		return nil, errs.ErrJobNotFound(jobID.String())
	}
	return job, nil
}

// Requeue pushes an existing job back onto the worker queue. Used by the
// scheduler for jobs stuck in processing or stranded pending.
func (s *Service) Requeue(job *entities.AnalysisJob) bool {
	select {
	case s.jobQueue <- job.ID:
		return true
	default:
		return false
	}
}

// GenerateFlashcards builds revision cards from a transcript and summary.
func (s *Service) GenerateFlashcards(ctx context.Context, transcriptText, summaryText string) ([]entities.Flashcard, error) {
	prompt := buildFlashcardsPrompt(summaryText, truncateText(transcriptText, 2000))

	raw, err := s.generate(ctx, prompt)
	if err == nil {
		if cards, perr := s.parser.ParseFlashcards(raw); perr == nil {
			return cards, nil
		} else {
			err = perr
		}
	}
	s.logger.Warn("flashcard generation fell back", zap.Error(err))

	cards := FallbackFlashcards(entities.Summary{CleanSummary: summaryText})
	if len(cards) == 0 {
		return nil, errs.ErrAIFlashcardsFailed(err)
	}
	return cards, nil
}

// GradeQuiz grades the quiz at index for a stored analysis.
func (s *Service) GradeQuiz(ctx context.Context, videoID string, index int, answers map[int]string) (study.QuizResult, error) {
	analysis, err := s.GetAnalysis(ctx, videoID)
	if err != nil {
		return study.QuizResult{}, err
	}
	if index < 0 || index >= len(analysis.Quizzes) {
		return study.QuizResult{}, errs.ErrQuizNotFound(videoID, index)
	}
	return study.Grade(analysis.Quizzes[index].Questions, answers), nil
}

// SearchTimestamps filters a stored analysis's timestamps and returns the
// matches plus the full topic option list.
func (s *Service) SearchTimestamps(ctx context.Context, videoID, query, topic string) ([]entities.TimestampEntry, []string, error) {
	analysis, err := s.GetAnalysis(ctx, videoID)
	if err != nil {
		return nil, nil, err
	}
	matches := study.Filter(analysis.Timestamps, query, topic)
	return matches, study.TopicOptions(analysis.Timestamps), nil
}

// ExportNotes renders the downloadable notes for a stored analysis.
func (s *Service) ExportNotes(ctx context.Context, videoID, format string) (fileName, content string, err error) {
	if format != study.FormatMarkdown && format != study.FormatText {
		return "", "", errs.ErrExportBadFormat(format)
	}
	analysis, err := s.GetAnalysis(ctx, videoID)
	if err != nil {
		return "", "", err
	}
	return study.NotesFileName(videoID, format), study.RenderNotes(analysis, format), nil
}

// runPipeline executes the stages: metadata, transcript, summary,
// timestamps, quizzes, persist. Every generation stage has a fallback; only
// a missing transcript marks the analysis degraded.
func (s *Service) runPipeline(ctx context.Context, videoID, summaryDepth string) (*entities.VideoAnalysis, error) {
	start := time.Now()

	title := fmt.Sprintf("Video %s", videoID)
	channel := ""
	if info, err := s.videos.GetVideoInfo(ctx, videoID); err != nil {
		s.logger.Warn("video metadata unavailable", zap.String("video_id", videoID), zap.Error(err))
	} else {
		title = info.Title
		channel = info.Channel
	}

	transcript, degraded := s.fetchTranscript(ctx, videoID)
	excerpt := transcript.Truncate(s.transcriptCap())

	summary := s.generateSummary(ctx, transcript, excerpt, summaryDepth)
	timestamps := s.generateTimestamps(ctx, transcript)
	quizzes := s.generateQuizzes(ctx, transcript, summary)

	metadata, _ := json.Marshal(map[string]interface{}{
		"channel":    channel,
		"language":   transcript.Language,
		"word_count": transcript.WordCount,
	})

	analysis := &entities.VideoAnalysis{
		VideoID:          videoID,
		Title:            title,
		Duration:         transcript.DurationSeconds(),
		Summary:          summary,
		Timestamps:       timestamps,
		Quizzes:          quizzes,
		Transcript:       transcript.FullText,
		Degraded:         degraded,
		ModelUsed:        s.generator.ModelName(),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Metadata:         datatypes.JSON(metadata),
	}
	if degraded {
		analysis.DegradedReason = entities.DegradedReasonNoTranscript
	}

	if err := s.analysisRepo.Save(ctx, analysis); err != nil {
		return nil, errs.ErrDBQueryFailed(err)
	}
	if err := s.cache.SetAnalysis(ctx, analysis, s.cacheTTL()); err != nil {
		s.logger.Warn("cache store failed", zap.String("video_id", videoID), zap.Error(err))
	}

	s.logger.Info("✅ Analysis completed",
		zap.String("video_id", videoID),
		zap.Int("duration_seconds", analysis.Duration),
		zap.Int("timestamps", len(timestamps)),
		zap.Int("quizzes", len(quizzes)),
		zap.Bool("degraded", degraded),
		zap.Int64("processing_ms", analysis.ProcessingTimeMs),
	)
	return analysis, nil
}

// fetchTranscript returns the caption transcript, or the placeholder
// transcript with degraded=true when the video has no usable captions.
func (s *Service) fetchTranscript(ctx context.Context, videoID string) (*entities.Transcript, bool) {
	transcript, err := s.videos.GetTranscript(ctx, videoID)
	if err != nil {
		s.logger.Warn("transcript fetch failed, running degraded",
			zap.String("video_id", videoID), zap.Error(err))
		return MockTranscript(videoID), true
	}
	if transcript == nil || transcript.WordCount == 0 {
		s.logger.Warn("no captions available, running degraded",
			zap.String("video_id", videoID))
		return MockTranscript(videoID), true
	}
	return transcript, false
}

func (s *Service) generateSummary(ctx context.Context, transcript *entities.Transcript, excerpt, depth string) entities.Summary {
	raw, err := s.generate(ctx, buildSummaryPrompt(depth, excerpt))
	if err != nil {
		s.logger.Warn("summary generation failed, using fallback", zap.Error(err))
		return FallbackSummary(transcript)
	}

	summary, err := s.parser.ParseSummary(raw)
	if err != nil {
		s.logger.Warn("summary response unparseable, using fallback", zap.Error(err))
		return FallbackSummary(transcript)
	}

	summary.DifficultyLevel = s.classifyDifficulty(ctx, transcript)
	summary.EstimatedReadingTime = transcript.EstimatedReadingTime()
	return summary
}

func (s *Service) classifyDifficulty(ctx context.Context, transcript *entities.Transcript) string {
	raw, err := s.generate(ctx, buildDifficultyPrompt(transcript.Truncate(2000)))
	if err != nil {
		return entities.DifficultyIntermediate
	}
	return s.parser.ParseDifficulty(raw)
}

func (s *Service) generateTimestamps(ctx context.Context, transcript *entities.Transcript) []entities.TimestampEntry {
	chunks := buildTranscriptChunks(transcript, 1000)

	raw, err := s.generate(ctx, buildTimestampsPrompt(chunks))
	if err == nil {
		if entries, perr := s.parser.ParseTimestamps(raw); perr == nil {
			return entries
		} else {
			err = perr
		}
	}
	s.logger.Warn("timestamp generation fell back", zap.Error(err))
	return FallbackTimestamps(transcript)
}

func (s *Service) generateQuizzes(ctx context.Context, transcript *entities.Transcript, summary entities.Summary) []entities.Quiz {
	var quizzes []entities.Quiz

	raw, err := s.generate(ctx, buildComprehensiveQuizPrompt(summary.Text(), summary.DifficultyLevel, transcript.Truncate(3000)))
	if err == nil {
		if quiz, perr := s.parser.ParseQuiz(raw); perr == nil {
			quizzes = append(quizzes, *quiz)
		} else {
			err = perr
		}
	}
	if len(quizzes) == 0 {
		s.logger.Warn("comprehensive quiz fell back", zap.Error(err))
		quizzes = append(quizzes, *FallbackQuiz("Comprehensive Quiz", summary))
	}

	// The focused quiz is best effort: dropped silently when the model
	// cannot produce a valid one.
	raw, err = s.generate(ctx, buildFocusedQuizPrompt(summary.Text(), summary.DifficultyLevel, transcript.Truncate(2000)))
	if err == nil {
		if quiz, perr := s.parser.ParseQuiz(raw); perr == nil {
			quizzes = append(quizzes, *quiz)
		}
	}

	return quizzes
}

// generate wraps the model call with exponential backoff. The retry budget
// comes from config; transient upstream failures are the norm with free-tier
// model quotas.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	var out string
	op := func() error {
		resp, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		out = resp
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	retries := uint64(0)
	if s.cfg != nil && s.cfg.Gemini.MaxRetry > 0 {
		retries = uint64(s.cfg.Gemini.MaxRetry)
	}

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, retries), ctx)); err != nil {
		return "", err
	}
	return out, nil
}

// StartWorkerPool launches the async analysis workers.
func (s *Service) StartWorkerPool(workerCount int) {
	s.workerMutex.Lock()
	defer s.workerMutex.Unlock()

	if s.isWorkerPoolRunning {
		return
	}
	if workerCount < 1 {
		workerCount = 1
	}

	s.workerStopChan = make(chan struct{})
	for i := 0; i < workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.isWorkerPoolRunning = true

	s.logger.Info("👷 Analysis worker pool started", zap.Int("workers", workerCount))
}

// StopWorkerPool signals the workers to stop and waits for them.
func (s *Service) StopWorkerPool() {
	s.workerMutex.Lock()
	if !s.isWorkerPoolRunning {
		s.workerMutex.Unlock()
		return
	}
	close(s.workerStopChan)
	s.isWorkerPoolRunning = false
	s.workerMutex.Unlock()

	s.workerWg.Wait()
	s.logger.Info("👷 Analysis worker pool stopped")
}

func (s *Service) worker(workerID int) {
	defer s.workerWg.Done()

	for {
		select {
		case <-s.workerStopChan:
			return
		case jobID := <-s.jobQueue:
			s.processJob(context.Background(), jobID, workerID)
		}
	}
}

// processJob runs one queued job under a job-scoped timeout, with retry
// classification on failure.
func (s *Service) processJob(parent context.Context, jobID uuid.UUID, workerID int) {
	job, err := s.jobRepo.GetByID(parent, jobID)
	if err != nil || job == nil {
		s.logger.Warn("queued job not loadable", zap.String("job_id", jobID.String()), zap.Error(err))
		return
	}
	if job.Status != entities.JobStatusPending {
		return
	}

	ctx, cancel := jobcontext.JobBegin(parent, job.ID, job.VideoID, workerID, s.jobTimeout())
	defer cancel()

	// Claim the job with a status-guarded update so a duplicate queue entry
	// (retry timer plus scheduler sweep) runs the pipeline only once.
	claimed, err := s.jobRepo.TryClaim(ctx, job.ID)
	if err != nil {
		s.logger.Error("failed to claim job", zap.String("job_id", job.ID.String()), zap.Error(err))
		return
	}
	if !claimed {
		return
	}
	job.MarkProcessing()

	s.logger.Info("🔄 Processing analysis job",
		zap.String("job_id", job.ID.String()),
		zap.String("video_id", job.VideoID),
		zap.Int("worker_id", workerID),
		zap.Int("retry_count", job.RetryCount),
	)

	analysis, err := s.runPipeline(ctx, job.VideoID, job.SummaryDepth)
	if err != nil {
		s.failOrRetry(parent, job, err)
		return
	}

	job.MarkCompleted()
	job.Metadata = entities.JobMetadata{
		DurationSeconds:  analysis.Duration,
		ProcessingTimeMs: analysis.ProcessingTimeMs,
		Degraded:         analysis.Degraded,
	}
	if err := s.jobRepo.Update(parent, job); err != nil {
		s.logger.Error("failed to mark job completed", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

// failOrRetry requeues retryable failures while retry budget remains,
// otherwise marks the job failed.
func (s *Service) failOrRetry(ctx context.Context, job *entities.AnalysisJob, cause error) {
	if jobcontext.IsRetryableError(cause) && job.CanRetry() {
		job.RetryCount++
		job.Status = entities.JobStatusPending
		msg := cause.Error()
		job.LastError = &msg
		if err := s.jobRepo.Update(ctx, job); err != nil {
			s.logger.Error("failed to requeue job", zap.String("job_id", job.ID.String()), zap.Error(err))
			return
		}

		delay := jobcontext.CalculateBackoff(job.RetryCount, 5*time.Second)
		s.logger.Warn("⏳ Job failed, retrying",
			zap.String("job_id", job.ID.String()),
			zap.Int("retry_count", job.RetryCount),
			zap.Duration("backoff", delay),
			zap.Error(cause),
		)

		time.AfterFunc(delay, func() {
			if !s.Requeue(job) {
				s.logger.Warn("job queue full on retry, left pending",
					zap.String("job_id", job.ID.String()))
			}
		})
		return
	}

	job.MarkFailed(cause)
	if err := s.jobRepo.Update(ctx, job); err != nil {
		s.logger.Error("failed to mark job failed", zap.String("job_id", job.ID.String()), zap.Error(err))
	}
	s.logger.Error("❌ Analysis job failed",
		zap.String("job_id", job.ID.String()),
		zap.String("video_id", job.VideoID),
		zap.Error(cause),
	)
}

func (s *Service) cacheTTL() time.Duration {
	if s.cfg != nil && s.cfg.Analysis.CacheTTLMin > 0 {
		return time.Duration(s.cfg.Analysis.CacheTTLMin) * time.Minute
	}
	return time.Hour
}

func (s *Service) jobTimeout() time.Duration {
	if s.cfg != nil && s.cfg.Analysis.JobTimeoutMin > 0 {
		return time.Duration(s.cfg.Analysis.JobTimeoutMin) * time.Minute
	}
	return 5 * time.Minute
}

func (s *Service) transcriptCap() int {
	if s.cfg != nil && s.cfg.Analysis.TranscriptCap > 0 {
		return s.cfg.Analysis.TranscriptCap
	}
	return 4000
}

func truncateText(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	return strings.TrimSpace(text[:limit])
}
