package analysis

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	errs "github.com/studybuddy-team/study-buddy/errors"
	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	"github.com/studybuddy-team/study-buddy/internal/usecase/study"
	pkgai "github.com/studybuddy-team/study-buddy/pkg/ai"
	"github.com/studybuddy-team/study-buddy/pkg/config"
)

const (
	stubSummaryJSON = `{
		"overview": "An introduction to Go programming.",
		"key_points": ["Static typing", "Goroutines"],
		"main_topics": ["Basics", "Concurrency"]
	}`
	stubTopicsJSON = `[
		{"title": "Loops", "start_time": 120, "description": "For loops", "keywords": ["loops"]},
		{"title": "Intro", "start_time": 0, "description": "Welcome", "keywords": ["intro"]}
	]`
	stubQuizJSON = `{
		"title": "Comprehensive Quiz",
		"description": "Test your understanding",
		"questions": [
			{"question": "What is Go?", "options": ["A. A language", "B. A bird"], "correct_answer": "A. A language", "explanation": "Go is a programming language."}
		],
		"total_questions": 1,
		"estimated_time": 2
	}`
	stubFocusedQuizJSON = `{
		"title": "Advanced Concepts Quiz",
		"description": "Deeper understanding",
		"questions": [
			{"question": "What runs goroutines?", "options": ["A. The scheduler", "B. The linker"], "correct_answer": "A. The scheduler", "explanation": "The runtime scheduler."}
		],
		"total_questions": 1,
		"estimated_time": 3
	}`
	stubCardsJSON = `[
		{"front": "What is a goroutine?", "back": "A lightweight thread managed by the Go runtime."}
	]`
)

type stubGenerator struct {
	fail bool

	mu           sync.Mutex
	pipelineRuns int
}

func (g *stubGenerator) ModelName() string { return "gemini-test" }

// PipelineRuns counts difficulty classifications, which happen exactly once
// per pipeline run.
func (g *stubGenerator) PipelineRuns() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pipelineRuns
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	if g.fail {
		return "", errors.New("model unavailable")
	}
	switch {
	case strings.Contains(prompt, "determine its difficulty level"):
		g.mu.Lock()
		g.pipelineRuns++
		g.mu.Unlock()
		return "advanced", nil
	case strings.Contains(prompt, "identify distinct topics"):
		return stubTopicsJSON, nil
	case strings.Contains(prompt, "comprehensive quiz"):
		return stubQuizJSON, nil
	case strings.Contains(prompt, "focused quiz"):
		return stubFocusedQuizJSON, nil
	case strings.Contains(prompt, "Create flashcards"):
		return stubCardsJSON, nil
	default:
		return stubSummaryJSON, nil
	}
}

type stubVideos struct {
	info       *pkgai.VideoInfo
	infoErr    error
	transcript *entities.Transcript
	trErr      error
}

func (v *stubVideos) GetVideoInfo(_ context.Context, videoID string) (*pkgai.VideoInfo, error) {
	if v.infoErr != nil {
		return nil, v.infoErr
	}
	if v.info != nil {
		return v.info, nil
	}
	return &pkgai.VideoInfo{VideoID: videoID, Title: "Intro to Go", Channel: "Go Channel"}, nil
}

func (v *stubVideos) GetTranscript(_ context.Context, _ string) (*entities.Transcript, error) {
	if v.trErr != nil {
		return nil, v.trErr
	}
	return v.transcript, nil
}

type memAnalysisRepo struct {
	mu    sync.Mutex
	items map[string]*entities.VideoAnalysis
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{items: make(map[string]*entities.VideoAnalysis)}
}

func (r *memAnalysisRepo) Save(_ context.Context, a *entities.VideoAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *a
	r.items[a.VideoID] = &cp
	return nil
}

func (r *memAnalysisRepo) GetByVideoID(_ context.Context, videoID string) (*entities.VideoAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.items[videoID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *memAnalysisRepo) ListRecent(_ context.Context, limit int) ([]*entities.VideoAnalysis, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.VideoAnalysis, 0, len(r.items))
	for _, a := range r.items {
		if len(out) == limit {
			break
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memAnalysisRepo) Delete(_ context.Context, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, videoID)
	return nil
}

type memJobRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entities.AnalysisJob
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{items: make(map[uuid.UUID]*entities.AnalysisJob)}
}

func (r *memJobRepo) Create(_ context.Context, job *entities.AnalysisJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.items[job.ID] = &cp
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.AnalysisJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if job, ok := r.items[id]; ok {
		cp := *job
		return &cp, nil
	}
	return nil, nil
}

func (r *memJobRepo) Update(_ context.Context, job *entities.AnalysisJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.items[job.ID] = &cp
	return nil
}

func (r *memJobRepo) TryClaim(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.items[id]
	if !ok || job.Status != entities.JobStatusPending {
		return false, nil
	}
	job.MarkProcessing()
	return true, nil
}

func (r *memJobRepo) ListStale(_ context.Context, _ time.Time) ([]*entities.AnalysisJob, error) {
	return nil, nil
}

func (r *memJobRepo) ListByStatus(_ context.Context, _ entities.JobStatus, _ int) ([]*entities.AnalysisJob, error) {
	return nil, nil
}

type memCache struct {
	mu    sync.Mutex
	items map[string]*entities.VideoAnalysis
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string]*entities.VideoAnalysis)}
}

func (c *memCache) GetAnalysis(_ context.Context, videoID string) (*entities.VideoAnalysis, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if a, ok := c.items[videoID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (c *memCache) SetAnalysis(_ context.Context, a *entities.VideoAnalysis, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *a
	c.items[a.VideoID] = &cp
	return nil
}

func (c *memCache) DeleteAnalysis(_ context.Context, videoID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, videoID)
	return nil
}

func goTranscript() *entities.Transcript {
	return entities.NewTranscript("vid123abc00", "en", []entities.TranscriptSegment{
		{Start: 0, End: 60, Text: "Welcome to this introduction to the Go programming language."},
		{Start: 60, End: 120, Text: "Go is statically typed and compiles to native code."},
		{Start: 120, End: 180, Text: "Goroutines make concurrent programming approachable."},
	})
}

type fixture struct {
	svc    *Service
	repo   *memAnalysisRepo
	jobs   *memJobRepo
	cache  *memCache
	gen    *stubGenerator
	videos *stubVideos
}

func newFixture() *fixture {
	f := &fixture{
		repo:   newMemAnalysisRepo(),
		jobs:   newMemJobRepo(),
		cache:  newMemCache(),
		gen:    &stubGenerator{},
		videos: &stubVideos{transcript: goTranscript()},
	}
	f.svc = NewService(f.repo, f.jobs, f.gen, f.videos, f.cache, &config.Config{}, nil)
	return f
}

func TestAnalyze_FullPipeline(t *testing.T) {
	f := newFixture()

	analysis, err := f.svc.Analyze(context.Background(), "https://www.youtube.com/watch?v=vid123abc00", entities.SummaryDepthMedium)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if analysis.VideoID != "vid123abc00" || analysis.Title != "Intro to Go" {
		t.Fatalf("unexpected identity: %q / %q", analysis.VideoID, analysis.Title)
	}
	if analysis.Degraded {
		t.Fatal("captioned video must not be degraded")
	}
	if !analysis.Summary.IsStructured() || analysis.Summary.Overview == "" {
		t.Fatalf("expected structured summary, got %+v", analysis.Summary)
	}
	if analysis.Summary.DifficultyLevel != entities.DifficultyAdvanced {
		t.Fatalf("difficulty classification not applied: %q", analysis.Summary.DifficultyLevel)
	}
	if analysis.Summary.EstimatedReadingTime < 1 {
		t.Fatalf("reading time must be at least 1, got %d", analysis.Summary.EstimatedReadingTime)
	}
	if len(analysis.Timestamps) != 2 || analysis.Timestamps[0].Topic != "Intro" {
		t.Fatalf("timestamps not parsed and sorted: %+v", analysis.Timestamps)
	}
	if len(analysis.Quizzes) != 2 {
		t.Fatalf("expected comprehensive + focused quizzes, got %d", len(analysis.Quizzes))
	}
	if analysis.Duration != 180 {
		t.Fatalf("duration should come from the transcript tail, got %d", analysis.Duration)
	}
	if analysis.ModelUsed != "gemini-test" {
		t.Fatalf("unexpected model tag %q", analysis.ModelUsed)
	}

	stored, _ := f.repo.GetByVideoID(context.Background(), "vid123abc00")
	if stored == nil {
		t.Fatal("analysis must be persisted")
	}
	cached, _ := f.cache.GetAnalysis(context.Background(), "vid123abc00")
	if cached == nil {
		t.Fatal("analysis must be cached")
	}
}

func TestAnalyze_InvalidURL(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Analyze(context.Background(), "https://vimeo.com/12345", "")
	var appErr errs.AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusBadRequest {
		t.Fatalf("expected 400 AppError, got %v", err)
	}
}

func TestAnalyze_DegradedWithFallbacks(t *testing.T) {
	f := newFixture()
	f.videos.transcript = nil // no captions
	f.gen.fail = true         // and the model is down

	analysis, err := f.svc.Analyze(context.Background(), "https://youtu.be/vid123abc00", entities.SummaryDepthShort)
	if err != nil {
		t.Fatalf("degraded analysis must still succeed: %v", err)
	}

	if !analysis.Degraded || analysis.DegradedReason != entities.DegradedReasonNoTranscript {
		t.Fatalf("degraded tagging wrong: %v / %q", analysis.Degraded, analysis.DegradedReason)
	}
	if analysis.Duration != 150 {
		t.Fatalf("expected placeholder transcript duration, got %d", analysis.Duration)
	}
	if analysis.Summary.IsStructured() {
		t.Fatal("fallback summary must use the clean shape")
	}
	if len(analysis.Timestamps) == 0 {
		t.Fatal("fallback timestamps missing")
	}
	if len(analysis.Quizzes) != 1 || analysis.Quizzes[0].Title != "Comprehensive Quiz" {
		t.Fatalf("expected the single fallback quiz, got %+v", analysis.Quizzes)
	}
}

func TestGetAnalysis_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetAnalysis(context.Background(), "missing00")
	var appErr errs.AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected 404 AppError, got %v", err)
	}
}

func TestListRecent(t *testing.T) {
	f := newFixture()
	seedAnalysis(t, f)

	analyses, err := f.svc.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(analyses) != 1 || analyses[0].VideoID != "vid123abc00" {
		t.Fatalf("unexpected listing: %+v", analyses)
	}
}

func TestDeleteAnalysis(t *testing.T) {
	f := newFixture()
	seedAnalysis(t, f)

	// Warm the cache so the delete has an entry to evict.
	if _, err := f.svc.GetAnalysis(context.Background(), "vid123abc00"); err != nil {
		t.Fatalf("GetAnalysis failed: %v", err)
	}

	if err := f.svc.DeleteAnalysis(context.Background(), "vid123abc00"); err != nil {
		t.Fatalf("DeleteAnalysis failed: %v", err)
	}

	if stored, _ := f.repo.GetByVideoID(context.Background(), "vid123abc00"); stored != nil {
		t.Fatal("analysis must be removed from the repository")
	}
	if cached, _ := f.cache.GetAnalysis(context.Background(), "vid123abc00"); cached != nil {
		t.Fatal("cache entry must be evicted with the row")
	}

	err := f.svc.DeleteAnalysis(context.Background(), "vid123abc00")
	var appErr errs.AppError
	if !errors.As(err, &appErr) || appErr.HTTPCode != http.StatusNotFound {
		t.Fatalf("expected 404 AppError for repeated delete, got %v", err)
	}
}

func TestGradeQuiz(t *testing.T) {
	f := newFixture()
	seedAnalysis(t, f)

	result, err := f.svc.GradeQuiz(context.Background(), "vid123abc00", 0, map[int]string{0: "A", 1: "B"})
	if err != nil {
		t.Fatalf("GradeQuiz failed: %v", err)
	}
	if result.CorrectAnswers != 2 || result.ScorePercentage != 67 {
		t.Fatalf("unexpected score: %+v", result)
	}
	if result.Feedback[2].UserAnswer != study.NotAnswered || result.Feedback[2].IsCorrect {
		t.Fatalf("missing answer must grade as not answered: %+v", result.Feedback[2])
	}

	if _, err := f.svc.GradeQuiz(context.Background(), "vid123abc00", 5, nil); err == nil {
		t.Fatal("out-of-range quiz index must fail")
	}
}

func TestSearchTimestamps(t *testing.T) {
	f := newFixture()
	seedAnalysis(t, f)

	matches, topics, err := f.svc.SearchTimestamps(context.Background(), "vid123abc00", "loop", study.TopicAll)
	if err != nil {
		t.Fatalf("SearchTimestamps failed: %v", err)
	}
	if len(matches) != 1 || matches[0].Topic != "Loops" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
	if len(topics) != 4 || topics[0] != study.TopicAll {
		t.Fatalf("unexpected topic options: %v", topics)
	}
}

func TestExportNotes(t *testing.T) {
	f := newFixture()
	seedAnalysis(t, f)

	name, content, err := f.svc.ExportNotes(context.Background(), "vid123abc00", study.FormatMarkdown)
	if err != nil {
		t.Fatalf("ExportNotes failed: %v", err)
	}
	if name != "study-notes-vid123abc00.md" {
		t.Fatalf("unexpected file name %q", name)
	}
	if !strings.Contains(content, "# Study Notes:") {
		t.Fatalf("markdown content missing header:\n%s", content)
	}

	if _, _, err := f.svc.ExportNotes(context.Background(), "vid123abc00", "pdf"); err == nil {
		t.Fatal("unsupported format must fail")
	}
}

func TestGenerateFlashcards(t *testing.T) {
	f := newFixture()

	cards, err := f.svc.GenerateFlashcards(context.Background(), "some transcript text", "A summary of the video.")
	if err != nil {
		t.Fatalf("GenerateFlashcards failed: %v", err)
	}
	if len(cards) != 1 || cards[0].Front == "" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
}

func TestGenerateFlashcards_Fallback(t *testing.T) {
	f := newFixture()
	f.gen.fail = true

	cards, err := f.svc.GenerateFlashcards(context.Background(), "transcript", "First idea. Second idea.")
	if err != nil {
		t.Fatalf("fallback flashcards expected, got error: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("expected one card per summary sentence, got %d", len(cards))
	}
}

func TestAsyncJobLifecycle(t *testing.T) {
	f := newFixture()
	f.svc.StartWorkerPool(1)
	defer f.svc.StopWorkerPool()

	job, err := f.svc.StartAsync(context.Background(), "https://www.youtube.com/watch?v=vid123abc00", entities.SummaryDepthShort)
	if err != nil {
		t.Fatalf("StartAsync failed: %v", err)
	}
	if job.Status != entities.JobStatusPending {
		t.Fatalf("new job must be pending, got %s", job.Status)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		current, err := f.svc.JobStatus(context.Background(), job.ID)
		if err != nil {
			t.Fatalf("JobStatus failed: %v", err)
		}
		if current.Status == entities.JobStatusCompleted {
			if current.Progress != 100 {
				t.Fatalf("completed job must report full progress, got %d", current.Progress)
			}
			break
		}
		if current.Status == entities.JobStatusFailed {
			t.Fatalf("job failed: %v", current.LastError)
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete in time, status %s", current.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := f.repo.GetByVideoID(context.Background(), "vid123abc00"); err != nil {
		t.Fatalf("analysis lookup failed: %v", err)
	}
	stored, _ := f.repo.GetByVideoID(context.Background(), "vid123abc00")
	if stored == nil {
		t.Fatal("async run must persist the analysis")
	}
}

func TestAsyncJob_DuplicateEnqueueRunsOnce(t *testing.T) {
	f := newFixture()
	f.svc.StartWorkerPool(2)
	defer f.svc.StopWorkerPool()

	job, err := f.svc.StartAsync(context.Background(), "https://www.youtube.com/watch?v=vid123abc00", entities.SummaryDepthMedium)
	if err != nil {
		t.Fatalf("StartAsync failed: %v", err)
	}
	// Same job on the queue twice; only one worker may claim it.
	if !f.svc.Requeue(job) {
		t.Fatal("Requeue must accept the duplicate")
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		current, err := f.svc.JobStatus(context.Background(), job.ID)
		if err != nil {
			t.Fatalf("JobStatus failed: %v", err)
		}
		if current.Status == entities.JobStatusCompleted {
			break
		}
		if current.Status == entities.JobStatusFailed {
			t.Fatalf("job failed: %v", current.LastError)
		}
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete in time, status %s", current.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if runs := f.gen.PipelineRuns(); runs != 1 {
		t.Fatalf("duplicate enqueue must not run the pipeline twice, got %d runs", runs)
	}
}

func seedAnalysis(t *testing.T, f *fixture) {
	t.Helper()

	analysis := &entities.VideoAnalysis{
		VideoID:  "vid123abc00",
		Title:    "Intro to Go",
		Duration: 180,
		Summary:  entities.Summary{CleanSummary: "A summary."},
		Timestamps: []entities.TimestampEntry{
			{Time: "0:00", Seconds: 0, Topic: "Intro", Description: "Welcome", Keywords: []string{"intro"}},
			{Time: "2:00", Seconds: 120, Topic: "Loops", Description: "For loops", Keywords: []string{"iteration"}},
			{Time: "4:00", Seconds: 240, Topic: "Functions", Description: "Defining functions", Keywords: []string{"funcs"}},
		},
		Quizzes: []entities.Quiz{{
			Title: "Quiz",
			Questions: []entities.Question{
				{Question: "Q1", Options: []string{"A", "B"}, CorrectAnswer: "A", Explanation: "a"},
				{Question: "Q2", Options: []string{"A", "B"}, CorrectAnswer: "B", Explanation: "b"},
				{Question: "Q3", Options: []string{"A", "B", "C"}, CorrectAnswer: "C", Explanation: "c"},
			},
			TotalQuestions: 3,
		}},
	}
	if err := f.repo.Save(context.Background(), analysis); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}
