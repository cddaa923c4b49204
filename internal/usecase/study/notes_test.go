package study

import (
	"strings"
	"testing"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

func sampleAnalysis() *entities.VideoAnalysis {
	return &entities.VideoAnalysis{
		VideoID:  "dQw4w9WgXcQ",
		Title:    "Intro to Machine Learning",
		Duration: 900,
		Summary: entities.Summary{
			Overview:             "A gentle introduction to ML concepts.",
			KeyPoints:            []string{"Supervised vs unsupervised", "Overfitting"},
			MainTopics:           []string{"Regression", "Classification"},
			DifficultyLevel:      entities.DifficultyBeginner,
			EstimatedReadingTime: 3,
		},
		Timestamps: []entities.TimestampEntry{
			{Time: "0:00", Seconds: 0, Topic: "Intro", Description: "What is ML"},
			{Time: "5:00", Seconds: 300, Topic: "Regression", Description: "Fitting lines"},
		},
	}
}

func TestNotesFileName(t *testing.T) {
	if got := NotesFileName("abc123", FormatMarkdown); got != "study-notes-abc123.md" {
		t.Fatalf("unexpected markdown name %q", got)
	}
	if got := NotesFileName("abc123", FormatText); got != "video-notes.txt" {
		t.Fatalf("unexpected text name %q", got)
	}
}

func TestRenderNotes_Markdown(t *testing.T) {
	out := RenderNotes(sampleAnalysis(), FormatMarkdown)

	for _, want := range []string{
		"# Study Notes: Intro to Machine Learning",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"A gentle introduction to ML concepts.",
		"- Supervised vs unsupervised",
		"- Regression",
		"**Difficulty:** beginner",
		"- **0:00** Intro - What is ML",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown notes missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "degraded") {
		t.Fatal("non-degraded analysis must not mention degraded mode")
	}
}

func TestRenderNotes_DegradedBanner(t *testing.T) {
	a := sampleAnalysis()
	a.Degraded = true
	a.DegradedReason = entities.DegradedReasonNoTranscript

	out := RenderNotes(a, FormatMarkdown)
	if !strings.Contains(out, "degraded mode (no transcript available)") {
		t.Fatalf("degraded analysis must carry the banner:\n%s", out)
	}
}

func TestRenderNotes_Text(t *testing.T) {
	out := RenderNotes(sampleAnalysis(), FormatText)

	for _, want := range []string{
		"Study Notes: Intro to Machine Learning",
		"SUMMARY",
		"KEY POINTS",
		"  [0:00] Intro - What is ML",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("text notes missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "##") {
		t.Fatal("text notes must not contain markdown headers")
	}
}

func TestRenderNotes_CleanSummaryVariant(t *testing.T) {
	a := sampleAnalysis()
	a.Summary = entities.Summary{
		CleanSummary:         "One clean paragraph about the video.",
		DifficultyLevel:      entities.DifficultyIntermediate,
		EstimatedReadingTime: 2,
	}

	out := RenderNotes(a, FormatMarkdown)
	if !strings.Contains(out, "One clean paragraph about the video.") {
		t.Fatalf("clean summary variant not rendered:\n%s", out)
	}
	if strings.Contains(out, "Key Points") {
		t.Fatal("clean summary variant must not render structured sections")
	}
}
