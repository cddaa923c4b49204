package analysis

import (
	"fmt"
	"strings"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	"github.com/studybuddy-team/study-buddy/internal/usecase/study"
)

// Fallbacks keep the pipeline producing usable study material when the model
// misbehaves. A run that leans on the mock transcript is tagged degraded; a
// run that only needed a stage fallback is not.

// MockTranscript stands in for videos without a caption track.
func MockTranscript(videoID string) *entities.Transcript {
	segments := []entities.TranscriptSegment{
		{Start: 0, End: 30, Text: "Welcome to this educational video about artificial intelligence and machine learning."},
		{Start: 30, End: 60, Text: "In this video, we will explore the fundamentals of AI and how it's transforming our world."},
		{Start: 60, End: 90, Text: "Machine learning is a subset of artificial intelligence that enables computers to learn without being explicitly programmed."},
		{Start: 90, End: 120, Text: "We'll discuss various applications including natural language processing, computer vision, and robotics."},
		{Start: 120, End: 150, Text: "This technology is revolutionizing industries from healthcare to transportation and beyond."},
	}
	return entities.NewTranscript(videoID, "en", segments)
}

// FallbackSummary is used when summary generation fails outright.
func FallbackSummary(t *entities.Transcript) entities.Summary {
	return entities.Summary{
		CleanSummary: "This video covers various topics discussed in the transcript. " +
			"The content appears to be educational in nature and provides information " +
			"on the subject matter covered throughout the video.",
		DifficultyLevel:      entities.DifficultyIntermediate,
		EstimatedReadingTime: t.EstimatedReadingTime(),
	}
}

// FallbackTimestamps splits the transcript into up to five even sections.
func FallbackTimestamps(t *entities.Transcript) []entities.TimestampEntry {
	if len(t.Segments) == 0 {
		return nil
	}

	chunkSize := len(t.Segments) / 5
	if chunkSize < 1 {
		chunkSize = 1
	}

	var entries []entities.TimestampEntry
	for i := 0; i < len(t.Segments); i += chunkSize {
		end := i + chunkSize
		if end > len(t.Segments) {
			end = len(t.Segments)
		}
		chunk := t.Segments[i:end]
		start := int(chunk[0].Start)
		last := int(chunk[len(chunk)-1].End)

		entries = append(entries, entities.TimestampEntry{
			Time:        study.FormatTime(start),
			Seconds:     start,
			Topic:       fmt.Sprintf("Section %d", i/chunkSize+1),
			Description: fmt.Sprintf("Content from %s to %s", study.FormatTime(start), study.FormatTime(last)),
			Keywords:    []string{"content", "section", "video"},
		})
	}
	return entries
}

// FallbackQuiz builds a basic quiz from the summary when quiz generation
// fails. One generic question per summary sentence, capped at five.
func FallbackQuiz(title string, summary entities.Summary) *entities.Quiz {
	count := len(summarySentences(summary, 5))
	if count == 0 {
		count = 1
	}

	questions := make([]entities.Question, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, entities.Question{
			Question: "What is the main focus of this content?",
			Options: []string{
				"A. Educational content",
				"B. Entertainment",
				"C. Technical documentation",
				"D. News report",
			},
			CorrectAnswer: "A. Educational content",
			Explanation:   "This question tests understanding of the video content",
			Difficulty:    "medium",
			Topic:         "General",
		})
	}

	return &entities.Quiz{
		Title:          title,
		Description:    "Basic quiz based on video content",
		Questions:      questions,
		TotalQuestions: len(questions),
		EstimatedTime:  len(questions) * 2,
	}
}

// FallbackFlashcards builds revision cards from the summary sentences.
func FallbackFlashcards(summary entities.Summary) []entities.Flashcard {
	var cards []entities.Flashcard
	for _, sentence := range summarySentences(summary, 10) {
		cards = append(cards, entities.Flashcard{
			Front: "What is the main topic of this video?",
			Back:  "Key concept: " + truncateRunes(sentence, 50) + "...",
		})
	}
	return cards
}

// summarySentences splits the summary prose into at most limit non-empty
// sentences.
func summarySentences(summary entities.Summary, limit int) []string {
	var sentences []string
	for _, s := range strings.Split(summary.Text(), ". ") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
		if len(sentences) == limit {
			break
		}
	}
	return sentences
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
