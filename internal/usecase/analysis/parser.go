package analysis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
	"github.com/studybuddy-team/study-buddy/internal/usecase/study"
)

// Parser handles parsing and validation of Gemini responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseSummary parses a summary response. The prompt asks for the structured
// JSON shape; when the model answers with a plain paragraph instead, that
// paragraph becomes the clean_summary shape. Difficulty and reading time are
// filled in by the pipeline, not here.
func (p *Parser) ParseSummary(raw string) (entities.Summary, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return entities.Summary{}, fmt.Errorf("empty summary response")
	}

	var structured struct {
		Overview   string   `json:"overview"`
		KeyPoints  []string `json:"key_points"`
		MainTopics []string `json:"main_topics"`
	}
	if err := json.Unmarshal([]byte(cleaned), &structured); err == nil && structured.Overview != "" {
		return entities.Summary{
			Overview:   structured.Overview,
			KeyPoints:  normalizeStrings(structured.KeyPoints),
			MainTopics: normalizeStrings(structured.MainTopics),
		}, nil
	}

	// Plain paragraph answer
	if strings.HasPrefix(cleaned, "{") || strings.HasPrefix(cleaned, "[") {
		return entities.Summary{}, fmt.Errorf("summary response is malformed JSON")
	}
	return entities.Summary{CleanSummary: cleaned}, nil
}

// ParseDifficulty normalizes a difficulty classification answer, defaulting
// to intermediate on anything unexpected.
func (p *Parser) ParseDifficulty(raw string) string {
	difficulty := strings.ToLower(strings.TrimSpace(extractJSON(raw)))
	difficulty = strings.Trim(difficulty, `."'`)
	switch difficulty {
	case entities.DifficultyBeginner, entities.DifficultyIntermediate, entities.DifficultyAdvanced:
		return difficulty
	}
	return entities.DifficultyIntermediate
}

// topicJSON is the timestamp prompt's answer element.
type topicJSON struct {
	Title       string   `json:"title"`
	StartTime   float64  `json:"start_time"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// ParseTimestamps parses the topic array into timestamp entries, sorted by
// ascending offset. Topics without a title are dropped.
func (p *Parser) ParseTimestamps(raw string) ([]entities.TimestampEntry, error) {
	cleaned := extractJSON(raw)

	var topics []topicJSON
	if err := json.Unmarshal([]byte(cleaned), &topics); err != nil {
		return nil, fmt.Errorf("failed to parse timestamps response: %w", err)
	}

	entries := make([]entities.TimestampEntry, 0, len(topics))
	for _, topic := range topics {
		if strings.TrimSpace(topic.Title) == "" {
			continue
		}
		seconds := int(topic.StartTime)
		if seconds < 0 {
			seconds = 0
		}
		entries = append(entries, entities.TimestampEntry{
			Time:        study.FormatTime(seconds),
			Seconds:     seconds,
			Topic:       strings.TrimSpace(topic.Title),
			Description: strings.TrimSpace(topic.Description),
			Keywords:    normalizeStrings(topic.Keywords),
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no usable topics in timestamps response")
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Seconds < entries[j].Seconds
	})
	return entries, nil
}

// ParseQuiz parses a quiz response and enforces the answer invariant:
// correct_answer must equal one of the options by string identity. Questions
// violating it are dropped; a quiz with no surviving questions is an error.
func (p *Parser) ParseQuiz(raw string) (*entities.Quiz, error) {
	cleaned := extractJSON(raw)

	var quiz entities.Quiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, fmt.Errorf("failed to parse quiz response: %w", err)
	}

	kept := make([]entities.Question, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 {
			continue
		}
		if !q.HasValidAnswer() {
			continue
		}
		kept = append(kept, q)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("quiz has no valid questions")
	}

	quiz.Questions = kept
	quiz.TotalQuestions = len(kept)
	if quiz.Title == "" {
		quiz.Title = "Quiz"
	}
	if quiz.EstimatedTime <= 0 {
		quiz.EstimatedTime = len(kept) * 2
	}
	return &quiz, nil
}

// ParseFlashcards parses the flashcard array, dropping cards with an empty
// side.
func (p *Parser) ParseFlashcards(raw string) ([]entities.Flashcard, error) {
	cleaned := extractJSON(raw)

	var cards []entities.Flashcard
	if err := json.Unmarshal([]byte(cleaned), &cards); err != nil {
		return nil, fmt.Errorf("failed to parse flashcards response: %w", err)
	}

	kept := make([]entities.Flashcard, 0, len(cards))
	for _, card := range cards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			continue
		}
		kept = append(kept, card)
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("no usable flashcards in response")
	}
	return kept, nil
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

// normalizeStrings trims entries and drops empties, returning a non-nil slice.
func normalizeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
