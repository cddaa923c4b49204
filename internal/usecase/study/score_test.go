package study

import (
	"testing"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

func threeQuestions() []entities.Question {
	return []entities.Question{
		{Question: "Q1", Options: []string{"A", "B", "C"}, CorrectAnswer: "A", Explanation: "first"},
		{Question: "Q2", Options: []string{"A", "B", "C"}, CorrectAnswer: "B", Explanation: "second"},
		{Question: "Q3", Options: []string{"A", "B", "C"}, CorrectAnswer: "C", Explanation: "third"},
	}
}

func TestGrade_PartialAnswers(t *testing.T) {
	result := Grade(threeQuestions(), map[int]string{0: "A", 1: "B"})

	if result.TotalQuestions != 3 {
		t.Fatalf("expected 3 total questions, got %d", result.TotalQuestions)
	}
	if result.CorrectAnswers != 2 {
		t.Fatalf("expected 2 correct answers, got %d", result.CorrectAnswers)
	}
	if result.ScorePercentage != 67 {
		t.Fatalf("expected score 67, got %d", result.ScorePercentage)
	}

	fb := result.Feedback[2]
	if fb.UserAnswer != NotAnswered {
		t.Fatalf("expected sentinel %q for unanswered question, got %q", NotAnswered, fb.UserAnswer)
	}
	if fb.IsCorrect {
		t.Fatal("unanswered question must not be correct")
	}
	if fb.CorrectAnswer != "C" {
		t.Fatalf("expected correct answer C, got %q", fb.CorrectAnswer)
	}
}

func TestGrade_AllCorrect(t *testing.T) {
	result := Grade(threeQuestions(), map[int]string{0: "A", 1: "B", 2: "C"})
	if result.CorrectAnswers != 3 || result.ScorePercentage != 100 {
		t.Fatalf("expected 3/100, got %d/%d", result.CorrectAnswers, result.ScorePercentage)
	}
	for _, fb := range result.Feedback {
		if !fb.IsCorrect {
			t.Fatalf("question %d should be correct", fb.QuestionIndex)
		}
	}
}

func TestGrade_AllWrong(t *testing.T) {
	result := Grade(threeQuestions(), map[int]string{0: "B", 1: "C", 2: "A"})
	if result.CorrectAnswers != 0 || result.ScorePercentage != 0 {
		t.Fatalf("expected 0/0, got %d/%d", result.CorrectAnswers, result.ScorePercentage)
	}
}

func TestGrade_EmptyQuiz(t *testing.T) {
	result := Grade(nil, map[int]string{0: "A"})
	if result.ScorePercentage != 0 {
		t.Fatalf("empty quiz must score 0, got %d", result.ScorePercentage)
	}
	if result.TotalQuestions != 0 || len(result.Feedback) != 0 {
		t.Fatalf("empty quiz must produce empty result, got %+v", result)
	}
}

func TestGrade_ExactStringEquality(t *testing.T) {
	questions := []entities.Question{
		{Question: "Q", Options: []string{"A. Option 1", "B. Option 2"}, CorrectAnswer: "A. Option 1"},
	}

	// Case and whitespace differences are not equal.
	for _, answer := range []string{"a. option 1", "A. Option 1 ", " A. Option 1"} {
		result := Grade(questions, map[int]string{0: answer})
		if result.CorrectAnswers != 0 {
			t.Fatalf("answer %q must not match by identity", answer)
		}
	}

	result := Grade(questions, map[int]string{0: "A. Option 1"})
	if result.CorrectAnswers != 1 {
		t.Fatal("identical answer must match")
	}
}

func TestGrade_FeedbackPreservesOrder(t *testing.T) {
	result := Grade(threeQuestions(), map[int]string{2: "C"})
	for i, fb := range result.Feedback {
		if fb.QuestionIndex != i {
			t.Fatalf("feedback out of order at %d: %d", i, fb.QuestionIndex)
		}
	}
}

func TestGrade_RoundingHalfUp(t *testing.T) {
	cases := []struct {
		total   int
		correct int
		want    int
	}{
		{3, 2, 67},
		{3, 1, 33},
		{6, 1, 17},
		{8, 3, 38}, // 37.5 rounds up
		{7, 2, 29}, // 28.57
		{1, 0, 0},
		{1, 1, 100},
	}
	for _, tc := range cases {
		questions := make([]entities.Question, tc.total)
		answers := make(map[int]string)
		for i := range questions {
			questions[i] = entities.Question{Options: []string{"A", "B"}, CorrectAnswer: "A"}
			if i < tc.correct {
				answers[i] = "A"
			} else {
				answers[i] = "B"
			}
		}
		result := Grade(questions, answers)
		if result.ScorePercentage != tc.want {
			t.Fatalf("%d/%d: expected %d, got %d", tc.correct, tc.total, tc.want, result.ScorePercentage)
		}
		if result.ScorePercentage < 0 || result.ScorePercentage > 100 {
			t.Fatalf("score out of bounds: %d", result.ScorePercentage)
		}
	}
}
