package study

import (
	"math"

	"github.com/studybuddy-team/study-buddy/internal/domain/entities"
)

// NotAnswered is the sentinel recorded for questions with no answer mapping.
const NotAnswered = "Not answered"

// QuestionFeedback compares one answer against the correct option.
type QuestionFeedback struct {
	QuestionIndex int    `json:"question_index"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation"`
}

// QuizResult is the derived outcome of grading one quiz. It is never
// persisted; callers recompute it from the quiz and the answer mapping.
type QuizResult struct {
	TotalQuestions  int                `json:"total_questions"`
	CorrectAnswers  int                `json:"correct_answers"`
	ScorePercentage int                `json:"score_percentage"`
	Feedback        []QuestionFeedback `json:"feedback"`
}

// Grade scores a quiz against a sparse answer mapping (question index to
// chosen option). A missing entry is graded as NotAnswered and is never
// correct. Comparison is exact string equality. The mapping may be partial;
// the UI gates submission on completeness but other callers are not required
// to. Pure function of its inputs.
func Grade(questions []entities.Question, answers map[int]string) QuizResult {
	result := QuizResult{
		TotalQuestions: len(questions),
		Feedback:       make([]QuestionFeedback, 0, len(questions)),
	}

	for i, q := range questions {
		userAnswer, ok := answers[i]
		if !ok {
			userAnswer = NotAnswered
		}
		isCorrect := ok && userAnswer == q.CorrectAnswer
		if isCorrect {
			result.CorrectAnswers++
		}
		result.Feedback = append(result.Feedback, QuestionFeedback{
			QuestionIndex: i,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
			Explanation:   q.Explanation,
		})
	}

	result.ScorePercentage = scorePercentage(result.CorrectAnswers, result.TotalQuestions)
	return result
}

// scorePercentage rounds half-up; an empty quiz scores 0 rather than
// dividing by zero.
func scorePercentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}
