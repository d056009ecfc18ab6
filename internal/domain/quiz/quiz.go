package quiz

import (
	"fmt"
	"time"
)

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "mcq"
	TypeTrueFalse      QuestionType = "tf"
	TypeShortAnswer    QuestionType = "short"
)

// ParseQuestionType maps a raw string to a known question type.
func ParseQuestionType(s string) (QuestionType, bool) {
	switch QuestionType(s) {
	case TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer:
		return QuestionType(s), true
	}
	return "", false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyForPosition assigns difficulty by 1-based question position:
// 1-4 easy, 5-8 medium, 9-10 hard.
func DifficultyForPosition(n int) Difficulty {
	switch {
	case n <= 4:
		return DifficultyEasy
	case n <= 8:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// QuestionCount is the fixed size of every quiz.
const QuestionCount = 10

// Question is immutable once its quiz has been created.
type Question struct {
	ID         string       `json:"id"`
	Type       QuestionType `json:"type"`
	Text       string       `json:"question"`
	Options    []string     `json:"options,omitempty"`
	Answer     string       `json:"answer"`
	Topic      string       `json:"topic"`
	Difficulty Difficulty   `json:"difficulty"`
}

// Quiz holds exactly QuestionCount questions and is never mutated after
// creation.
type Quiz struct {
	ID        string     `json:"id"`
	Topic     string     `json:"topic"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at"`
}

// QuestionID derives the id of the question at 1-based position n. Ids are
// unique within the quiz by construction.
func QuestionID(quizID string, n int) string {
	return fmt.Sprintf("%s_q%d", quizID, n)
}

// Question returns the question with the given id, or nil.
func (q *Quiz) Question(questionID string) *Question {
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			return &q.Questions[i]
		}
	}
	return nil
}

// SubmittedAnswer is what the caller supplies at grading time.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	TimeMs     int64  `json:"timeMs"`
}

// Improvement counts misses per topic.
type Improvement struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Detail is the per-question grading record inside a Result.
type Detail struct {
	QuestionID  string `json:"questionId"`
	Correct     bool   `json:"correct"`
	TimeMs      int64  `json:"timeMs"`
	UserAnswer  string `json:"userAnswer"`
	Explanation string `json:"explanation"`
}

// Result is append-only: created once per submission, never mutated.
type Result struct {
	ID           string        `json:"id"`
	QuizID       string        `json:"quizId"`
	Topic        string        `json:"topic"`
	Score        int           `json:"score"`
	Total        int           `json:"total"`
	Improvements []Improvement `json:"improvements"`
	AvgTimeMs    int64         `json:"avgTimeMs"`
	Details      []Detail      `json:"details"`
	CreatedAt    time.Time     `json:"created_at"`
}
