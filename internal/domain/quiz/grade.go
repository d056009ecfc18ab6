package quiz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vy1216/v4learnease/internal/id"
)

// Grade scores the submitted answers against the quiz.
//
// Answers referencing unknown question ids are skipped entirely: no score
// impact, no detail entry. Correctness is exact string equality after
// trimming whitespace on both sides, case-sensitive. Misses are counted per
// question topic in first-miss order.
func Grade(q *Quiz, answers []SubmittedAnswer) *Result {
	score := 0
	var totalTime int64
	details := make([]Detail, 0, len(answers))

	missCounts := make(map[string]int)
	var missOrder []string

	for _, a := range answers {
		question := q.Question(a.QuestionID)
		if question == nil {
			continue
		}
		correct := strings.TrimSpace(a.Answer) == strings.TrimSpace(question.Answer)
		if correct {
			score++
		} else {
			if _, seen := missCounts[question.Topic]; !seen {
				missOrder = append(missOrder, question.Topic)
			}
			missCounts[question.Topic]++
		}
		timeMs := a.TimeMs
		if timeMs < 0 {
			timeMs = 0
		}
		totalTime += timeMs
		details = append(details, Detail{
			QuestionID:  question.ID,
			Correct:     correct,
			TimeMs:      timeMs,
			UserAnswer:  a.Answer,
			Explanation: Explain(question, correct, a.Answer),
		})
	}

	improvements := make([]Improvement, 0, len(missOrder))
	for _, topic := range missOrder {
		improvements = append(improvements, Improvement{Topic: topic, Count: missCounts[topic]})
	}

	var avgTime int64
	if len(details) > 0 {
		avgTime = int64(math.Round(float64(totalTime) / float64(len(details))))
	}

	return &Result{
		ID:           id.New("qr"),
		QuizID:       q.ID,
		Topic:        q.Topic,
		Score:        score,
		Total:        len(q.Questions),
		Improvements: improvements,
		AvgTimeMs:    avgTime,
		Details:      details,
		CreatedAt:    time.Now().UTC(),
	}
}

// Explain synthesizes a two-sentence explanation for a graded question: a
// type-specific sentence about the expected answer, then either an alignment
// note or a note quoting the submitted answer.
func Explain(q *Question, correct bool, userAnswer string) string {
	var base string
	switch q.Type {
	case TypeMultipleChoice:
		base = fmt.Sprintf("The correct choice reflects a core idea in %s.", q.Topic)
	case TypeTrueFalse:
		base = fmt.Sprintf("This is %s based on %s principles.", strings.ToLower(q.Answer), q.Topic)
	default:
		base = fmt.Sprintf("A concise definition for %s is expected here.", q.Topic)
	}

	var why string
	if correct {
		why = fmt.Sprintf("It aligns with %s fundamentals and typical examples.", q.Topic)
	} else {
		why = fmt.Sprintf("Your answer (%s) misses the %s principle captured by the correct answer.", userAnswer, q.Topic)
	}
	return base + " " + why
}
