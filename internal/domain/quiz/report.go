package quiz

import (
	"fmt"
	"regexp"
)

// ReportItem joins one grading detail back to its full question.
type ReportItem struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	UserAnswer    string       `json:"userAnswer"`
	Correct       bool         `json:"correct"`
	Difficulty    Difficulty   `json:"difficulty"`
	TimeMs        int64        `json:"timeMs"`
	Explanation   string       `json:"explanation"`
	Topic         string       `json:"topic"`
}

// Report is the detailed, human-readable join of a result and its quiz.
type Report struct {
	QuizID    string       `json:"quizId"`
	Topic     string       `json:"topic"`
	Score     int          `json:"score"`
	Total     int          `json:"total"`
	AvgTimeMs int64        `json:"avgTimeMs"`
	Items     []ReportItem `json:"items"`
	Advice    []string     `json:"advice"`
}

// BuildReport joins each detail of the result to its question in the quiz and
// derives study advice from the missed topics. The caller is responsible for
// making sure the result actually originated from this quiz.
func BuildReport(q *Quiz, r *Result) *Report {
	items := make([]ReportItem, 0, len(r.Details))
	for _, d := range r.Details {
		item := ReportItem{
			ID:          d.QuestionID,
			Type:        TypeMultipleChoice,
			Options:     []string{},
			Difficulty:  DifficultyEasy,
			Topic:       r.Topic,
			UserAnswer:  d.UserAnswer,
			Correct:     d.Correct,
			TimeMs:      d.TimeMs,
			Explanation: d.Explanation,
		}
		if question := q.Question(d.QuestionID); question != nil {
			item.Type = question.Type
			item.Question = question.Text
			if question.Options != nil {
				item.Options = question.Options
			}
			item.CorrectAnswer = question.Answer
			item.Difficulty = question.Difficulty
			item.Topic = question.Topic
		}
		items = append(items, item)
	}

	advice := make([]string, 0, len(r.Improvements))
	for _, imp := range r.Improvements {
		advice = append(advice, adviceForTopic(imp.Topic))
	}

	return &Report{
		QuizID:    q.ID,
		Topic:     q.Topic,
		Score:     r.Score,
		Total:     r.Total,
		AvgTimeMs: r.AvgTimeMs,
		Items:     items,
		Advice:    advice,
	}
}

// Known-subject patterns for tailored study tips. Topics matching none of
// them get the generic tip.
var (
	thermodynamicsRe = regexp.MustCompile(`(?i)thermodynamics`)
	integralsRe      = regexp.MustCompile(`(?i)integrals?`)
	photosynthesisRe = regexp.MustCompile(`(?i)photosynthesis`)
)

func adviceForTopic(topic string) string {
	switch {
	case thermodynamicsRe.MatchString(topic):
		return "Review energy, entropy, and state variables; solve problems on first/second law applications and cycles."
	case integralsRe.MatchString(topic):
		return "Practice definite/indefinite integrals, substitution, and parts; focus on interpreting area and accumulation."
	case photosynthesisRe.MatchString(topic):
		return "Revisit steps (light reactions, Calvin cycle) and limiting factors; connect to chlorophyll role and energy conversion."
	default:
		return fmt.Sprintf("Strengthen core concepts in %s with targeted exercises and examples.", topic)
	}
}
