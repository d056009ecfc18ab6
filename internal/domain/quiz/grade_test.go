package quiz_test

import (
	"strings"
	"testing"

	"github.com/vy1216/v4learnease/internal/domain/quiz"
)

func buildQuiz(topic string) *quiz.Quiz {
	q := &quiz.Quiz{ID: "quiz_test", Topic: topic}
	for i := 1; i <= quiz.QuestionCount; i++ {
		q.Questions = append(q.Questions, quiz.Question{
			ID:         quiz.QuestionID(q.ID, i),
			Type:       quiz.TypeShortAnswer,
			Text:       "Question",
			Answer:     "Answer",
			Topic:      topic,
			Difficulty: quiz.DifficultyForPosition(i),
		})
	}
	return q
}

func allCorrectAnswers(q *quiz.Quiz) []quiz.SubmittedAnswer {
	var answers []quiz.SubmittedAnswer
	for _, question := range q.Questions {
		answers = append(answers, quiz.SubmittedAnswer{
			QuestionID: question.ID,
			Answer:     question.Answer,
			TimeMs:     1000,
		})
	}
	return answers
}

func TestGrade_AllCorrect(t *testing.T) {
	q := buildQuiz("Thermodynamics")
	result := quiz.Grade(q, allCorrectAnswers(q))

	if result.Score != 10 {
		t.Errorf("expected score 10, got %d", result.Score)
	}
	if result.Total != 10 {
		t.Errorf("expected total 10, got %d", result.Total)
	}
	if len(result.Improvements) != 0 {
		t.Errorf("expected no improvements, got %v", result.Improvements)
	}
	if result.AvgTimeMs != 1000 {
		t.Errorf("expected avg time 1000, got %d", result.AvgTimeMs)
	}
	if len(result.Details) != 10 {
		t.Fatalf("expected 10 details, got %d", len(result.Details))
	}
	for _, d := range result.Details {
		if !d.Correct {
			t.Errorf("expected detail %s to be correct", d.QuestionID)
		}
	}
}

func TestGrade_TrimsBeforeComparing(t *testing.T) {
	q := buildQuiz("Algebra")
	answers := []quiz.SubmittedAnswer{
		{QuestionID: q.Questions[0].ID, Answer: "  Answer \n"},
	}

	result := quiz.Grade(q, answers)
	if result.Score != 1 {
		t.Errorf("expected trimmed answer to count, score = %d", result.Score)
	}
}

func TestGrade_CaseSensitive(t *testing.T) {
	q := buildQuiz("Algebra")
	answers := []quiz.SubmittedAnswer{
		{QuestionID: q.Questions[0].ID, Answer: "answer"},
	}

	result := quiz.Grade(q, answers)
	if result.Score != 0 {
		t.Errorf("expected case mismatch to fail, score = %d", result.Score)
	}
}

func TestGrade_MissCountsTopic(t *testing.T) {
	q := buildQuiz("Calculus")
	answers := allCorrectAnswers(q)
	answers[3].Answer = "wrong"

	result := quiz.Grade(q, answers)
	if result.Score != 9 {
		t.Errorf("expected score 9, got %d", result.Score)
	}
	if len(result.Improvements) != 1 {
		t.Fatalf("expected 1 improvement, got %d", len(result.Improvements))
	}
	imp := result.Improvements[0]
	if imp.Topic != "Calculus" || imp.Count != 1 {
		t.Errorf("expected {Calculus 1}, got %+v", imp)
	}

	detail := result.Details[3]
	if detail.Correct {
		t.Error("expected detail to be incorrect")
	}
	if !strings.Contains(detail.Explanation, "Your answer (wrong)") {
		t.Errorf("expected explanation to quote the answer, got %q", detail.Explanation)
	}
}

func TestGrade_UnknownQuestionIDSkipped(t *testing.T) {
	q := buildQuiz("History")
	answers := []quiz.SubmittedAnswer{
		{QuestionID: "quiz_other_q1", Answer: "Answer", TimeMs: 5000},
	}

	result := quiz.Grade(q, answers)
	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
	if len(result.Details) != 0 {
		t.Errorf("expected no details, got %d", len(result.Details))
	}
	if len(result.Improvements) != 0 {
		t.Errorf("expected no improvements, got %v", result.Improvements)
	}
	if result.AvgTimeMs != 0 {
		t.Errorf("expected avg time 0 with no graded answers, got %d", result.AvgTimeMs)
	}
}

func TestGrade_AverageTimeRounded(t *testing.T) {
	q := buildQuiz("Physics")
	answers := []quiz.SubmittedAnswer{
		{QuestionID: q.Questions[0].ID, Answer: "Answer", TimeMs: 1000},
		{QuestionID: q.Questions[1].ID, Answer: "Answer", TimeMs: 1001},
	}

	result := quiz.Grade(q, answers)
	// 2001 / 2 = 1000.5 rounds up
	if result.AvgTimeMs != 1001 {
		t.Errorf("expected avg 1001, got %d", result.AvgTimeMs)
	}
}

func TestExplain_ByType(t *testing.T) {
	tests := []struct {
		qType quiz.QuestionType
		want  string
	}{
		{quiz.TypeMultipleChoice, "The correct choice reflects a core idea in Biology."},
		{quiz.TypeTrueFalse, "This is true based on Biology principles."},
		{quiz.TypeShortAnswer, "A concise definition for Biology is expected here."},
	}

	for _, tt := range tests {
		q := &quiz.Question{Type: tt.qType, Answer: "True", Topic: "Biology"}
		got := quiz.Explain(q, true, "True")
		if !strings.HasPrefix(got, tt.want) {
			t.Errorf("type %s: expected prefix %q, got %q", tt.qType, tt.want, got)
		}
		if !strings.Contains(got, "aligns with Biology fundamentals") {
			t.Errorf("type %s: expected alignment clause, got %q", tt.qType, got)
		}
	}
}
