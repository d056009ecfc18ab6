// Package generator produces quizzes, preferring the LLM and degrading to a
// deterministic template when the LLM is unavailable or returns garbage.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vy1216/v4learnease/internal/domain/quiz"
	"github.com/vy1216/v4learnease/internal/id"
	"github.com/vy1216/v4learnease/internal/llm"
)

const (
	systemPrompt       = "You generate quizzes. Return strict JSON only."
	userPromptTemplate = `Create a 10-question quiz for topic: %s. Use types: mcq|tf|short. Include fields: type, question, options (for mcq/tf), answer, topic, difficulty (easy|medium|hard). Return JSON: {"questions":[...]}. Do not include explanations.`
)

// ParseError signals that the LLM responded but the response could not be
// turned into a full quiz. It is reported separately from transport failures
// (llm.CallError) so the two show up distinctly in logs.
type ParseError struct {
	Reason  string
	Wrapped error
}

func (e *ParseError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("quiz parse failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("quiz parse failed: %s", e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Wrapped
}

// Generator builds quizzes for a topic.
type Generator struct {
	llm    llm.ChatClient
	logger *slog.Logger
}

func New(client llm.ChatClient, logger *slog.Logger) *Generator {
	return &Generator{llm: client, logger: logger}
}

// Generate returns a quiz for the topic. A blank topic becomes the default.
// The LLM path is attempted only when a key is configured; any failure there
// is logged and swallowed, and the deterministic fallback is used instead,
// so Generate always succeeds.
func (g *Generator) Generate(ctx context.Context, topic string) *quiz.Quiz {
	if g.llm.Configured() {
		q, err := g.generateWithLLM(ctx, topic)
		if err == nil {
			return q
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			g.logger.Warn("llm quiz response unusable, falling back", "topic", topic, "error", err)
		} else {
			g.logger.Warn("llm quiz call failed, falling back", "topic", topic, "error", err)
		}
	}
	return Fallback(topic)
}

// llmQuestion mirrors the JSON shape requested from the LLM. Every field is
// re-validated before it is trusted.
type llmQuestion struct {
	Type       string   `json:"type"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
}

func (g *Generator) generateWithLLM(ctx context.Context, topic string) (*quiz.Quiz, error) {
	content, err := g.llm.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf(userPromptTemplate, topic)},
	}, llm.Options{Temperature: 0.2, MaxTokens: 2048})
	if err != nil {
		return nil, err
	}

	jsonStr := llm.ExtractJSON(content)
	if jsonStr == "" {
		return nil, &ParseError{Reason: "no JSON object found in response"}
	}

	var parsed struct {
		Questions []llmQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Wrapped: err}
	}

	quizID := id.New("quiz")
	questions := make([]quiz.Question, 0, quiz.QuestionCount)
	for _, raw := range parsed.Questions {
		if len(questions) == quiz.QuestionCount {
			break
		}
		q, ok := coerceQuestion(raw, quizID, topic, len(questions)+1)
		if !ok {
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) < quiz.QuestionCount {
		return nil, &ParseError{Reason: fmt.Sprintf("only %d valid questions", len(questions))}
	}

	return &quiz.Quiz{
		ID:        quizID,
		Topic:     topic,
		Questions: questions,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// coerceQuestion forces a raw LLM question into canonical shape: the type
// must be one of the recognized kinds, prompt and answer must be present,
// options are dropped for short-answer, and difficulty defaults by position
// when absent or invalid.
func coerceQuestion(raw llmQuestion, quizID, topic string, position int) (quiz.Question, bool) {
	qType, ok := quiz.ParseQuestionType(raw.Type)
	if !ok || raw.Question == "" || raw.Answer == "" {
		return quiz.Question{}, false
	}

	options := raw.Options
	if qType == quiz.TypeShortAnswer {
		options = nil
	}

	qTopic := raw.Topic
	if qTopic == "" {
		qTopic = topic
	}

	difficulty := quiz.Difficulty(raw.Difficulty)
	switch difficulty {
	case quiz.DifficultyEasy, quiz.DifficultyMedium, quiz.DifficultyHard:
	default:
		difficulty = quiz.DifficultyForPosition(position)
	}

	return quiz.Question{
		ID:         quiz.QuestionID(quizID, position),
		Type:       qType,
		Text:       raw.Question,
		Options:    options,
		Answer:     raw.Answer,
		Topic:      qTopic,
		Difficulty: difficulty,
	}, true
}
