package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/vy1216/v4learnease/internal/domain/chat"
	"github.com/vy1216/v4learnease/internal/domain/quiz"
	"github.com/vy1216/v4learnease/internal/generator"
	"github.com/vy1216/v4learnease/internal/store"
)

// Report lookups distinguish which entity was missing so the handler can say
// so in the 404 body.
var (
	ErrResultNotFound = errors.New("result not found")
	ErrQuizNotFound   = errors.New("quiz not found")
)

// QuizService owns the quiz lifecycle: generation, grading, reporting.
type QuizService struct {
	store  store.Store
	gen    *generator.Generator
	logger *slog.Logger
}

func NewQuizService(s store.Store, gen *generator.Generator, logger *slog.Logger) *QuizService {
	return &QuizService{store: s, gen: gen, logger: logger}
}

// Generate builds a quiz and saves it before returning. When no topic is
// supplied, one is derived from the request history, or failing that from the
// stored chat messages.
func (qs *QuizService) Generate(ctx context.Context, topic string, history []chat.Message) (*quiz.Quiz, error) {
	base := strings.TrimSpace(topic)
	if base == "" {
		if history == nil {
			stored, err := qs.store.ListMessages(ctx)
			if err != nil {
				qs.logger.Error("failed to load messages for topic inference", "error", err)
			}
			history = stored
		}
		base = chat.TopicFromHistory(history)
	}

	q := qs.gen.Generate(ctx, base)
	if err := qs.store.SaveQuiz(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Submit grades the answers against the stored quiz and appends the result.
// Returns store.ErrNotFound when the quiz id is unknown.
func (qs *QuizService) Submit(ctx context.Context, quizID string, answers []quiz.SubmittedAnswer) (*quiz.Result, error) {
	q, err := qs.store.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	result := quiz.Grade(q, answers)
	if err := qs.store.SaveResult(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Report joins a stored result back to its quiz.
func (qs *QuizService) Report(ctx context.Context, resultID string) (*quiz.Report, error) {
	result, err := qs.store.GetResult(ctx, resultID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, err
	}
	q, err := qs.store.GetQuiz(ctx, result.QuizID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return quiz.BuildReport(q, result), nil
}
