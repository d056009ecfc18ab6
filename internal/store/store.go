package store

import (
	"context"
	"errors"

	"github.com/vy1216/v4learnease/internal/domain/chat"
	"github.com/vy1216/v4learnease/internal/domain/material"
	"github.com/vy1216/v4learnease/internal/domain/quiz"
	"github.com/vy1216/v4learnease/internal/domain/support"
	"github.com/vy1216/v4learnease/internal/domain/user"
)

var ErrNotFound = errors.New("not found")

// ListLimit caps how many quizzes and results the list endpoints return.
// Everything stays retrievable by id for the process lifetime regardless.
const ListLimit = 20

// Store is the application state container. All collections live behind this
// interface so handlers and services never touch ambient globals.
type Store interface {
	// Quizzes are write-once per id.
	SaveQuiz(ctx context.Context, q *quiz.Quiz) error
	GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error)
	// ListQuizzes returns at most limit quizzes, most-recent-last.
	ListQuizzes(ctx context.Context, limit int) ([]*quiz.Quiz, error)

	// Results are append-only.
	SaveResult(ctx context.Context, r *quiz.Result) error
	GetResult(ctx context.Context, id string) (*quiz.Result, error)
	ListResults(ctx context.Context, limit int) ([]*quiz.Result, error)

	CreateUser(ctx context.Context, u *user.User) error
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	SaveMessage(ctx context.Context, m chat.Message) error
	ListMessages(ctx context.Context) ([]chat.Message, error)

	SaveMaterial(ctx context.Context, m *material.Material) error
	ListMaterials(ctx context.Context) ([]*material.Material, error)

	SaveUpload(ctx context.Context, u *material.Upload) error
	GetUpload(ctx context.Context, id string) (*material.Upload, error)

	SaveTicket(ctx context.Context, t *support.Ticket) error
}
