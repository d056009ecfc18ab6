package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vy1216/v4learnease/internal/domain/quiz"
)

// MemoryDSN keeps all state in process memory, shared across connections.
// This is the default: the application deliberately forgets everything on
// restart.
const MemoryDSN = "file:learnease?mode=memory&cache=shared"

const schema = `
CREATE TABLE IF NOT EXISTS quizzes (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    quiz_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    type TEXT NOT NULL,
    question TEXT NOT NULL,
    options TEXT,
    answer TEXT NOT NULL,
    topic TEXT NOT NULL,
    difficulty TEXT NOT NULL,
    FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
);

CREATE TABLE IF NOT EXISTS results (
    id TEXT PRIMARY KEY,
    quiz_id TEXT NOT NULL,
    topic TEXT NOT NULL,
    score INTEGER NOT NULL,
    total INTEGER NOT NULL,
    improvements TEXT NOT NULL,
    avg_time_ms INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    FOREIGN KEY (quiz_id) REFERENCES quizzes(id)
);

CREATE TABLE IF NOT EXISTS result_details (
    result_id TEXT NOT NULL,
    question_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    correct INTEGER NOT NULL,
    time_ms INTEGER NOT NULL,
    user_answer TEXT NOT NULL,
    explanation TEXT NOT NULL,
    PRIMARY KEY (result_id, position),
    FOREIGN KEY (result_id) REFERENCES results(id)
);

CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_text TEXT NOT NULL,
    bot_text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS materials (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    file_url TEXT NOT NULL,
    uploader_id INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS uploads (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    url TEXT NOT NULL,
    text TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS help_tickets (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (or creates) the database at the given DSN and applies the
// schema. Use MemoryDSN for in-memory state.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// The driver is in-process; a single connection serializes writers and
	// keeps a mode=memory database alive for the whole run.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Quizzes
// ============================================================================

func (s *SQLiteStore) SaveQuiz(ctx context.Context, q *quiz.Quiz) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO quizzes (id, topic, created_at) VALUES (?, ?, ?)",
		q.ID, q.Topic, q.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	for i, question := range q.Questions {
		var options sql.NullString
		if question.Options != nil {
			encoded, err := json.Marshal(question.Options)
			if err != nil {
				return err
			}
			options = sql.NullString{String: string(encoded), Valid: true}
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO questions (id, quiz_id, position, type, question, options, answer, topic, difficulty)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			question.ID, q.ID, i, string(question.Type), question.Text,
			options, question.Answer, question.Topic, string(question.Difficulty),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetQuiz(ctx context.Context, id string) (*quiz.Quiz, error) {
	var q quiz.Quiz
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, topic, created_at FROM quizzes WHERE id = ?", id,
	).Scan(&q.ID, &q.Topic, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	q.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	questions, err := s.loadQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Questions = questions
	return &q, nil
}

func (s *SQLiteStore) ListQuizzes(ctx context.Context, limit int) ([]*quiz.Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM quizzes ORDER BY rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query order is newest-first; callers expect most-recent-last.
	quizzes := make([]*quiz.Quiz, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		q, err := s.GetQuiz(ctx, ids[i])
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (s *SQLiteStore) loadQuestions(ctx context.Context, quizID string) ([]quiz.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, question, options, answer, topic, difficulty
		FROM questions WHERE quiz_id = ? ORDER BY position`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []quiz.Question
	for rows.Next() {
		var q quiz.Question
		var qType, difficulty string
		var options sql.NullString
		if err := rows.Scan(&q.ID, &qType, &q.Text, &options, &q.Answer, &q.Topic, &difficulty); err != nil {
			return nil, err
		}
		q.Type = quiz.QuestionType(qType)
		q.Difficulty = quiz.Difficulty(difficulty)
		if options.Valid {
			if err := json.Unmarshal([]byte(options.String), &q.Options); err != nil {
				return nil, err
			}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ============================================================================
// Results
// ============================================================================

func (s *SQLiteStore) SaveResult(ctx context.Context, r *quiz.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	improvements, err := json.Marshal(r.Improvements)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO results (id, quiz_id, topic, score, total, improvements, avg_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.QuizID, r.Topic, r.Score, r.Total,
		string(improvements), r.AvgTimeMs, r.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	for i, d := range r.Details {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO result_details (result_id, question_id, position, correct, time_ms, user_answer, explanation)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, d.QuestionID, i, boolToInt(d.Correct), d.TimeMs, d.UserAnswer, d.Explanation,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetResult(ctx context.Context, id string) (*quiz.Result, error) {
	var r quiz.Result
	var improvements, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, quiz_id, topic, score, total, improvements, avg_time_ms, created_at
		FROM results WHERE id = ?`, id,
	).Scan(&r.ID, &r.QuizID, &r.Topic, &r.Score, &r.Total, &improvements, &r.AvgTimeMs, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(improvements), &r.Improvements); err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	details, err := s.loadDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Details = details
	return &r, nil
}

func (s *SQLiteStore) ListResults(ctx context.Context, limit int) ([]*quiz.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM results ORDER BY rowid DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]*quiz.Result, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		r, err := s.GetResult(ctx, ids[i])
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *SQLiteStore) loadDetails(ctx context.Context, resultID string) ([]quiz.Detail, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, correct, time_ms, user_answer, explanation
		FROM result_details WHERE result_id = ? ORDER BY position`, resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []quiz.Detail{}
	for rows.Next() {
		var d quiz.Detail
		var correct int
		if err := rows.Scan(&d.QuestionID, &correct, &d.TimeMs, &d.UserAnswer, &d.Explanation); err != nil {
			return nil, err
		}
		d.Correct = correct != 0
		details = append(details, d)
	}
	return details, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
