package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vy1216/v4learnease/internal/api"
	"github.com/vy1216/v4learnease/internal/auth"
	"github.com/vy1216/v4learnease/internal/domain/quiz"
	"github.com/vy1216/v4learnease/internal/generator"
	"github.com/vy1216/v4learnease/internal/llm"
	"github.com/vy1216/v4learnease/internal/service"
	"github.com/vy1216/v4learnease/internal/store"
)

// newTestServer wires the full handler stack against a private in-memory
// database and an unconfigured LLM client, so generation always takes the
// deterministic path.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	db, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := llm.NewClient("http://localhost:0", "", "test-model")
	quizzes := service.NewQuizService(db, generator.New(client, logger), logger)
	chats := service.NewChatService(db, client, logger)

	indexer := service.NewIndexer(db, 1, 4, logger)
	go indexer.Run()
	t.Cleanup(indexer.Close)

	h := api.NewHandler(db, quizzes, chats, indexer, auth.NewService("test-secret"), logger, t.TempDir(), "")

	mux := http.NewServeMux()
	api.RegisterRoutes(mux, h)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, srv *httptest.Server, path string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func generateQuiz(t *testing.T, srv *httptest.Server, topic string) string {
	t.Helper()
	resp := postJSON(t, srv, "/api/quiz/generate", map[string]string{"topic": topic})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func fetchQuiz(t *testing.T, srv *httptest.Server, quizID string) *quiz.Quiz {
	t.Helper()
	var q quiz.Quiz
	resp := getJSON(t, srv, "/api/quiz/"+quizID, &q)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return &q
}

// answersFor builds a submission from the quiz itself, optionally botching
// the answers at the given 0-based positions.
func answersFor(q *quiz.Quiz, wrong ...int) []map[string]any {
	botched := map[int]bool{}
	for _, i := range wrong {
		botched[i] = true
	}
	answers := make([]map[string]any, len(q.Questions))
	for i, question := range q.Questions {
		answer := question.Answer
		if botched[i] {
			answer = "definitely wrong"
		}
		answers[i] = map[string]any{
			"questionId": question.ID,
			"answer":     answer,
			"timeMs":     1000,
		}
	}
	return answers
}

func TestQuizLifecycle_AllCorrect(t *testing.T) {
	srv := newTestServer(t)

	quizID := generateQuiz(t, srv, "Thermodynamics")
	q := fetchQuiz(t, srv, quizID)

	assert.Equal(t, "Thermodynamics", q.Topic)
	require.Len(t, q.Questions, 10)
	for _, question := range q.Questions {
		assert.True(t, strings.HasPrefix(question.ID, quizID+"_q"))
	}

	// Fetching again returns the identical quiz.
	again := fetchQuiz(t, srv, quizID)
	assert.Equal(t, q, again)

	resp := postJSON(t, srv, "/api/quiz/submit", map[string]any{
		"quizId":  quizID,
		"answers": answersFor(q),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result quiz.Result
	decodeBody(t, resp, &result)
	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 10, result.Total)
	assert.Empty(t, result.Improvements)
	assert.Equal(t, int64(1000), result.AvgTimeMs)

	// A perfect result yields a report with no advice.
	var report quiz.Report
	reportResp := getJSON(t, srv, "/api/quiz-report/"+result.ID, &report)
	require.Equal(t, http.StatusOK, reportResp.StatusCode)
	assert.Equal(t, quizID, report.QuizID)
	assert.Equal(t, 10, report.Score)
	assert.Empty(t, report.Advice)
	require.Len(t, report.Items, 10)
	for i, item := range report.Items {
		assert.Equal(t, q.Questions[i].Topic, item.Topic)
		assert.Equal(t, q.Questions[i].Text, item.Question)
		assert.True(t, item.Correct)
	}
}

func TestQuizSubmit_OneWrongCountsTopic(t *testing.T) {
	srv := newTestServer(t)

	quizID := generateQuiz(t, srv, "Calculus")
	q := fetchQuiz(t, srv, quizID)

	resp := postJSON(t, srv, "/api/quiz/submit", map[string]any{
		"quizId":  quizID,
		"answers": answersFor(q, 0),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result quiz.Result
	decodeBody(t, resp, &result)
	assert.Equal(t, 9, result.Score)
	require.Len(t, result.Improvements, 1)
	assert.Equal(t, quiz.Improvement{Topic: "Calculus", Count: 1}, result.Improvements[0])
	require.Len(t, result.Details, 10)
	assert.False(t, result.Details[0].Correct)
	assert.Contains(t, result.Details[0].Explanation, "definitely wrong")
}

func TestQuizSubmit_InvalidPayloads(t *testing.T) {
	srv := newTestServer(t)
	quizID := generateQuiz(t, srv, "Biology")
	q := fetchQuiz(t, srv, quizID)

	tests := []struct {
		name string
		body string
	}{
		{name: "answers not an array", body: fmt.Sprintf(`{"quizId":%q,"answers":"oops"}`, quizID)},
		{name: "answers missing", body: fmt.Sprintf(`{"quizId":%q}`, quizID)},
		{name: "unknown quiz id", body: `{"quizId":"quiz_nope","answers":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/quiz/submit", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			var body struct {
				Error string `json:"error"`
			}
			decodeBody(t, resp, &body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Invalid payload", body.Error)
		})
	}

	// Junk in timeMs is tolerated, not rejected.
	answers := answersFor(q)
	answers[0]["timeMs"] = "not a number"
	resp := postJSON(t, srv, "/api/quiz/submit", map[string]any{
		"quizId":  quizID,
		"answers": answers,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var result quiz.Result
	decodeBody(t, resp, &result)
	assert.Equal(t, int64(0), result.Details[0].TimeMs)
}

func TestGetQuiz_NotFound(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Error string `json:"error"`
	}
	resp := getJSON(t, srv, "/api/quiz/quiz_missing", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Quiz not found", body.Error)
}

func TestQuizReport_ResultNotFound(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		Error string `json:"error"`
	}
	resp := getJSON(t, srv, "/api/quiz-report/qr_missing", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Result not found", body.Error)
}

func TestGenerateQuiz_EmptyBodyFallsBackToDefaultTopic(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/quiz/generate", "application/json", bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)

	q := fetchQuiz(t, srv, created.ID)
	assert.Equal(t, "general knowledge", q.Topic)
}

func TestGenerateQuiz_TopicFromHistory(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/quiz/generate", map[string]any{
		"history": []map[string]string{
			{"user": "Tell me about", "text": "photosynthesis"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &created)

	q := fetchQuiz(t, srv, created.ID)
	assert.Equal(t, "Tell me about photosynthesis", q.Topic)
}

func TestListQuizzesAndResults(t *testing.T) {
	srv := newTestServer(t)

	first := generateQuiz(t, srv, "Algebra")
	second := generateQuiz(t, srv, "Geometry")

	var quizzes []*quiz.Quiz
	resp := getJSON(t, srv, "/api/quizzes", &quizzes)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, quizzes, 2)
	assert.Equal(t, first, quizzes[0].ID)
	assert.Equal(t, second, quizzes[1].ID)

	q := fetchQuiz(t, srv, first)
	submit := postJSON(t, srv, "/api/quiz/submit", map[string]any{
		"quizId":  first,
		"answers": answersFor(q),
	})
	io.Copy(io.Discard, submit.Body)
	submit.Body.Close()

	var results []*quiz.Result
	resp = getJSON(t, srv, "/api/quiz-results", &results)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, results, 1)
	assert.Equal(t, first, results[0].QuizID)
}
