package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vy1216/v4learnease/internal/domain/chat"
)

func TestSendMessage_OfflineReply(t *testing.T) {
	srv := newTestServer(t)

	// No LLM key is configured in tests, so replies come from the offline
	// responder.
	resp := postJSON(t, srv, "/api/messages", map[string]any{"user": "explain recursion"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var msg chat.Message
	decodeBody(t, resp, &msg)
	assert.Equal(t, "explain recursion", msg.User)
	assert.Equal(t, "Recursion is defining a function in terms of itself, with a base case to stop.", msg.Text)

	var history []chat.Message
	listResp := getJSON(t, srv, "/api/messages", &history)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	require.Len(t, history, 1)
	assert.Equal(t, msg, history[0])
}

func TestSendMessage_EmptyTextRejected(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv, "/api/messages", map[string]any{"user": ""})
	var errBody struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &errBody)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Message text is required", errBody.Error)
}
