package service_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vy1216/v4learnease/internal/domain/material"
	"github.com/vy1216/v4learnease/internal/llm"
	"github.com/vy1216/v4learnease/internal/service"
	"github.com/vy1216/v4learnease/internal/store"
)

type fakeChat struct {
	configured bool
	reply      string
	err        error

	gotMessages []llm.Message
}

func (f *fakeChat) Complete(_ context.Context, messages []llm.Message, _ llm.Options) (string, error) {
	f.gotMessages = messages
	return f.reply, f.err
}

func (f *fakeChat) Configured() bool {
	return f.configured
}

func newChatFixture(t *testing.T, client llm.ChatClient) (*service.ChatService, *store.SQLiteStore) {
	t.Helper()
	db, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return service.NewChatService(db, client, slog.New(slog.DiscardHandler)), db
}

func TestChatSend_UsesLLMReply(t *testing.T) {
	client := &fakeChat{configured: true, reply: "An integral sums infinitesimal slices."}
	chats, _ := newChatFixture(t, client)

	msg, err := chats.Send(context.Background(), "what is an integral?", nil)
	require.NoError(t, err)
	assert.Equal(t, "what is an integral?", msg.User)
	assert.Equal(t, "An integral sums infinitesimal slices.", msg.Text)

	// No uploads referenced, so only the system prompt and the user turn.
	require.Len(t, client.gotMessages, 2)
	assert.Equal(t, "system", client.gotMessages[0].Role)
	assert.Equal(t, "what is an integral?", client.gotMessages[1].Content)

	history, err := chats.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, msg, history[0])
}

func TestChatSend_InjectsUploadContext(t *testing.T) {
	client := &fakeChat{configured: true, reply: "ok"}
	chats, db := newChatFixture(t, client)

	up := &material.Upload{ID: "up_ab12cd34ef56", Name: "notes.txt", URL: "/uploads/notes.txt", Text: "Entropy never decreases."}
	require.NoError(t, db.SaveUpload(context.Background(), up))

	_, err := chats.Send(context.Background(), "summarize my notes", []string{up.ID, "up_unknown"})
	require.NoError(t, err)

	// system prompt, context prompt, context text, user turn
	require.Len(t, client.gotMessages, 4)
	assert.Contains(t, client.gotMessages[2].Content, "[notes.txt]")
	assert.Contains(t, client.gotMessages[2].Content, "Entropy never decreases.")
}

func TestChatSend_LLMFailureDegradesToOffline(t *testing.T) {
	client := &fakeChat{configured: true, err: errors.New("boom")}
	chats, _ := newChatFixture(t, client)

	msg, err := chats.Send(context.Background(), "explain recursion", nil)
	require.NoError(t, err)
	assert.Equal(t, "Recursion is defining a function in terms of itself, with a base case to stop.", msg.Text)
}

func TestChatSend_OfflineUsesUploadContext(t *testing.T) {
	client := &fakeChat{configured: false}
	chats, db := newChatFixture(t, client)

	up := &material.Upload{
		ID:   "up_ab12cd34ef56",
		Name: "thermo.txt",
		URL:  "/uploads/thermo.txt",
		Text: "Entropy measures disorder. Heat flows from hot to cold. Unrelated trivia here.",
	}
	require.NoError(t, db.SaveUpload(context.Background(), up))

	msg, err := chats.Send(context.Background(), "tell me about entropy", []string{up.ID})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Text, "Based on your materials"))
	assert.Contains(t, msg.Text, "Entropy measures disorder.")
}
