package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vy1216/v4learnease/internal/domain/chat"
	"github.com/vy1216/v4learnease/internal/domain/material"
	"github.com/vy1216/v4learnease/internal/llm"
	"github.com/vy1216/v4learnease/internal/store"
)

const (
	chatSystemPrompt = "Format responses for easy scanning: use short headers when helpful, concise bullet points, numbered steps for procedures, and avoid fluff. Keep answers precise and structured."
	contextPrompt    = "Use the following document excerpts as context. If the user asks to reference or read their materials, answer using the provided context only when relevant."
)

// ChatService answers user messages, injecting indexed document text as
// context when the caller references uploads. Failures of the LLM degrade to
// keyword extraction over the same context.
type ChatService struct {
	store  store.Store
	llm    llm.ChatClient
	logger *slog.Logger
}

func NewChatService(s store.Store, client llm.ChatClient, logger *slog.Logger) *ChatService {
	return &ChatService{store: s, llm: client, logger: logger}
}

// History returns every stored chat exchange in order.
func (cs *ChatService) History(ctx context.Context) ([]chat.Message, error) {
	return cs.store.ListMessages(ctx)
}

// Send answers the user's text and appends the exchange to the message store.
// It never fails on LLM errors; the reply just degrades.
func (cs *ChatService) Send(ctx context.Context, userText string, fileIDs []string) (chat.Message, error) {
	contextText := cs.contextFor(ctx, fileIDs)

	var reply string
	if cs.llm.Configured() {
		answer, err := cs.complete(ctx, userText, contextText)
		if err != nil {
			cs.logger.Warn("chat completion failed, answering offline", "error", err)
			reply = cs.offline(userText, contextText)
		} else {
			reply = answer
		}
	} else {
		reply = cs.offline(userText, contextText)
	}

	msg := chat.Message{User: userText, Text: reply}
	if err := cs.store.SaveMessage(ctx, msg); err != nil {
		return chat.Message{}, err
	}
	return msg, nil
}

func (cs *ChatService) complete(ctx context.Context, userText, contextText string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: chatSystemPrompt},
	}
	if contextText != "" {
		messages = append(messages,
			llm.Message{Role: "system", Content: contextPrompt},
			llm.Message{Role: "user", Content: contextText},
		)
	}
	messages = append(messages, llm.Message{Role: "user", Content: userText})

	return cs.llm.Complete(ctx, messages, llm.Options{Temperature: 0.7, MaxTokens: 1024})
}

func (cs *ChatService) offline(userText, contextText string) string {
	if answer := chat.ContextAnswer(userText, contextText); answer != "" {
		return answer
	}
	return chat.HelpfulReply(userText)
}

// contextFor concatenates the indexed texts of the referenced uploads,
// labeled by file name and capped at the indexing limit. Unknown ids are
// ignored.
func (cs *ChatService) contextFor(ctx context.Context, fileIDs []string) string {
	var contextText string
	for _, fid := range fileIDs {
		upload, err := cs.store.GetUpload(ctx, fid)
		if err != nil || upload.Text == "" {
			continue
		}
		contextText += fmt.Sprintf("\n\n[%s]\n%s", upload.Name, upload.Text)
	}
	return material.ClampText(contextText)
}
