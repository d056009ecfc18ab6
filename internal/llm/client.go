// Package llm is a minimal client for OpenAI-compatible chat completion
// endpoints (Groq in production, anything speaking the same API locally).
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Message is one chat turn sent to the completion endpoint.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options tune a single completion call.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// ChatClient is implemented by *Client and by canned fakes in tests.
type ChatClient interface {
	// Complete returns the raw text content of the first choice.
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	// Configured reports whether an API key is present. Callers use it to
	// skip the network entirely and go straight to their fallback path.
	Configured() bool
}

// CallError wraps a completion failure so callers can tell transport
// problems apart from malformed responses.
type CallError struct {
	Reason  string
	Wrapped error
}

func (e *CallError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("llm call failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("llm call failed: %s", e.Reason)
}

func (e *CallError) Unwrap() error {
	return e.Wrapped
}

// Client calls a chat completion API over HTTP.
type Client struct {
	baseURL string // e.g. "https://api.groq.com/openai"
	apiKey  string
	model   string // e.g. "llama-3.3-70b-versatile"
	client  *http.Client
}

var _ ChatClient = (*Client)(nil)

// NewClient creates a client for the given endpoint. An empty apiKey yields
// an unconfigured client: Complete still works against key-less local
// endpoints, but Configured returns false.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Complete(ctx context.Context, messages []Message, opts Options) (string, error) {
	reqBody := completionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &CallError{Reason: "failed to marshal request", Wrapped: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", &CallError{Reason: "failed to create request", Wrapped: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &CallError{Reason: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &CallError{Reason: fmt.Sprintf("endpoint returned status %d", resp.StatusCode)}
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", &CallError{Reason: "failed to decode response", Wrapped: err}
	}

	if len(completion.Choices) == 0 {
		return "", &CallError{Reason: "no choices in response"}
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", &CallError{Reason: "empty content in response"}
	}

	return content, nil
}

// ExtractJSON finds the outermost JSON object in a string, tolerating prose
// around it. It handles nested braces and skips braces inside quoted strings.
func ExtractJSON(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
