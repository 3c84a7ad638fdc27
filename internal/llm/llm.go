package llm

import (
	"context"
	"errors"
	"strings"
)

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a single chat completion call.
type Request struct {
	Messages    []Message
	JSON        bool // ask the provider for a JSON object response
	Temperature *float32
}

// Client abstracts chat completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// ErrEmptyResponse is returned when the provider produced no content.
var ErrEmptyResponse = errors.New("llm returned empty content")

// System and User build messages with the matching role.
func System(content string) Message { return Message{Role: "system", Content: content} }
func User(content string) Message   { return Message{Role: "user", Content: content} }

// StripCodeFence removes a surrounding markdown code fence, if any.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
