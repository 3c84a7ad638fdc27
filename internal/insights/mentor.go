package insights

import (
	"context"
	"strings"
	"time"

	"resume-reviewer/internal/llm"
	"resume-reviewer/internal/shared/telemetry"
)

const (
	offlineReply     = "I am currently in offline mode. Please configure my OpenAI API key to enable chat."
	unavailableReply = "I'm having trouble thinking right now. Please try again later."

	mentorPrompt = `You are a helpful and encouraging career mentor.
Answer questions briefly and professionally.
If context about the user's resume is available, use it to personalize advice.`
)

// Mentor answers single-turn career questions.
type Mentor struct {
	client  llm.Client
	timeout time.Duration
}

// NewMentor returns a mentor. A nil client answers with the offline reply.
func NewMentor(client llm.Client, timeout time.Duration) *Mentor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mentor{client: client, timeout: timeout}
}

// Chat replies to message, personalizing with userContext when given.
func (m *Mentor) Chat(ctx context.Context, message, userContext string) string {
	if m.client == nil {
		return offlineReply
	}

	system := mentorPrompt
	if c := strings.TrimSpace(userContext); c != "" {
		system += "\n\nUSER CONTEXT:\n" + c
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	reply, err := m.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{llm.System(system), llm.User(message)},
	})
	if err != nil {
		telemetry.Warn("mentor.chat_failed", map[string]any{"error": err.Error()})
		return unavailableReply
	}
	return reply
}
