package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-reviewer/internal/llm"
)

// Generator produces insights for one resume and target role.
type Generator interface {
	Generate(ctx context.Context, in Input) (Insights, error)
}

// ErrMalformedResponse is returned when the model answer is not the
// expected JSON object.
var ErrMalformedResponse = errors.New("malformed insights response")

const reviewSystemPrompt = `You are an expert career coach and resume reviewer.
Analyze the candidate's resume against the target role.

Respond with one JSON object of this shape and nothing else:
{
  "ats_score": {"score": <0-100>, "explanation": "<string>"},
  "missing_skills": ["<skill>", "..."],
  "project_recommendations": [{"title": "<title>", "tech_stack": ["<tech>"], "impact": "<description>"}],
  "learning_roadmap": ["<month 1 goal>", "<month 2 goal>", "<month 3 goal>"],
  "resume_improvements": ["<tip>", "..."]
}`

// LLMGenerator asks a chat model for a structured review.
type LLMGenerator struct {
	Client llm.Client
}

func NewLLMGenerator(client llm.Client) *LLMGenerator {
	return &LLMGenerator{Client: client}
}

func (g *LLMGenerator) Generate(ctx context.Context, in Input) (Insights, error) {
	prompt, err := buildReviewPrompt(in)
	if err != nil {
		return Insights{}, err
	}
	raw, err := g.Client.Complete(ctx, llm.Request{
		Messages: []llm.Message{llm.System(reviewSystemPrompt), llm.User(prompt)},
		JSON:     true,
	})
	if err != nil {
		return Insights{}, err
	}

	var out Insights
	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &out); err != nil {
		return Insights{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.ATSScore.Score < 0 || out.ATSScore.Score > 100 {
		return Insights{}, fmt.Errorf("%w: ats score %d out of range", ErrMalformedResponse, out.ATSScore.Score)
	}
	out.Source = SourceLLM
	return out, nil
}

func buildReviewPrompt(in Input) (string, error) {
	doc, err := json.Marshal(in.Document)
	if err != nil {
		return "", fmt.Errorf("marshal resume: %w", err)
	}
	var b strings.Builder
	b.WriteString("RESUME DATA:\n")
	b.Write(doc)
	b.WriteString("\n\nTARGET ROLE:\n")
	b.WriteString(in.TargetRole)
	b.WriteString("\n\nJOB REQUIREMENTS:\n")
	b.WriteString(strings.Join(in.Requirements, ", "))
	b.WriteString("\n\nAnalyze and provide the JSON output.")
	return b.String(), nil
}
