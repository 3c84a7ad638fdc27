package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/llm"
)

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("key", "")
	assert.Error(t, err)
	_, err = NewClient(" ", "gpt-4o-mini")
	assert.Error(t, err)

	c, err := NewClient("key", "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", c.Model())
}

func TestCompleteSendsJSONModeAndAuth(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" {\"ok\":true} "}}],"usage":{"total_tokens":12}}`))
	}))
	defer server.Close()

	c, err := NewClient("secret", "gpt-4o-mini", WithBaseURL(server.URL+"/"))
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), llm.Request{
		Messages: []llm.Message{llm.System("be brief"), llm.User("hi")},
		JSON:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	_, hasTemp := got["temperature"]
	assert.False(t, hasTemp)
	assert.Len(t, got["messages"], 2)
}

func TestCompleteErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "empty content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"  "}}]}`},
		{name: "not json", status: http.StatusBadGateway, body: `<html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			c, err := NewClient("k", "m", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
			require.NoError(t, err)
			_, err = c.Complete(context.Background(), llm.Request{Messages: []llm.Message{llm.User("x")}})
			assert.Error(t, err)
		})
	}
}
