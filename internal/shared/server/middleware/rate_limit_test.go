package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitAnalyzeGroupIsStricter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Limiter: limiter,
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost {
				return "ANALYZE"
			}
			return ""
		},
		Rules: map[string]RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 10},
			"ANALYZE": {Rate: 1, Burst: 2},
		},
	}))
	r.POST("/api/v1/analyses", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/v1/roles", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/v1/analyses").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/v1/analyses").Code)

	limited := do(http.MethodPost, "/api/v1/analyses")
	require.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))

	var body struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(limited.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body.Error.Code)
	assert.Equal(t, float64(1000), body.Error.Details["retryAfterMs"])

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/roles").Code)
	}

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/api/v1/analyses").Code)
}

func TestRateLimiterDisabledRule(t *testing.T) {
	limiter := NewRateLimiter(nil)
	for i := 0; i < 100; i++ {
		ok, _ := limiter.Allow("k", RateLimitRule{})
		require.True(t, ok)
	}
}

func TestRateLimiterPrunesIdleBuckets(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	limiter.Allow("10.0.0.1|DEFAULT", rule)
	now = now.Add(bucketIdleTTL / 2)
	limiter.Allow("10.0.0.2|DEFAULT", rule)
	assert.Equal(t, 2, limiter.Prune())

	now = now.Add(bucketIdleTTL/2 + time.Second)
	assert.Equal(t, 1, limiter.Prune())

	ok, _ := limiter.Allow("10.0.0.1|DEFAULT", rule)
	assert.True(t, ok)
}
