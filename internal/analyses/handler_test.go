package analyses

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-reviewer/internal/resume"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, &stubRoles{})
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestHandlerAnalyzeInlineDocument(t *testing.T) {
	router := newTestRouter(t)

	resp := postJSON(t, router, "/api/v1/analyses", map[string]any{
		"document":       resume.Parse([]string{sampleResume}),
		"targetRole":     "Backend Developer",
		"jobDescription": "Python developer with Docker",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var report struct {
		AnalysisID     string `json:"analysisId"`
		TargetRoleData struct {
			Role   string `json:"role"`
			Source string `json:"source"`
		} `json:"targetRoleData"`
		SkillGap struct {
			StrongMatches   []string `json:"strongMatches"`
			MissingSkills   []string `json:"missingSkills"`
			MatchPercentage float64  `json:"matchPercentage"`
		} `json:"skillGap"`
		ATSAnalysis struct {
			OverallScore float64 `json:"overallScore"`
		} `json:"atsAnalysis"`
		LLMInsights struct {
			Source string `json:"source"`
		} `json:"llmInsights"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &report))
	require.NotEmpty(t, report.AnalysisID)
	assert.Equal(t, "Backend Developer", report.TargetRoleData.Role)
	assert.Equal(t, "job_description", report.TargetRoleData.Source)
	assert.Contains(t, report.SkillGap.StrongMatches, "python")
	assert.Contains(t, report.SkillGap.MissingSkills, "docker")
	assert.Equal(t, "fallback", report.LLMInsights.Source)

	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+report.AnalysisID, nil))
	assert.Equal(t, http.StatusOK, getResp.Code)
	assert.Contains(t, getResp.Body.String(), report.AnalysisID)

	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil))
	assert.Equal(t, http.StatusOK, listResp.Code)
	assert.Contains(t, listResp.Body.String(), `"targetRole":"Backend Developer"`)
}

func TestHandlerAnalyzeErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{name: "missing role", body: map[string]any{"documentId": "6f1c1f7e-8a53-4d7f-9a43-2b7d3c3a9e10"}, status: http.StatusBadRequest, code: "validation_error"},
		{name: "unknown document", body: map[string]any{"documentId": "6f1c1f7e-8a53-4d7f-9a43-2b7d3c3a9e10", "targetRole": "Dev"}, status: http.StatusNotFound, code: "not_found"},
		{name: "bad document id", body: map[string]any{"documentId": "x", "targetRole": "Dev"}, status: http.StatusBadRequest, code: "validation_error"},
		{name: "not an object", body: []string{"x"}, status: http.StatusBadRequest, code: "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, router, "/api/v1/analyses", tt.body)
			assert.Equal(t, tt.status, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.code)
		})
	}
}

func TestHandlerGetAnalysisNotFound(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/6f1c1f7e-8a53-4d7f-9a43-2b7d3c3a9e10", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/analyses/bad-id", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
