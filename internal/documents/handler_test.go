package documents

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(newTestService(t)).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func multipartUpload(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestHandlerUploadAndGet(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "jane.txt", []byte(sampleResume)))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		DocumentID string `json:"documentId"`
		FileName   string `json:"fileName"`
		Data       struct {
			RawText  string            `json:"rawText"`
			Sections map[string]string `json:"sections"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	require.NotEmpty(t, created.DocumentID)
	assert.Equal(t, "jane.txt", created.FileName)
	assert.Len(t, created.Data.Sections, 6)
	assert.Equal(t, "Go, Python, SQL, Docker", created.Data.Sections["skills"])

	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID, nil))
	assert.Equal(t, http.StatusOK, getResp.Code)

	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, httptest.NewRequest(http.MethodGet, "/api/v1/documents?limit=5", nil))
	assert.Equal(t, http.StatusOK, listResp.Code)
	assert.Contains(t, listResp.Body.String(), created.DocumentID)
}

func TestHandlerUploadErrors(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "photo.gif", []byte("GIF89a.....")))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.Code)
	assert.Contains(t, resp.Body.String(), "unsupported_type")

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "broken.pdf", []byte("%PDF-1.4 truncated")))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "extraction_failed")

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/documents", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandlerGetErrors(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/documents/nope", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/documents/6f1c1f7e-8a53-4d7f-9a43-2b7d3c3a9e10", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHandlerReparse(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, multipartUpload(t, "jane.txt", []byte(sampleResume)))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var created struct {
		DocumentID string `json:"documentId"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+created.DocumentID+"/reparse", nil))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "Go, Python, SQL, Docker")

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/documents/6f1c1f7e-8a53-4d7f-9a43-2b7d3c3a9e10/reparse", nil))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/documents/nope/reparse", nil))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
