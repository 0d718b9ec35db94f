package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"docassist/internal/bootstrap"
	"docassist/internal/config"
	"docassist/internal/dto"
	"docassist/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	return newTestAppWithLLM(t, "")
}

func newTestAppWithLLM(t *testing.T, provider string) *fiber.App {
	t.Helper()
	cfg := &config.Config{Stub: config.StubConfig{
		LLMProvider:        provider,
		CorsAllowedOrigins: "*",
		DataDir:            t.TempDir(),
		DriveFolder:        t.TempDir(),
		ChunkSize:          900,
		ChunkOverlap:       150,
		TopK:               4,
		MaxHistory:         6,
	}}
	container := bootstrap.NewContainer(cfg, logger.NewNop())
	return New(cfg, container).GetApp()
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func upload(t *testing.T, app *fiber.App, files map[string]string) dto.UploadResponse {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	var health dto.HealthResponse
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/health", nil, &health))
	assert.Equal(t, "ok", health.Status)
	assert.False(t, health.LlmEnabled)
	assert.Equal(t, "none", health.LlmProvider)

	app = newTestAppWithLLM(t, "ollama")
	doJSON(t, app, http.MethodGet, "/health", nil, &health)
	assert.True(t, health.LlmEnabled)
	assert.Equal(t, "ollama", health.LlmProvider)
	assert.Equal(t, "llama3", health.LlmModel)
}

func TestDocumentLifecycle(t *testing.T) {
	app := newTestApp(t)

	uploaded := upload(t, app, map[string]string{"labs.txt": "Hemoglobin is low."})
	require.Len(t, uploaded.Uploaded, 1)

	var list dto.ListDocumentsResponse
	doJSON(t, app, http.MethodGet, "/documents", nil, &list)
	require.Len(t, list.Documents, 1)
	assert.Equal(t, "upload", list.Documents[0].Source)
	assert.Equal(t, 1, list.Documents[0].Chunks)

	var missing dto.DeleteDocumentResponse
	assert.Equal(t, http.StatusOK, doJSON(t, app, http.MethodDelete, "/documents/nope", nil, &missing))
	assert.Equal(t, "Document not found", missing.Error)

	var deleted dto.DeleteDocumentResponse
	doJSON(t, app, http.MethodDelete, "/documents/"+list.Documents[0].Id, nil, &deleted)
	require.NotNil(t, deleted.Deleted)

	upload(t, app, map[string]string{"a.txt": "alpha", "b.txt": "bravo"})
	var cleared dto.ClearDocumentsResponse
	doJSON(t, app, http.MethodPost, "/documents/clear", nil, &cleared)
	assert.Equal(t, 2, cleared.Cleared)

	doJSON(t, app, http.MethodGet, "/documents", nil, &list)
	assert.Empty(t, list.Documents)
}

func TestUploadWithoutFilesIsRejected(t *testing.T) {
	app := newTestApp(t)
	var errBody dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/upload", map[string]string{}, &errBody)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotEmpty(t, errBody.Error)
}

func TestChatAndReport(t *testing.T) {
	app := newTestApp(t)
	upload(t, app, map[string]string{"labs.txt": "Hemoglobin is low."})

	var chat dto.SendChatResponse
	doJSON(t, app, http.MethodPost, "/chat", dto.SendChatRequest{Message: "hemoglobin"}, &chat)
	assert.NotEmpty(t, chat.SessionId)
	require.Len(t, chat.Citations, 1)
	assert.Equal(t, "labs.txt", chat.Citations[0].DocName)

	var errBody dto.ErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity,
		doJSON(t, app, http.MethodPost, "/chat", map[string]string{"session_id": chat.SessionId}, &errBody))

	var cleared dto.ClearChatResponse
	doJSON(t, app, http.MethodPost, "/chat/clear?session_id="+chat.SessionId, nil, &cleared)
	assert.Equal(t, 2, cleared.Cleared)

	assert.Equal(t, http.StatusUnprocessableEntity,
		doJSON(t, app, http.MethodPost, "/report", dto.ReportRequest{Sections: []string{}}, &errBody))

	var rep dto.ReportResponse
	assert.Equal(t, http.StatusOK,
		doJSON(t, app, http.MethodPost, "/report", dto.ReportRequest{Sections: []string{"Hemoglobin"}, IncludeSummary: true}, &rep))
	require.NotEmpty(t, rep.DownloadUrl)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, rep.DownloadUrl, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	content, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(content), "## Hemoglobin")

	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/reports/unknown", nil, &errBody))
}
