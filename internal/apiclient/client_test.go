package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"docassist/internal/dto"
	"docassist/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0, logger.NewNop())
}

func TestChatOmitsSessionIdWhenAbsent(t *testing.T) {
	var raw map[string]interface{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"session_id":"s1","answer":"hi","citations":[{"doc_name":"A","chunk_id":"c1","source_link":null}]}`))
	})

	resp, err := c.Chat(context.Background(), dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)

	_, present := raw["session_id"]
	assert.False(t, present, "session_id must be omitted when no session exists")
	assert.Equal(t, "hello", raw["message"])
	assert.Equal(t, "s1", resp.SessionId)
	require.Len(t, resp.Citations, 1)
	assert.Equal(t, "", resp.Citations[0].SourceLink)
}

func TestChatIncludesSessionIdVerbatim(t *testing.T) {
	var got dto.SendChatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"session_id":"s2","answer":"ok"}`))
	})

	_, err := c.Chat(context.Background(), dto.SendChatRequest{SessionId: "s1", Message: "again"})
	require.NoError(t, err)
	assert.Equal(t, "s1", got.SessionId)
}

func TestUploadSendsRepeatedFilesField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		files := r.MultipartForm.File["files"]
		require.Len(t, files, 2)
		assert.Equal(t, "a.txt", files[0].Filename)
		assert.Equal(t, "b.txt", files[1].Filename)

		f, err := files[1].Open()
		require.NoError(t, err)
		content, _ := io.ReadAll(f)
		assert.Equal(t, "bravo", string(content))

		_, _ = w.Write([]byte(`{"uploaded":[{"id":"1","name":"a.txt","chunks":1},{"id":"2","name":"b.txt","chunks":1}]}`))
	})

	resp, err := c.Upload(context.Background(), []dto.UploadFile{
		{Name: "a.txt", Content: []byte("alpha")},
		{Name: "b.txt", Content: []byte("bravo")},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Uploaded, 2)
}

func TestDeleteAndClearEndpoints(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.RequestURI())
		_, _ = w.Write([]byte(`{"ignored":true}`))
	})

	ctx := context.Background()
	require.NoError(t, c.DeleteDocument(ctx, "doc 1"))
	require.NoError(t, c.ClearDocuments(ctx))
	require.NoError(t, c.ClearChat(ctx, ""))
	require.NoError(t, c.ClearChat(ctx, "s1"))

	assert.Equal(t, []string{
		"DELETE /documents/doc%201",
		"POST /documents/clear",
		"POST /chat/clear",
		"POST /chat/clear?session_id=s1",
	}, calls)
}

func TestReportPassesIncludeSummaryThrough(t *testing.T) {
	for _, include := range []bool{true, false} {
		var raw map[string]interface{}
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			_, _ = w.Write([]byte(`{"report_id":"r1","download_url":"/reports/r1"}`))
		})

		resp, err := c.Report(context.Background(), dto.ReportRequest{Sections: []string{"Intro"}, IncludeSummary: include})
		require.NoError(t, err)
		assert.Equal(t, include, raw["include_summary"])
		assert.Equal(t, "/reports/r1", resp.DownloadUrl)
	}
}

func TestNonSuccessStatusBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"index unavailable"}`))
	})

	_, err := c.ListDocuments(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "index unavailable")
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL, 0, logger.NewNop())

	_, err := c.Health(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestResolveURLAndDownload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/r1", r.URL.Path)
		_, _ = w.Write([]byte("report body"))
	})

	assert.Equal(t, c.BaseURL+"/reports/r1", c.ResolveURL("/reports/r1"))
	assert.Equal(t, "https://cdn.example/x.pdf", c.ResolveURL("https://cdn.example/x.pdf"))

	var buf bytes.Buffer
	n, err := c.Download(context.Background(), "/reports/r1", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len("report body")), n)
	assert.Equal(t, "report body", buf.String())
}
