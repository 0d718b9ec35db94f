package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docassist/internal/dto"
	"docassist/internal/pkg/logger"
)

const moduleName = "Transport"

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("%s %s: status %d, body: %s", e.Method, e.Path, e.StatusCode, body)
}

// Client talks to the document service. It never retries.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	logger  logger.ILogger
}

// NewClient builds a client; a zero timeout means requests may wait indefinitely.
func NewClient(baseURL string, timeout time.Duration, log logger.ILogger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		logger:  log,
	}
}

func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var out dto.HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListDocuments(ctx context.Context) (*dto.ListDocumentsResponse, error) {
	var out dto.ListDocumentsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/documents", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends every file under the repeated "files" form field.
func (c *Client) Upload(ctx context.Context, files []dto.UploadFile) (*dto.UploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, fmt.Errorf("write form file %s: %w", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	var out dto.UploadResponse
	if err := c.do(ctx, http.MethodPost, "/upload", &body, writer.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IngestDrive(ctx context.Context) (*dto.IngestResponse, error) {
	var out dto.IngestResponse
	if err := c.doJSON(ctx, http.MethodPost, "/ingest/drive", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/documents/"+url.PathEscape(id), nil, "", nil)
}

func (c *Client) ClearDocuments(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/documents/clear", nil, "", nil)
}

func (c *Client) Chat(ctx context.Context, req dto.SendChatRequest) (*dto.SendChatResponse, error) {
	var out dto.SendChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearChat adds the session_id query parameter only when sessionId is non-empty.
func (c *Client) ClearChat(ctx context.Context, sessionId string) error {
	path := "/chat/clear"
	if sessionId != "" {
		path += "?" + url.Values{"session_id": {sessionId}}.Encode()
	}
	return c.do(ctx, http.MethodPost, path, nil, "", nil)
}

func (c *Client) Report(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error) {
	var out dto.ReportResponse
	if err := c.doJSON(ctx, http.MethodPost, "/report", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveURL turns a service-relative reference such as "/reports/abc" into an absolute URL.
func (c *Client) ResolveURL(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	base, err := url.Parse(c.BaseURL + "/")
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

// Download streams the artifact behind ref into w.
func (c *Client) Download(ctx context.Context, ref string, w io.Writer) (int64, error) {
	target := c.ResolveURL(ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, fmt.Errorf("download %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, &APIError{Method: http.MethodGet, Path: ref, StatusCode: resp.StatusCode, Body: string(body)}
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read artifact: %w", err)
	}
	return n, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	if payload == nil {
		return c.do(ctx, method, path, nil, "", out)
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(payloadBytes), "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.logger.Warn(moduleName, "request failed", map[string]interface{}{
			"method": method, "path": path, "error": err.Error(),
		})
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug(moduleName, "request completed", map[string]interface{}{
		"method": method, "path": path, "status": resp.StatusCode, "elapsed_ms": time.Since(started).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}
	if out == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
