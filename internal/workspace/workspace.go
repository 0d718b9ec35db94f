// Package workspace is the single writer of all client-side state. Every user action
// goes through it; it owns the conversation, the corpus list and the last report link.
package workspace

import (
	"context"
	"fmt"
	"io"

	"docassist/internal/apiclient"
	"docassist/internal/citation"
	"docassist/internal/confirm"
	"docassist/internal/corpus"
	"docassist/internal/dto"
	"docassist/internal/entity"
	"docassist/internal/pkg/logger"
	"docassist/internal/report"
	"docassist/internal/session"
)

const (
	moduleName    = "Workspace"
	StatusOffline = "offline"
)

type HealthAPI interface {
	Health(ctx context.Context) (*dto.HealthResponse, error)
}

type DownloadAPI interface {
	Download(ctx context.Context, ref string, w io.Writer) (int64, error)
}

// API is everything the workspace needs from the service.
type API interface {
	HealthAPI
	DownloadAPI
	corpus.DocumentAPI
	session.ChatAPI
	report.ReportAPI
}

var _ API = (*apiclient.Client)(nil)

type HealthStatus struct {
	Online bool
	Status string
	LLM    string
}

type Workspace struct {
	api        API
	session    *session.Controller
	corpus     *corpus.ViewModel
	reports    *report.Requestor
	confirmer  confirm.Confirmer
	lastReport string
	logger     logger.ILogger
}

func New(api API, confirmer confirm.Confirmer, log logger.ILogger) *Workspace {
	return &Workspace{
		api:       api,
		session:   session.NewController(api, log),
		corpus:    corpus.NewViewModel(api, log),
		reports:   report.NewRequestor(api, log),
		confirmer: confirmer,
		logger:    log,
	}
}

// Health never fails; an unreachable service reports StatusOffline.
func (w *Workspace) Health(ctx context.Context) HealthStatus {
	resp, err := w.api.Health(ctx)
	if err != nil {
		w.logger.Warn(moduleName, "health check failed", map[string]interface{}{"error": err.Error()})
		return HealthStatus{Status: StatusOffline}
	}
	status := resp.Status
	if status == "" {
		status = "ok"
	}
	llm := "LLM: disabled (extractive answers)"
	if resp.LlmEnabled {
		llm = fmt.Sprintf("LLM: %s (%s)", resp.LlmProvider, resp.LlmModel)
	}
	return HealthStatus{Online: true, Status: status, LLM: llm}
}

// Start runs the one-shot startup calls.
func (w *Workspace) Start(ctx context.Context) (HealthStatus, []entity.Document, error) {
	health := w.Health(ctx)
	docs, err := w.corpus.Refresh(ctx)
	return health, docs, err
}

func (w *Workspace) Documents() []entity.Document {
	return w.corpus.Documents()
}

func (w *Workspace) RefreshDocuments(ctx context.Context) ([]entity.Document, error) {
	return w.corpus.Refresh(ctx)
}

func (w *Workspace) Upload(ctx context.Context, files []dto.UploadFile) (int, error) {
	return w.corpus.Upload(ctx, files)
}

func (w *Workspace) IngestDrive(ctx context.Context) (int, error) {
	return w.corpus.IngestDrive(ctx)
}

// DeleteDocument resolves ref (id or name) against the current list before asking.
func (w *Workspace) DeleteDocument(ctx context.Context, ref string) (bool, error) {
	doc, err := w.corpus.Find(ref)
	if err != nil {
		return false, err
	}
	return w.corpus.Delete(ctx, doc, w.confirmer)
}

// ClearCorpus also ends the conversation, since its evidence is gone.
func (w *Workspace) ClearCorpus(ctx context.Context) (bool, error) {
	return w.corpus.Clear(ctx, w.confirmer, w.session.Reset)
}

func (w *Workspace) Chat(ctx context.Context, message string) (*session.Reply, error) {
	return w.session.Send(ctx, message)
}

func (w *Workspace) ClearChat(ctx context.Context) (bool, error) {
	return w.session.Clear(ctx, w.confirmer)
}

func (w *Workspace) Conversation() session.Conversation {
	return w.session.Snapshot()
}

// Citations is the display for the last answer; ok is false before any answer
// and after a reset, when nothing should be shown.
func (w *Workspace) Citations() (citation.Binding, bool) {
	conv := w.session.Snapshot()
	if !conv.Answered {
		return citation.Binding{}, false
	}
	return citation.Bind(conv.Citations), true
}

func (w *Workspace) GenerateReport(ctx context.Context, rawSections string, includeSummary bool) (string, error) {
	id, _ := w.session.Current()
	url, err := w.reports.Generate(ctx, rawSections, includeSummary, id)
	if err != nil {
		return "", err
	}
	w.lastReport = url
	return url, nil
}

func (w *Workspace) LastReport() string {
	return w.lastReport
}

func (w *Workspace) DownloadReport(ctx context.Context, url string, dst io.Writer) (int64, error) {
	return w.api.Download(ctx, url, dst)
}
