package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"docassist/internal/constant"
	"docassist/internal/dto"
	"docassist/internal/entity"
	"docassist/internal/pkg/logger"
	"docassist/pkg/llm"
)

const (
	maxSummaryLines  = 5
	summaryMaxTokens = 300
)

var reportIdPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)

type IReportService interface {
	Build(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error)
	// Path returns the artifact path for reportId, or false if there is none.
	Path(reportId string) (string, bool)
}

type reportService struct {
	documents IDocumentService
	generator llm.LLMProvider // nil builds an extractive summary
	dir       string
	topK      int
	logger    logger.ILogger
}

func NewReportService(documents IDocumentService, generator llm.LLMProvider, dir string, topK int, log logger.ILogger) IReportService {
	return &reportService{documents: documents, generator: generator, dir: dir, topK: topK, logger: log}
}

// Build writes one heading per section followed by the uploaded chunks that match it.
func (s *reportService) Build(ctx context.Context, req *dto.ReportRequest) (*dto.ReportResponse, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Report generated %s\n\n", time.Now().UTC().Format(time.RFC3339))

	var collected []string
	for _, section := range req.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section)
		hits, err := s.documents.Search(ctx, section, s.topK, entity.DocumentSourceUpload)
		if err != nil {
			return nil, fmt.Errorf("search section %q: %w", section, err)
		}
		if len(hits) == 0 {
			b.WriteString("(no matching content)\n\n")
		}
		for _, h := range hits {
			fmt.Fprintf(&b, "%s\n[%s (%s)]\n\n", h.Text, h.Doc.Name, h.ChunkId)
			collected = append(collected, h.Text)
		}
	}

	if req.IncludeSummary && len(collected) > 0 {
		fmt.Fprintf(&b, "## %s\n\n%s\n", constant.ReportSummaryTag, s.summarize(ctx, collected))
	}

	reportId := newHexId()
	path := filepath.Join(s.dir, "report_"+reportId+".txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	s.logger.Info("ReportService", "report built", map[string]interface{}{
		"report_id": reportId, "sections": len(req.Sections), "session_id": req.SessionId,
	})
	return &dto.ReportResponse{ReportId: reportId, DownloadUrl: "/reports/" + reportId}, nil
}

func (s *reportService) Path(reportId string) (string, bool) {
	if !reportIdPattern.MatchString(reportId) {
		return "", false
	}
	path := filepath.Join(s.dir, "report_"+reportId+".txt")
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// summarize asks the LLM when one is configured and falls back to the first
// sentence of each collected chunk.
func (s *reportService) summarize(ctx context.Context, collected []string) string {
	if s.generator != nil {
		summary, err := s.generator.Chat(ctx, []llm.Message{
			{Role: llm.RoleSystem, Content: "Summarize the following content briefly."},
			{Role: llm.RoleUser, Content: strings.Join(collected, "\n")},
		}, llm.WithTemperature(0.2), llm.WithMaxTokens(summaryMaxTokens))
		if err == nil && strings.TrimSpace(summary) != "" {
			return strings.TrimSpace(summary) + "\n"
		}
		if err != nil {
			s.logger.Warn("ReportService", "llm summary failed", map[string]interface{}{"error": err.Error()})
		}
	}

	var b strings.Builder
	for i, text := range collected {
		if i == maxSummaryLines {
			break
		}
		fmt.Fprintf(&b, "- %s\n", firstSentence(text))
	}
	return b.String()
}

func firstSentence(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return text[:i+1]
	}
	return text
}
