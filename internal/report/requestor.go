// Package report validates and submits report requests for the current conversation.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docassist/internal/dto"
	"docassist/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const moduleName = "Report"

// NoSectionsMessage is the inline message shown when validation fails.
const NoSectionsMessage = "Add at least one section title."

var ErrNoSections = errors.New("no report sections given")

var validate = validator.New()

type ReportAPI interface {
	Report(ctx context.Context, req dto.ReportRequest) (*dto.ReportResponse, error)
	ResolveURL(ref string) string
}

// ParseSections splits on commas, trims each piece and drops empties.
// Case and duplicates are preserved.
func ParseSections(raw string) []string {
	sections := []string{}
	for _, piece := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(piece); s != "" {
			sections = append(sections, s)
		}
	}
	return sections
}

// BuildRequest returns ErrNoSections when raw holds no usable section title.
// An empty sessionId is omitted from the request.
func BuildRequest(raw string, includeSummary bool, sessionId string) (dto.ReportRequest, error) {
	req := dto.ReportRequest{
		SessionId:      sessionId,
		Sections:       ParseSections(raw),
		IncludeSummary: includeSummary,
	}
	if err := validate.Struct(req); err != nil {
		return dto.ReportRequest{}, fmt.Errorf("%w: %v", ErrNoSections, err)
	}
	return req, nil
}

type Requestor struct {
	api    ReportAPI
	logger logger.ILogger
}

func NewRequestor(api ReportAPI, log logger.ILogger) *Requestor {
	return &Requestor{api: api, logger: log}
}

// Generate builds and submits the request and returns an absolute download URL.
// Validation failures never reach the network.
func (r *Requestor) Generate(ctx context.Context, raw string, includeSummary bool, sessionId string) (string, error) {
	req, err := BuildRequest(raw, includeSummary, sessionId)
	if err != nil {
		return "", err
	}
	resp, err := r.api.Report(ctx, req)
	if err != nil {
		return "", fmt.Errorf("generate report: %w", err)
	}
	r.logger.Info(moduleName, "report ready", map[string]interface{}{
		"report_id": resp.ReportId, "sections": len(req.Sections), "include_summary": includeSummary,
	})
	return r.api.ResolveURL(resp.DownloadUrl), nil
}
