// Package corpus holds the client's list view of the document corpus.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"docassist/internal/confirm"
	"docassist/internal/dto"
	"docassist/internal/entity"
	"docassist/internal/mapper"
	"docassist/internal/pkg/logger"
)

const (
	moduleName = "Corpus"

	// Placeholder is shown instead of an empty list.
	Placeholder      = "No documents yet."
	ClearAllPrompt   = "Clear all documents? This deletes uploaded files and resets the index."
	deletePromptTmpl = "Delete %s?"
)

var (
	ErrNoFiles          = errors.New("pick at least one file")
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentAPI interface {
	ListDocuments(ctx context.Context) (*dto.ListDocumentsResponse, error)
	Upload(ctx context.Context, files []dto.UploadFile) (*dto.UploadResponse, error)
	IngestDrive(ctx context.Context) (*dto.IngestResponse, error)
	DeleteDocument(ctx context.Context, id string) error
	ClearDocuments(ctx context.Context) error
}

// ViewModel is replaced wholesale by every Refresh; it is never patched in place.
type ViewModel struct {
	api    DocumentAPI
	docs   []entity.Document
	mapper *mapper.DocumentMapper
	logger logger.ILogger
}

func NewViewModel(api DocumentAPI, log logger.ILogger) *ViewModel {
	return &ViewModel{
		api:    api,
		docs:   []entity.Document{},
		mapper: mapper.NewDocumentMapper(),
		logger: log,
	}
}

// Documents returns a copy of the list as of the last successful Refresh.
func (v *ViewModel) Documents() []entity.Document {
	return append([]entity.Document(nil), v.docs...)
}

// Refresh fetches the full list and replaces the held one. On failure the previous list is kept.
func (v *ViewModel) Refresh(ctx context.Context) ([]entity.Document, error) {
	resp, err := v.api.ListDocuments(ctx)
	if err != nil {
		v.logger.Warn(moduleName, "refresh failed", map[string]interface{}{"error": err.Error()})
		return v.Documents(), fmt.Errorf("list documents: %w", err)
	}
	v.docs = v.mapper.DocumentsToEntities(resp.Documents)
	v.logger.Debug(moduleName, "corpus refreshed", map[string]interface{}{"count": len(v.docs)})
	return v.Documents(), nil
}

// AfterMutation must complete before any mutating action reports success.
func (v *ViewModel) AfterMutation(ctx context.Context) error {
	_, err := v.Refresh(ctx)
	return err
}

// Upload returns how many files the service accepted.
func (v *ViewModel) Upload(ctx context.Context, files []dto.UploadFile) (int, error) {
	if len(files) == 0 {
		return 0, ErrNoFiles
	}
	resp, err := v.api.Upload(ctx, files)
	if err != nil {
		return 0, fmt.Errorf("upload: %w", err)
	}
	v.logger.Info(moduleName, "files uploaded", map[string]interface{}{"count": len(resp.Uploaded)})
	return len(resp.Uploaded), v.AfterMutation(ctx)
}

func (v *ViewModel) IngestDrive(ctx context.Context) (int, error) {
	resp, err := v.api.IngestDrive(ctx)
	if err != nil {
		return 0, fmt.Errorf("ingest drive: %w", err)
	}
	v.logger.Info(moduleName, "drive ingested", map[string]interface{}{"count": len(resp.Ingested)})
	return len(resp.Ingested), v.AfterMutation(ctx)
}

func DeletePrompt(doc entity.Document) string {
	return fmt.Sprintf(deletePromptTmpl, doc.Name)
}

// Delete removes one document after confirmation. Declining issues no request.
func (v *ViewModel) Delete(ctx context.Context, doc entity.Document, confirmer confirm.Confirmer) (bool, error) {
	if !confirmer.Confirm(DeletePrompt(doc)) {
		return false, nil
	}
	if err := v.api.DeleteDocument(ctx, doc.Id); err != nil {
		return false, fmt.Errorf("delete %s: %w", doc.Id, err)
	}
	v.logger.Info(moduleName, "document deleted", map[string]interface{}{"doc_id": doc.Id})
	return true, v.AfterMutation(ctx)
}

// Clear removes every document after confirmation. afterClear runs once the service
// has cleared and before the list is refreshed.
func (v *ViewModel) Clear(ctx context.Context, confirmer confirm.Confirmer, afterClear func()) (bool, error) {
	if !confirmer.Confirm(ClearAllPrompt) {
		return false, nil
	}
	if err := v.api.ClearDocuments(ctx); err != nil {
		return false, fmt.Errorf("clear documents: %w", err)
	}
	v.logger.Info(moduleName, "corpus cleared", nil)
	if afterClear != nil {
		afterClear()
	}
	return true, v.AfterMutation(ctx)
}

// Find matches ref against ids first, then names (case-insensitive), in the held list.
func (v *ViewModel) Find(ref string) (entity.Document, error) {
	ref = strings.TrimSpace(ref)
	for _, d := range v.docs {
		if d.Id == ref {
			return d, nil
		}
	}
	for _, d := range v.docs {
		if strings.EqualFold(d.Name, ref) {
			return d, nil
		}
	}
	return entity.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, ref)
}

// Lines renders the list, one line per document, or the placeholder when empty.
func Lines(docs []entity.Document) []string {
	if len(docs) == 0 {
		return []string{Placeholder}
	}
	lines := make([]string, len(docs))
	for i, d := range docs {
		lines[i] = fmt.Sprintf("%s [%s]  chunks: %d • source: %s", d.Name, d.Id, d.Chunks, d.Source)
	}
	return lines
}
