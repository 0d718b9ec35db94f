package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"docassist/internal/dto"
	"docassist/internal/entity"
	"docassist/internal/mapper"
	"docassist/internal/model"
	"docassist/internal/pkg/logger"
	"docassist/internal/repository/contract"
	"docassist/pkg/search"
	"docassist/pkg/utils"

	"github.com/google/uuid"
)

type IDocumentService interface {
	List(ctx context.Context) ([]dto.DocumentDTO, error)
	Ingest(ctx context.Context, name string, content []byte, source, sourceLink string) (*dto.IngestedFileDTO, error)
	IngestDrive(ctx context.Context) ([]dto.IngestedFileDTO, error)
	Delete(ctx context.Context, id string) (*dto.DocumentDTO, error)
	Clear(ctx context.Context) (int, error)
	Search(ctx context.Context, query string, k int, source string) ([]ChunkHit, error)
}

// ChunkHit is one retrieved chunk with the document it belongs to.
type ChunkHit struct {
	Doc     *model.StoredDocument
	ChunkId string
	Text    string
	Score   int
}

type DocumentServiceConfig struct {
	ChunkSize     int
	ChunkOverlap  int
	DriveFolder   string
	DriveLinkBase string
	UploadDir     string // empty keeps uploads in memory only
}

type documentService struct {
	repo      contract.DocumentRepository
	cfg       DocumentServiceConfig
	mapper    *mapper.DocumentMapper
	extractor *TextExtractor
	logger    logger.ILogger
}

func NewDocumentService(repo contract.DocumentRepository, cfg DocumentServiceConfig, log logger.ILogger) IDocumentService {
	return &documentService{
		repo:      repo,
		cfg:       cfg,
		mapper:    mapper.NewDocumentMapper(),
		extractor: NewTextExtractor(),
		logger:    log,
	}
}

func newHexId() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:])
}

func (s *documentService) toDTO(d *model.StoredDocument) dto.DocumentDTO {
	return s.mapper.DocumentToDTO(entity.Document{
		Id:         d.Id,
		Name:       d.Name,
		Chunks:     len(d.Chunks),
		Source:     d.Source,
		SourceLink: d.SourceLink,
	})
}

func (s *documentService) List(ctx context.Context) ([]dto.DocumentDTO, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.toDTO(d))
	}
	return out, nil
}

// Ingest extracts text by file extension (PDF, DOCX, otherwise UTF-8 text). Formats
// with no readable text are kept as documents with zero chunks.
func (s *documentService) Ingest(ctx context.Context, name string, content []byte, source, sourceLink string) (*dto.IngestedFileDTO, error) {
	text, err := s.extractor.Extract(name, content)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", name, err)
	}
	chunks := utils.SplitText(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	doc := &model.StoredDocument{
		Id:         newHexId(),
		Name:       name,
		Source:     source,
		SourceLink: sourceLink,
		Chunks:     chunks,
		CreatedAt:  time.Now(),
	}
	if source == entity.DocumentSourceUpload && s.cfg.UploadDir != "" {
		path, err := s.storeOriginal(doc.Id, name, content)
		if err != nil {
			return nil, err
		}
		doc.FilePath = path
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("DocumentService", "document ingested", map[string]interface{}{
		"doc_id": doc.Id, "name": name, "source": source, "chunks": len(chunks),
	})
	return &dto.IngestedFileDTO{Id: doc.Id, Name: doc.Name, Chunks: len(chunks)}, nil
}

// IngestDrive ingests every regular file in the configured folder. A missing folder
// ingests nothing.
func (s *documentService) IngestDrive(ctx context.Context) ([]dto.IngestedFileDTO, error) {
	ingested := []dto.IngestedFileDTO{}
	entries, err := os.ReadDir(s.cfg.DriveFolder)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("DocumentService", "drive folder missing", map[string]interface{}{"folder": s.cfg.DriveFolder})
			return ingested, nil
		}
		return nil, fmt.Errorf("read drive folder: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.cfg.DriveFolder, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		link := ""
		if s.cfg.DriveLinkBase != "" {
			link = s.cfg.DriveLinkBase + url.PathEscape(e.Name())
		}
		meta, err := s.Ingest(ctx, e.Name(), content, entity.DocumentSourceDrive, link)
		if err != nil {
			return nil, err
		}
		ingested = append(ingested, *meta)
	}
	return ingested, nil
}

// Delete returns nil, nil when id is unknown.
func (s *documentService) Delete(ctx context.Context, id string) (*dto.DocumentDTO, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil || removed == nil {
		return nil, err
	}
	s.removeOriginal(removed)
	out := s.toDTO(removed)
	return &out, nil
}

func (s *documentService) Clear(ctx context.Context) (int, error) {
	removed, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, d := range removed {
		s.removeOriginal(d)
	}
	s.logger.Info("DocumentService", "corpus cleared", map[string]interface{}{"removed": len(removed)})
	return len(removed), nil
}

// Search ranks every chunk against query; an empty source matches all documents.
func (s *documentService) Search(ctx context.Context, query string, k int, source string) ([]ChunkHit, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byChunk := make(map[string]*model.StoredDocument)
	var candidates []search.Candidate
	for _, d := range docs {
		if source != "" && d.Source != source {
			continue
		}
		for i, text := range d.Chunks {
			id := d.ChunkId(i)
			byChunk[id] = d
			candidates = append(candidates, search.Candidate{Key: id, Text: text})
		}
	}

	hits := search.TopK(query, candidates, k)
	out := make([]ChunkHit, len(hits))
	for i, h := range hits {
		out[i] = ChunkHit{Doc: byChunk[h.Key], ChunkId: h.Key, Text: h.Text, Score: h.Score}
	}
	return out, nil
}

func (s *documentService) storeOriginal(id, name string, content []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(s.cfg.UploadDir, id+"_"+utils.SafeFilename(name))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("store upload %s: %w", name, err)
	}
	return path, nil
}

func (s *documentService) removeOriginal(d *model.StoredDocument) {
	if d.FilePath == "" {
		return
	}
	if err := os.Remove(d.FilePath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("DocumentService", "failed to remove stored upload", map[string]interface{}{
			"doc_id": d.Id, "path": d.FilePath, "error": err.Error(),
		})
	}
}
