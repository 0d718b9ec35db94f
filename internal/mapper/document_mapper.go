package mapper

import (
	"docassist/internal/dto"
	"docassist/internal/entity"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) DocumentToEntity(d dto.DocumentDTO) entity.Document {
	return entity.Document{
		Id:         d.Id,
		Name:       d.Name,
		Chunks:     d.Chunks,
		Source:     d.Source,
		SourceLink: d.SourceLink,
	}
}

// DocumentsToEntities keeps the service's order and always returns a non-nil slice.
func (m *DocumentMapper) DocumentsToEntities(docs []dto.DocumentDTO) []entity.Document {
	out := make([]entity.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, m.DocumentToEntity(d))
	}
	return out
}

func (m *DocumentMapper) DocumentToDTO(d entity.Document) dto.DocumentDTO {
	return dto.DocumentDTO{
		Id:         d.Id,
		Name:       d.Name,
		Chunks:     d.Chunks,
		Source:     d.Source,
		SourceLink: d.SourceLink,
	}
}
