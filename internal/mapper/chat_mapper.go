package mapper

import (
	"docassist/internal/dto"
	"docassist/internal/entity"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// CitationsToEntities preserves order and duplicates exactly as received.
func (m *ChatMapper) CitationsToEntities(citations []dto.CitationDTO) []entity.ChatCitation {
	if len(citations) == 0 {
		return nil
	}
	out := make([]entity.ChatCitation, len(citations))
	for i, c := range citations {
		out[i] = entity.ChatCitation{
			DocName:    c.DocName,
			ChunkId:    c.ChunkId,
			SourceLink: c.SourceLink,
		}
	}
	return out
}

func (m *ChatMapper) CitationsToDTO(citations []entity.ChatCitation) []dto.CitationDTO {
	out := make([]dto.CitationDTO, len(citations))
	for i, c := range citations {
		out[i] = dto.CitationDTO{
			DocName:    c.DocName,
			ChunkId:    c.ChunkId,
			SourceLink: c.SourceLink,
		}
	}
	return out
}
