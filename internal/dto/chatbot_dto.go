package dto

// SendChatRequest omits session_id entirely when no conversation has started,
// which tells the service to allocate a fresh one.
type SendChatRequest struct {
	SessionId string `json:"session_id,omitempty"`
	Message   string `json:"message" validate:"required"`
}

type CitationDTO struct {
	DocName    string `json:"doc_name"`
	ChunkId    string `json:"chunk_id"`
	SourceLink string `json:"source_link,omitempty"`
}

type SendChatResponse struct {
	SessionId string        `json:"session_id"`
	Answer    string        `json:"answer"`
	Citations []CitationDTO `json:"citations,omitempty"`
}

type ClearChatResponse struct {
	Cleared   int    `json:"cleared"`
	SessionId string `json:"session_id,omitempty"`
}
