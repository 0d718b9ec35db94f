package dto

type DocumentDTO struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	Chunks     int    `json:"chunks"`
	Source     string `json:"source"`
	SourceLink string `json:"source_link,omitempty"`
}

type ListDocumentsResponse struct {
	Documents []DocumentDTO `json:"documents"`
}

// UploadFile is one part of the repeated "files" multipart field.
type UploadFile struct {
	Name    string
	Content []byte
}

type IngestedFileDTO struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Chunks int    `json:"chunks"`
}

type UploadResponse struct {
	Uploaded []IngestedFileDTO `json:"uploaded"`
}

type IngestResponse struct {
	Ingested []IngestedFileDTO `json:"ingested"`
}

type DeleteDocumentResponse struct {
	Deleted *DocumentDTO `json:"deleted,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type ClearDocumentsResponse struct {
	Cleared int `json:"cleared"`
}
