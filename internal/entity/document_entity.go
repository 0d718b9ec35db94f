package entity

// Document is one entry of the corpus list view. The client never holds document content.
type Document struct {
	Id         string
	Name       string
	Chunks     int
	Source     string
	SourceLink string
}

const (
	DocumentSourceUpload = "upload"
	DocumentSourceDrive  = "drive"
)
