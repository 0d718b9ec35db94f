package entity

// ChatCitation points from an assistant answer back to one document chunk.
type ChatCitation struct {
	DocName    string
	ChunkId    string
	SourceLink string // empty when the chunk has no linkable source
}
