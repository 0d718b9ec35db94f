package model

import (
	"strconv"
	"time"
)

// StoredDocument is the stand-in service's record of one ingested file.
type StoredDocument struct {
	Id         string
	Name       string
	Source     string
	SourceLink string
	Chunks     []string
	FilePath   string // stored original; empty for Drive documents
	CreatedAt  time.Time
}

// ChunkId follows the "<doc_id>_<index>" convention.
func (d *StoredDocument) ChunkId(index int) string {
	return d.Id + "_" + strconv.Itoa(index)
}
