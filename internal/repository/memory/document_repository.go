package memory

import (
	"context"
	"sync"

	"docassist/internal/model"
)

// DocumentRepository keeps documents in insertion order.
type DocumentRepository struct {
	mu   sync.RWMutex
	docs []*model.StoredDocument
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) Create(_ context.Context, doc *model.StoredDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, doc)
	return nil
}

func (r *DocumentRepository) FindAll(_ context.Context) ([]*model.StoredDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*model.StoredDocument(nil), r.docs...), nil
}

// FindOne returns nil, nil when id is unknown.
func (r *DocumentRepository) FindOne(_ context.Context, id string) (*model.StoredDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.docs {
		if d.Id == id {
			return d, nil
		}
	}
	return nil, nil
}

// Delete returns the removed document, or nil when id is unknown.
func (r *DocumentRepository) Delete(_ context.Context, id string) (*model.StoredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, d := range r.docs {
		if d.Id == id {
			r.docs = append(r.docs[:i:i], r.docs[i+1:]...)
			return d, nil
		}
	}
	return nil, nil
}

// DeleteAll returns exactly the documents it removed.
func (r *DocumentRepository) DeleteAll(_ context.Context) ([]*model.StoredDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := r.docs
	r.docs = nil
	return removed, nil
}
