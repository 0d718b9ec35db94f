package contract

import (
	"context"

	"docassist/internal/model"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.StoredDocument) error
	FindAll(ctx context.Context) ([]*model.StoredDocument, error)
	FindOne(ctx context.Context, id string) (*model.StoredDocument, error)
	Delete(ctx context.Context, id string) (*model.StoredDocument, error)
	DeleteAll(ctx context.Context) ([]*model.StoredDocument, error)
}
