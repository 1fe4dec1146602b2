package mock

import (
	"context"

	"github.com/fwojciec/texmeta"
)

var _ texmeta.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of texmeta.DocumentService.
type DocumentService struct {
	CreateDocumentFn       func(ctx context.Context, doc *texmeta.Document) error
	FindDocumentByHandleFn func(ctx context.Context, handle string) (*texmeta.Document, error)
	FindDocumentsFn        func(ctx context.Context, filter texmeta.DocumentFilter) ([]*texmeta.Document, error)
	DeleteDocumentFn       func(ctx context.Context, handle string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *texmeta.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByHandle(ctx context.Context, handle string) (*texmeta.Document, error) {
	return s.FindDocumentByHandleFn(ctx, handle)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter texmeta.DocumentFilter) ([]*texmeta.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, handle string) error {
	return s.DeleteDocumentFn(ctx, handle)
}
