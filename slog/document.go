package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/texmeta"
)

// Ensure LoggingDocumentService implements texmeta.DocumentService.
var _ texmeta.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService and logs catalog changes.
// Lookups are delegated without logging.
type LoggingDocumentService struct {
	next   texmeta.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next texmeta.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// CreateDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) CreateDocument(ctx context.Context, doc *texmeta.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create document",
			"handle", doc.Handle(),
			"path", doc.SourcePath,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateDocument(ctx, doc)
}

// FindDocumentByHandle delegates to the wrapped service.
func (s *LoggingDocumentService) FindDocumentByHandle(ctx context.Context, handle string) (*texmeta.Document, error) {
	return s.next.FindDocumentByHandle(ctx, handle)
}

// FindDocuments delegates to the wrapped service.
func (s *LoggingDocumentService) FindDocuments(ctx context.Context, filter texmeta.DocumentFilter) ([]*texmeta.Document, error) {
	return s.next.FindDocuments(ctx, filter)
}

// DeleteDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) DeleteDocument(ctx context.Context, handle string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete document",
			"handle", handle,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteDocument(ctx, handle)
}
