package mock

import (
	"context"

	"github.com/fwojciec/texmeta"
)

var _ texmeta.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of texmeta.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *texmeta.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *texmeta.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}
