package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	formatter, ok := formatterFor(c.Format)
	if !ok {
		err := texmeta.Errorf(texmeta.EINVALID, "unsupported export format %q", c.Format)
		reportError(deps.Stderr, err)
		return err
	}

	var filter texmeta.DocumentFilter
	if c.Series != "" {
		filter.Series = &c.Series
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}

	dir := filepath.Clean(c.Dir)
	store := fs.NewFileStore(filepath.Dir(dir), filepath.Base(dir), formatter)
	store.Force = c.Force
	err = writeAll(deps.Ctx, store, docs)
	if err == nil {
		err = store.Commit()
	}
	if err != nil {
		_ = store.Abort()
		reportError(deps.Stderr, err)
		if texmeta.ErrorCode(err) == texmeta.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "Use --force to replace %s.\n", dir)
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), dir)
	return nil
}

func writeAll(ctx context.Context, w texmeta.DocumentWriter, docs []*texmeta.Document) error {
	for _, doc := range docs {
		if err := w.WriteDocument(ctx, doc); err != nil {
			return &pathError{Path: doc.Handle(), Err: err}
		}
	}
	return nil
}
