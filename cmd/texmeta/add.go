package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/texmeta"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	docs, err := forEachPath(deps.Ctx, c.Paths, c.Concurrency, func(_ context.Context, path string) (*texmeta.Document, error) {
		source, err := deps.Normalizer.Normalize(path)
		if err != nil {
			return nil, &pathError{Path: path, Err: err}
		}
		meta, err := deps.Parser.Parse(source)
		if err != nil {
			return nil, &pathError{Path: path, Err: err}
		}
		return &texmeta.Document{SourcePath: path, Source: source, Metadata: meta}, nil
	})
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}

	// Catalog writes happen in argument order
	for _, doc := range docs {
		if doc.Handle() == "" {
			err := texmeta.Errorf(texmeta.EINVALID, "document has no \\setDocRef handle")
			reportError(deps.Stderr, &pathError{Path: doc.SourcePath, Err: err})
			return err
		}

		if c.Force {
			err := deps.Documents.DeleteDocument(deps.Ctx, doc.Handle())
			if err != nil && texmeta.ErrorCode(err) != texmeta.ENOTFOUND {
				reportError(deps.Stderr, err)
				return err
			}
		}

		if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
			if texmeta.ErrorCode(err) == texmeta.ECONFLICT {
				fmt.Fprintf(deps.Stderr, "error: document %s already exists. Use --force to replace it.\n", doc.Handle())
				return err
			}
			reportError(deps.Stderr, err)
			return err
		}

		fmt.Fprintf(deps.Stdout, "Added %s (%s)\n", doc.Handle(), doc.ID)
	}

	return nil
}
