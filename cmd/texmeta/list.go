package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/texmeta"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter texmeta.DocumentFilter
	if c.Series != "" {
		filter.Series = &c.Series
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'texmeta add' to add one.")
		return nil
	}

	for _, doc := range docs {
		title := doc.SourcePath
		if meta := doc.Metadata; meta != nil && meta.PlainTitle != nil && strings.TrimSpace(*meta.PlainTitle) != "" {
			title = strings.TrimSpace(*meta.PlainTitle)
		}
		draft := ""
		if doc.Metadata != nil && doc.Metadata.IsDraft {
			draft = "  (draft)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s%s\n", doc.Handle(), title, draft)
	}

	return nil
}
