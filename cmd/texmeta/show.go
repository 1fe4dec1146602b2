package main

import (
	"fmt"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/etree"
	"github.com/fwojciec/texmeta/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByHandle(deps.Ctx, c.Handle)
	if err != nil {
		if texmeta.ErrorCode(err) == texmeta.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %s not found. Use 'texmeta list' to see available documents.\n", c.Handle)
			return err
		}
		reportError(deps.Stderr, err)
		return err
	}

	formatter, ok := formatterFor(c.Format)
	if !ok {
		fmt.Fprintln(deps.Stdout, texmeta.FormatDocument(doc))
		return nil
	}

	content, err := formatter.Format(doc)
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}
	_, err = deps.Stdout.Write(content)
	return err
}

// formatterFor returns the file formatter for a format flag value.
func formatterFor(format string) (fs.Formatter, bool) {
	switch format {
	case "md":
		return fs.Markdown{}, true
	case "xml":
		return etree.Formatter{}, true
	}
	return nil, false
}
