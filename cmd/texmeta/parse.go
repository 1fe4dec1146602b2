package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/etree"
	"gopkg.in/yaml.v3"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	metas, err := forEachPath(deps.Ctx, c.Paths, c.Concurrency, func(_ context.Context, path string) (*texmeta.ParsedDocument, error) {
		meta, err := deps.Extractor.Extract(path)
		if err != nil {
			return nil, &pathError{Path: path, Err: err}
		}
		return meta, nil
	})
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}

	switch c.Format {
	case "xml":
		if err := etree.WriteMetadata(deps.Stdout, metas); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout)
		return nil
	case "yaml":
		enc := yaml.NewEncoder(deps.Stdout)
		enc.SetIndent(2)
		for _, meta := range metas {
			if err := enc.Encode(meta); err != nil {
				return err
			}
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if len(metas) == 1 {
			return enc.Encode(metas[0])
		}
		return enc.Encode(metas)
	}
}
