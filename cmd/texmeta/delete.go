package main

import (
	"fmt"

	"github.com/fwojciec/texmeta"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return texmeta.Errorf(texmeta.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, c.Handle); err != nil {
		if texmeta.ErrorCode(err) == texmeta.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %s not found. Use 'texmeta list' to see available documents.\n", c.Handle)
			return err
		}
		reportError(deps.Stderr, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", c.Handle)
	return nil
}
