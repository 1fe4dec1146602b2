package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/texmeta"
	"golang.org/x/sync/errgroup"
)

// forEachPath runs fn for every path with at most concurrency calls in
// flight. Results are stored by argument position. The first error cancels
// the remaining work and is returned.
func forEachPath[T any](ctx context.Context, paths []string, concurrency int, fn func(ctx context.Context, path string) (T, error)) ([]T, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]T, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := fn(gctx, path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// pathError attaches the root file to an extraction failure.
type pathError struct {
	Path string
	Err  error
}

func (e *pathError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *pathError) Unwrap() error { return e.Err }

// reportError prints err to w the way every command does.
func reportError(w io.Writer, err error) {
	var pe *pathError
	if errors.As(err, &pe) {
		fmt.Fprintf(w, "error: %s: %s\n", pe.Path, texmeta.ErrorMessage(pe.Err))
		return
	}
	fmt.Fprintf(w, "error: %s\n", texmeta.ErrorMessage(err))
}
