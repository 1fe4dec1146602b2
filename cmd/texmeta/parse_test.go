package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fwojciec/texmeta"
	main "github.com/fwojciec/texmeta/cmd/texmeta"
	"github.com/fwojciec/texmeta/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("keeps argument order with concurrency", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(path string) (*texmeta.ParsedDocument, error) {
				return &texmeta.ParsedDocument{Handle: handleFromPath(path)}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Extractor: extractor,
		}

		paths := []string{"/d/LDM-151.tex", "/d/DMTN-036.tex", "/d/SQR-001.tex", "/d/LSE-163.tex"}
		cmd := &main.ParseCmd{Paths: paths, Format: "json", Concurrency: 3}
		require.NoError(t, cmd.Run(deps))

		var got []texmeta.ParsedDocument
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got, 4)
		for i, path := range paths {
			assert.Equal(t, handleFromPath(path), got[i].Handle)
		}
	})

	t.Run("prints nothing when any file fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(path string) (*texmeta.ParsedDocument, error) {
				if path == "/d/bad.tex" {
					return nil, &texmeta.CommandError{Command: "title", Text: `\title{x`, Reason: "unbalanced braces"}
				}
				return &texmeta.ParsedDocument{}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Extractor: extractor,
		}

		cmd := &main.ParseCmd{Paths: []string{"/d/ok.tex", "/d/bad.tex"}, Format: "json", Concurrency: 2}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, texmeta.EMALFORMED, texmeta.ErrorCode(err))
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), `error: /d/bad.tex: malformed \title: unbalanced braces`)
	})

	t.Run("encodes absent fields as null", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractFn: func(_ string) (*texmeta.ParsedDocument, error) {
				return &texmeta.ParsedDocument{Authors: []string{}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Extractor: extractor,
		}

		cmd := &main.ParseCmd{Paths: []string{"/d/empty.tex"}, Format: "json", Concurrency: 1}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), `"title": null`)
		assert.Contains(t, stdout.String(), `"authors": []`)
	})
}
