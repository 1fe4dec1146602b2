package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/mock"
	texslog "github.com/fwojciec/texmeta/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("logs path with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Normalizer{
			NormalizeFn: func(path string) (string, error) {
				return `\title{Example}`, nil
			},
		}

		n := texslog.NewLoggingNormalizer(inner, logger)
		source, err := n.Normalize("/docs/LDM-151.tex")

		require.NoError(t, err)
		assert.Equal(t, `\title{Example}`, source)
		output := buf.String()
		assert.Contains(t, output, "normalize")
		assert.Contains(t, output, "path=/docs/LDM-151.tex")
		assert.Contains(t, output, "bytes=15")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Normalizer{
			NormalizeFn: func(path string) (string, error) {
				return "", errors.New("read failed")
			},
		}

		n := texslog.NewLoggingNormalizer(inner, logger)
		_, err := n.Normalize("/docs/missing.tex")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "err=\"read failed\"")
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs handle of extracted document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(path string) (*texmeta.ParsedDocument, error) {
				return &texmeta.ParsedDocument{Handle: "LDM-151"}, nil
			},
		}

		e := texslog.NewLoggingExtractor(inner, logger)
		meta, err := e.Extract("/docs/LDM-151.tex")

		require.NoError(t, err)
		assert.Equal(t, "LDM-151", meta.Handle)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "path=/docs/LDM-151.tex")
		assert.Contains(t, output, "handle=LDM-151")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error without handle on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(path string) (*texmeta.ParsedDocument, error) {
				return nil, texmeta.Errorf(texmeta.ECYCLE, "include cycle")
			},
		}

		e := texslog.NewLoggingExtractor(inner, logger)
		meta, err := e.Extract("/docs/loop.tex")

		require.Error(t, err)
		assert.Nil(t, meta)
		output := buf.String()
		assert.Contains(t, output, "handle=\"\"")
		assert.Contains(t, output, "include cycle")
	})
}
