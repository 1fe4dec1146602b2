package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/texmeta"
)

// Ensure LoggingNormalizer implements texmeta.Normalizer.
var _ texmeta.Normalizer = (*LoggingNormalizer)(nil)

// LoggingNormalizer wraps a Normalizer with logging.
type LoggingNormalizer struct {
	next   texmeta.Normalizer
	logger *slog.Logger
}

// NewLoggingNormalizer creates a new LoggingNormalizer.
func NewLoggingNormalizer(next texmeta.Normalizer, logger *slog.Logger) *LoggingNormalizer {
	return &LoggingNormalizer{next: next, logger: logger}
}

// Normalize delegates to the wrapped normalizer and logs the operation.
func (n *LoggingNormalizer) Normalize(path string) (source string, err error) {
	defer func(begin time.Time) {
		n.logger.Info("normalize",
			"path", path,
			"bytes", len(source),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Normalize(path)
}

// Ensure LoggingExtractor implements texmeta.Extractor.
var _ texmeta.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   texmeta.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next texmeta.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(path string) (meta *texmeta.ParsedDocument, err error) {
	defer func(begin time.Time) {
		var handle string
		if meta != nil {
			handle = meta.Handle
		}
		e.logger.Info("extract",
			"path", path,
			"handle", handle,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(path)
}
