package lsstdoc

import (
	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/tex"
)

// Ensure Extractor implements texmeta.Extractor at compile time.
var _ texmeta.Extractor = (*Extractor)(nil)

// Extractor flattens a document and parses its metadata.
type Extractor struct {
	Normalizer texmeta.Normalizer
	Parser     texmeta.Parser
}

// NewExtractor creates a new Extractor.
func NewExtractor(normalizer texmeta.Normalizer, parser texmeta.Parser) *Extractor {
	return &Extractor{Normalizer: normalizer, Parser: parser}
}

// NewDefaultExtractor returns an Extractor wired with the tex normalizer
// and a Parser rendering with cfg.
func NewDefaultExtractor(cfg *Config, converter texmeta.Converter) *Extractor {
	return NewExtractor(tex.NewNormalizer(), NewParser(NewRenderer(cfg), converter))
}

// Extract returns the metadata of the document rooted at path.
func (e *Extractor) Extract(path string) (*texmeta.ParsedDocument, error) {
	source, err := e.Normalizer.Normalize(path)
	if err != nil {
		return nil, err
	}
	return e.Parser.Parse(source)
}
