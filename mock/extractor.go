package mock

import "github.com/fwojciec/texmeta"

var _ texmeta.Normalizer = (*Normalizer)(nil)

// Normalizer is a mock implementation of texmeta.Normalizer.
type Normalizer struct {
	NormalizeFn func(path string) (string, error)
}

func (n *Normalizer) Normalize(path string) (string, error) {
	return n.NormalizeFn(path)
}

var _ texmeta.Parser = (*Parser)(nil)

// Parser is a mock implementation of texmeta.Parser.
type Parser struct {
	ParseFn func(source string) (*texmeta.ParsedDocument, error)
}

func (p *Parser) Parse(source string) (*texmeta.ParsedDocument, error) {
	return p.ParseFn(source)
}

var _ texmeta.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of texmeta.Extractor.
type Extractor struct {
	ExtractFn func(path string) (*texmeta.ParsedDocument, error)
}

func (e *Extractor) Extract(path string) (*texmeta.ParsedDocument, error) {
	return e.ExtractFn(path)
}
