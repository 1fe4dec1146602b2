package mock

import "github.com/fwojciec/texmeta"

var _ texmeta.Converter = (*Converter)(nil)

// Converter is a mock implementation of texmeta.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
