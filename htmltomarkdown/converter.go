// Package htmltomarkdown converts rendered HTML fragments to plain prose
// using html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/texmeta"
	"golang.org/x/net/html"
)

// Ensure Converter implements texmeta.Converter at compile time.
var _ texmeta.Converter = (*Converter)(nil)

// unwrapSelector matches elements whose text is kept without markup.
const unwrapSelector = "a, span"

// Converter wraps html-to-markdown to convert HTML to plain text.
// Emphasis is written with underscores and text is not escaped.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithEmDelimiter("_"),
			),
		),
		converter.WithEscapeMode(converter.EscapeModeDisabled),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into plain text. Links are replaced
// by their text and trailing whitespace is trimmed from every line.
// Characters the converter writes back as entities are decoded.
func (c *Converter) Convert(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	node, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}
	doc := goquery.NewDocumentFromNode(node)
	doc.Find(unwrapSelector).Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithSelection(s.Contents())
	})

	result, err := c.conv.ConvertNode(node)
	if err != nil {
		return "", err
	}

	lines := strings.Split(string(result), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return html.UnescapeString(strings.TrimSpace(strings.Join(lines, "\n"))), nil
}
