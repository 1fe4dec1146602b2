// Package etree encodes document metadata as XML using beevik/etree.
package etree

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/texmeta"
)

const indent = 2

// WriteMetadata writes a <documents> element holding one <metadata>
// element per parsed document.
func WriteMetadata(w io.Writer, metas []*texmeta.ParsedDocument) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("documents")
	for _, meta := range metas {
		root.AddChild(metadataElement(meta))
	}
	doc.Indent(indent)
	_, err := doc.WriteTo(w)
	return err
}

// Formatter formats catalog documents as standalone XML records.
type Formatter struct{}

// Extension returns ".xml".
func (Formatter) Extension() string { return ".xml" }

// Format returns the XML record for doc.
func (Formatter) Format(doc *texmeta.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := x.CreateElement("document")
	if doc.ID != "" {
		root.CreateAttr("id", doc.ID)
	}

	source := root.CreateElement("source")
	source.CreateAttr("path", doc.SourcePath)
	if doc.SourceHash != "" {
		source.CreateAttr("hash", doc.SourceHash)
	}
	if !doc.CreatedAt.IsZero() {
		root.CreateElement("created").SetText(doc.CreatedAt.Format(time.RFC3339))
	}
	if !doc.UpdatedAt.IsZero() {
		root.CreateElement("updated").SetText(doc.UpdatedAt.Format(time.RFC3339))
	}
	root.AddChild(metadataElement(doc.Metadata))

	x.Indent(indent)
	return x.WriteToBytes()
}

// metadataElement builds the <metadata> element for meta. Absent fields
// produce no element.
func metadataElement(meta *texmeta.ParsedDocument) *etree.Element {
	el := etree.NewElement("metadata")
	if meta.Handle != "" {
		el.CreateAttr("handle", meta.Handle)
		el.CreateAttr("series", meta.Series)
		el.CreateAttr("serial", meta.Serial)
	}
	el.CreateAttr("draft", strconv.FormatBool(meta.IsDraft))

	addText(el, "title", meta.Title, meta.HTMLTitle, meta.PlainTitle)
	addText(el, "shortTitle", meta.ShortTitle, meta.HTMLShortTitle, meta.PlainShortTitle)

	authors := el.CreateElement("authors")
	for i, raw := range meta.Authors {
		author := authors.CreateElement("author")
		author.CreateElement("raw").SetText(raw)
		if i < len(meta.HTMLAuthors) {
			author.CreateElement("html").SetText(strings.TrimSpace(meta.HTMLAuthors[i]))
		}
		if i < len(meta.PlainAuthors) {
			author.CreateElement("plain").SetText(strings.TrimSpace(meta.PlainAuthors[i]))
		}
	}

	addText(el, "abstract", meta.Abstract, meta.HTMLAbstract, meta.PlainAbstract)
	return el
}

// addText adds a field with its raw, HTML and plain forms when raw is set.
func addText(parent *etree.Element, tag string, raw, html, plain *string) {
	if raw == nil {
		return
	}
	el := parent.CreateElement(tag)
	el.CreateElement("raw").SetText(*raw)
	if html != nil {
		el.CreateElement("html").SetText(strings.TrimSpace(*html))
	}
	if plain != nil {
		el.CreateElement("plain").SetText(strings.TrimSpace(*plain))
	}
}
