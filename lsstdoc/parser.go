// Package lsstdoc extracts metadata from documents written with the LSST
// lsstdoc LaTeX class.
package lsstdoc

import (
	"regexp"
	"strings"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/latex"
)

// Ensure Parser implements texmeta.Parser at compile time.
var _ texmeta.Parser = (*Parser)(nil)

// Commands read by the parser.
const (
	titleCommand    = "title"
	authorCommand   = "author"
	abstractCommand = "setDocAbstract"
	handleCommand   = "setDocRef"
	classCommand    = "documentclass"
)

// draftOptions are the class options that mark a document as a draft.
var draftOptions = []string{"lsstdraft", "draft"}

var (
	handleRe   = regexp.MustCompile(`^([A-Z]+)-([0-9]+)$`)
	abstractRe = regexp.MustCompile(`(?s)\\begin\s*\{abstract\}(.*?)\\end\s*\{abstract\}`)
)

// Parser reads lsstdoc metadata from a flattened source.
type Parser struct {
	Renderer  *latex.Renderer
	Converter texmeta.Converter
}

// NewParser creates a new Parser.
func NewParser(renderer *latex.Renderer, converter texmeta.Converter) *Parser {
	return &Parser{Renderer: renderer, Converter: converter}
}

// Parse extracts the title, authors, abstract, handle and draft status
// from source.
func (p *Parser) Parse(source string) (*texmeta.ParsedDocument, error) {
	doc := &texmeta.ParsedDocument{
		Authors:      []string{},
		HTMLAuthors:  []string{},
		PlainAuthors: []string{},
	}

	if err := p.parseTitle(source, doc); err != nil {
		return nil, err
	}
	if err := p.parseAuthors(source, doc); err != nil {
		return nil, err
	}
	if err := p.parseAbstract(source, doc); err != nil {
		return nil, err
	}
	if err := parseHandle(source, doc); err != nil {
		return nil, err
	}
	draft, err := isDraft(source)
	if err != nil {
		return nil, err
	}
	doc.IsDraft = draft

	return doc, nil
}

func (p *Parser) parseTitle(source string, doc *texmeta.ParsedDocument) error {
	cmd, err := latex.FindCommand(source, titleCommand)
	if err != nil || cmd == nil {
		return err
	}

	title := rawTitle(cmd.Argument)
	doc.Title = &title
	doc.HTMLTitle = p.html(cmd.Argument)
	if doc.PlainTitle, err = p.plain(cmd.Argument); err != nil {
		return err
	}

	if cmd.Optional == nil {
		return nil
	}
	short := rawTitle(*cmd.Optional)
	doc.ShortTitle = &short
	doc.HTMLShortTitle = p.html(*cmd.Optional)
	doc.PlainShortTitle, err = p.plain(*cmd.Optional)
	return err
}

func (p *Parser) parseAuthors(source string, doc *texmeta.ParsedDocument) error {
	cmd, err := latex.FindCommand(source, authorCommand)
	if err != nil || cmd == nil {
		return err
	}

	for _, entry := range latex.SplitTopLevel(cmd.Argument) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		plain, err := p.plain(entry)
		if err != nil {
			return err
		}
		doc.Authors = append(doc.Authors, entry)
		doc.HTMLAuthors = append(doc.HTMLAuthors, *p.html(entry))
		doc.PlainAuthors = append(doc.PlainAuthors, *plain)
	}
	return nil
}

func (p *Parser) parseAbstract(source string, doc *texmeta.ParsedDocument) error {
	cmd, err := latex.FindCommand(source, abstractCommand)
	if err != nil {
		return err
	}

	var abstract string
	switch {
	case cmd != nil:
		abstract = cmd.Argument
	default:
		m := abstractRe.FindStringSubmatch(source)
		if m == nil {
			return nil
		}
		abstract = m[1]
	}
	abstract = strings.TrimSpace(abstract)
	doc.Abstract = &abstract

	var html strings.Builder
	for _, para := range p.Renderer.RenderParagraphs(abstract, latex.FormatHTML) {
		html.WriteString("<p>" + strings.ReplaceAll(para, "\n", " ") + "</p>\n")
	}
	htmlAbstract := html.String()
	doc.HTMLAbstract = &htmlAbstract

	var plain strings.Builder
	for _, para := range p.Renderer.RenderParagraphs(abstract, latex.FormatPlain) {
		plain.WriteString("<p>" + para + "</p>\n")
	}
	text, err := p.Converter.Convert(plain.String())
	if err != nil {
		return err
	}
	plainAbstract := text + "\n"
	doc.PlainAbstract = &plainAbstract
	return nil
}

func parseHandle(source string, doc *texmeta.ParsedDocument) error {
	cmd, err := latex.FindCommand(source, handleCommand)
	if err != nil || cmd == nil {
		return err
	}

	handle := strings.TrimSpace(cmd.Argument)
	m := handleRe.FindStringSubmatch(handle)
	if m == nil {
		return &texmeta.CommandError{
			Command: handleCommand,
			Text:    handle,
			Reason:  "handle must be SERIES-SERIAL",
		}
	}
	doc.Handle, doc.Series, doc.Serial = handle, m[1], m[2]
	return nil
}

// isDraft reports whether the document class options mark a draft.
func isDraft(source string) (bool, error) {
	cmd, err := latex.FindCommand(source, classCommand)
	if err != nil || cmd == nil || cmd.Optional == nil {
		return false, err
	}
	for _, opt := range strings.Split(*cmd.Optional, ",") {
		opt = strings.TrimSpace(opt)
		for _, draft := range draftOptions {
			if opt == draft {
				return true, nil
			}
		}
	}
	return false, nil
}

// rawTitle replaces \\ line breaks with a space and trims the result.
func rawTitle(src string) string {
	parts := latex.SplitTopLevel(src)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (p *Parser) html(src string) *string {
	s := p.Renderer.RenderInline(src, latex.FormatHTML) + "\n"
	return &s
}

func (p *Parser) plain(src string) (*string, error) {
	text, err := p.Converter.Convert(p.Renderer.RenderInline(src, latex.FormatPlain))
	if err != nil {
		return nil, err
	}
	s := text + "\n"
	return &s, nil
}
