// Package fs exports catalog documents as files.
package fs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/texmeta"
	"gopkg.in/yaml.v3"
)

// Formatter renders a catalog document as file content.
type Formatter interface {
	// Extension returns the file extension including the leading dot.
	Extension() string

	// Format returns the file content for doc.
	Format(doc *texmeta.Document) ([]byte, error)
}

// DocumentPath returns the path of a document relative to the export
// root: series/handle plus ext.
// Example: LDM-151 → LDM/LDM-151.md
func DocumentPath(doc *texmeta.Document, ext string) (string, error) {
	handle := doc.Handle()
	series := "other"
	if doc.Metadata != nil && doc.Metadata.Series != "" {
		series = doc.Metadata.Series
	}

	path := filepath.Join(series, handle+ext)
	if !filepath.IsLocal(path) || strings.ContainsAny(handle, `/\`) {
		return "", fmt.Errorf("path traversal in handle %q", handle)
	}
	return path, nil
}

// Ensure Markdown implements Formatter at compile time.
var _ Formatter = Markdown{}

// Markdown formats documents as Markdown with YAML frontmatter. The body
// holds the plain title and abstract.
type Markdown struct{}

// frontmatter is the YAML header of an exported Markdown file.
type frontmatter struct {
	Handle     string   `yaml:"handle"`
	Series     string   `yaml:"series"`
	Serial     string   `yaml:"serial"`
	Title      string   `yaml:"title,omitempty"`
	ShortTitle string   `yaml:"short_title,omitempty"`
	Authors    []string `yaml:"authors,omitempty"`
	Draft      bool     `yaml:"draft"`
	Source     string   `yaml:"source"`
	SourceHash string   `yaml:"source_hash,omitempty"`
	Updated    string   `yaml:"updated,omitempty"`
}

// Extension returns ".md".
func (Markdown) Extension() string { return ".md" }

// Format renders doc with YAML frontmatter followed by its title and abstract.
func (Markdown) Format(doc *texmeta.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	meta := doc.Metadata

	fm := frontmatter{
		Handle:     meta.Handle,
		Series:     meta.Series,
		Serial:     meta.Serial,
		Title:      trimmed(meta.PlainTitle),
		ShortTitle: trimmed(meta.PlainShortTitle),
		Draft:      meta.IsDraft,
		Source:     doc.SourcePath,
		SourceHash: doc.SourceHash,
	}
	for _, a := range meta.PlainAuthors {
		fm.Authors = append(fm.Authors, strings.TrimSpace(a))
	}
	if !doc.UpdatedAt.IsZero() {
		fm.Updated = doc.UpdatedAt.Format("2006-01-02")
	}

	header, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n")
	if fm.Title != "" {
		b.WriteString("\n# ")
		b.WriteString(fm.Title)
		b.WriteString("\n")
	}
	if abstract := trimmed(meta.PlainAbstract); abstract != "" {
		b.WriteString("\n")
		b.WriteString(abstract)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
