package texmeta

import (
	"context"
	"time"
)

// ParsedDocument holds the metadata extracted from one LaTeX document.
//
// Nullable fields are nil when the governing command never appears and point
// to a (possibly empty) string when it does. A ParsedDocument is built once
// per extraction and is not modified afterwards.
type ParsedDocument struct {
	Title           *string `json:"title" yaml:"title"`
	ShortTitle      *string `json:"shortTitle" yaml:"short_title"`
	HTMLTitle       *string `json:"htmlTitle" yaml:"html_title"`
	HTMLShortTitle  *string `json:"htmlShortTitle" yaml:"html_short_title"`
	PlainTitle      *string `json:"plainTitle" yaml:"plain_title"`
	PlainShortTitle *string `json:"plainShortTitle" yaml:"plain_short_title"`

	Authors      []string `json:"authors" yaml:"authors"`
	HTMLAuthors  []string `json:"htmlAuthors" yaml:"html_authors"`
	PlainAuthors []string `json:"plainAuthors" yaml:"plain_authors"`

	Abstract      *string `json:"abstract" yaml:"abstract"`
	HTMLAbstract  *string `json:"htmlAbstract" yaml:"html_abstract"`
	PlainAbstract *string `json:"plainAbstract" yaml:"plain_abstract"`

	IsDraft bool `json:"isDraft" yaml:"is_draft"`

	Handle string `json:"handle" yaml:"handle"`
	Series string `json:"series" yaml:"series"`
	Serial string `json:"serial" yaml:"serial"`
}

// Document represents a catalog entry for an extracted LaTeX document.
type Document struct {
	ID         string          `json:"id"`
	SourcePath string          `json:"sourcePath"`
	Source     string          `json:"source"`
	SourceHash string          `json:"sourceHash"`
	Metadata   *ParsedDocument `json:"metadata"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourcePath == "" {
		return Errorf(EINVALID, "document source path required")
	}
	if d.Metadata == nil {
		return Errorf(EINVALID, "document metadata required")
	}
	if d.Metadata.Handle == "" {
		return Errorf(EINVALID, "document handle required")
	}
	return nil
}

// Handle returns the catalog handle of the document, or "" without metadata.
func (d *Document) Handle() string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata.Handle
}

// DocumentService represents a service for managing catalog documents.
type DocumentService interface {
	// CreateDocument adds a new document to the catalog.
	// Returns ECONFLICT if a document with the same handle exists.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByHandle retrieves a document by its handle.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByHandle(ctx context.Context, handle string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, ordered by handle.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, handle string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	Handle *string `json:"handle"`
	Series *string `json:"series"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DocumentWriter writes catalog documents to an export target.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
}
