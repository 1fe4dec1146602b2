package texmeta

import "strings"

// FormatDocuments formats catalog documents for display.
// Uses the plain title if available, falls back to the source path.
// Documents are separated by blank lines.
func FormatDocuments(docs []*Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, FormatDocument(doc))
	}

	return strings.Join(parts, "\n\n")
}

// FormatDocument formats a single catalog document as a heading followed by
// its authors and plain-text abstract.
func FormatDocument(doc *Document) string {
	meta := doc.Metadata
	if meta == nil {
		meta = &ParsedDocument{}
	}

	header := doc.SourcePath
	if meta.PlainTitle != nil && strings.TrimSpace(*meta.PlainTitle) != "" {
		header = strings.TrimSpace(*meta.PlainTitle)
	}
	if meta.Handle != "" {
		header = meta.Handle + ": " + header
	}
	if meta.IsDraft {
		header += " (draft)"
	}

	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(header)

	if len(meta.PlainAuthors) > 0 {
		authors := make([]string, 0, len(meta.PlainAuthors))
		for _, a := range meta.PlainAuthors {
			authors = append(authors, strings.TrimSpace(a))
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(authors, ", "))
	}

	if meta.PlainAbstract != nil && strings.TrimSpace(*meta.PlainAbstract) != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimSpace(*meta.PlainAbstract))
	}

	return b.String()
}
