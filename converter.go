package texmeta

// Converter converts rendered HTML to plain text.
type Converter interface {
	// Convert transforms an HTML fragment into plain prose.
	// Emphasis may survive as lightweight markup; links and tags do not.
	// Returns "" for empty input.
	Convert(html string) (string, error)
}
