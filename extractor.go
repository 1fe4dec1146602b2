package texmeta

// MacroTable maps a macro name, without its leading backslash, to the text
// that replaces it.
type MacroTable map[string]string

// Normalizer flattens a root LaTeX file and everything it includes into a
// single source with comments removed and macros expanded.
type Normalizer interface {
	// Normalize returns the flattened source for the document at path.
	// Returns ENOTFOUND if an included file does not exist and ECYCLE if
	// includes or macros refer back to themselves.
	Normalize(path string) (string, error)
}

// Parser extracts document metadata from a flattened source.
type Parser interface {
	// Parse returns the metadata found in source. Absent commands leave
	// their fields empty; malformed ones return a *CommandError.
	Parse(source string) (*ParsedDocument, error)
}

// Extractor reads a root LaTeX file and returns its metadata.
type Extractor interface {
	// Extract flattens and parses the document at path. Extraction is
	// all-or-nothing: on error no partial document is returned.
	Extract(path string) (*ParsedDocument, error)
}
