// Package tex flattens LaTeX sources.
//
// A root file is read together with everything it includes, comments are
// stripped, argument-free macro definitions are expanded and trailing
// whitespace is trimmed. The result is a single source that the document
// parsers can search without following references.
package tex

import (
	"strings"

	"github.com/fwojciec/texmeta"
)

// Ensure Normalizer implements texmeta.Normalizer at compile time.
var _ texmeta.Normalizer = (*Normalizer)(nil)

// Normalizer produces the flattened source of a LaTeX document.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize reads the document at path and returns its flattened source.
// Includes are resolved before comments are removed, comments before
// macros are expanded, and macros before whitespace is trimmed.
func (n *Normalizer) Normalize(path string) (string, error) {
	text, err := ReadTexFile(path)
	if err != nil {
		return "", err
	}

	text = RemoveComments(text)

	macros, text, err := ParseMacros(text)
	if err != nil {
		return "", err
	}

	text, err = ReplaceMacros(text, macros)
	if err != nil {
		return "", err
	}

	return RemoveTrailingWhitespace(text), nil
}

// RemoveComments drops everything from an unescaped % to the end of its
// line. The newline itself is kept and \% is left as literal text.
func RemoveComments(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if j := commentIndex(line); j >= 0 {
			lines[i] = line[:j]
		}
	}
	return strings.Join(lines, "\n")
}

// RemoveTrailingWhitespace strips trailing spaces and tabs from every line.
func RemoveTrailingWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// commentIndex returns the offset of the first unescaped % in line, or -1.
func commentIndex(line string) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '%':
			return i
		}
	}
	return -1
}

// escaped reports whether the backslash at pos is preceded by an odd run of
// backslashes.
func escaped(text string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

func skipSpace(text string, pos int) int {
	for pos < len(text) && strings.IndexByte(" \t\r\n", text[pos]) >= 0 {
		pos++
	}
	return pos
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
