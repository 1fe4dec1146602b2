package tex

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/texmeta"
	"golang.org/x/text/encoding/charmap"
)

// MaxIncludeDepth bounds how deeply includes may nest.
const MaxIncludeDepth = 32

// includeRe matches \input and \include with a braced argument or a bare
// word ended by whitespace, a comment or the end of the text.
var includeRe = regexp.MustCompile(`\\(?:input|include)(?:\s*\{\s*([^{}]+?)\s*\}|[ \t]+([^\s{}%\\]+))`)

// ReadTexFile reads the file at path and inlines every \input and \include
// directive recursively. Included names resolve against the directory of
// the root file and get a .tex extension when they have none. Directives
// that sit in a comment are left in place.
//
// Returns ENOTFOUND when a file does not exist and ECYCLE when a file
// includes itself, directly or not, or nesting exceeds MaxIncludeDepth.
func ReadTexFile(path string) (string, error) {
	return readInlined(path, filepath.Dir(path), nil)
}

// readInlined reads path and inlines its includes. chain holds the absolute
// paths of the files currently being inlined.
func readInlined(path, root string, chain []string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	for _, p := range chain {
		if p == abs {
			return "", texmeta.Errorf(texmeta.ECYCLE, "include cycle: %s", strings.Join(append(chain, abs), " -> "))
		}
	}
	if len(chain) >= MaxIncludeDepth {
		return "", texmeta.Errorf(texmeta.ECYCLE, "includes nested deeper than %d at %s", MaxIncludeDepth, path)
	}

	text, err := readText(path)
	if err != nil {
		return "", err
	}
	chain = append(chain[:len(chain):len(chain)], abs)

	var b strings.Builder
	last := 0
	for _, m := range includeRe.FindAllStringSubmatchIndex(text, -1) {
		if escaped(text, m[0]) || commented(text, m[0]) {
			continue
		}
		name := submatch(text, m, 1)
		if name == "" {
			name = submatch(text, m, 2)
		}

		included, err := readInlined(resolve(root, name), root, chain)
		if err != nil {
			return "", err
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(included)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// readText reads a source file as UTF-8 with LF line endings. Files that
// are not valid UTF-8 are decoded as ISO-8859-1.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", texmeta.Errorf(texmeta.ENOTFOUND, "file not found: %s", path)
	}
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		data, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// resolve returns the file referenced by an include name.
func resolve(root, name string) string {
	if filepath.Ext(name) == "" {
		name += ".tex"
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(root, filepath.FromSlash(name))
}

// commented reports whether an unescaped % precedes pos on its line.
func commented(text string, pos int) bool {
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	return commentIndex(text[start:pos]) >= 0
}

func submatch(text string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}
