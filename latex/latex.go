// Package latex provides lightweight LaTeX scanning and rendering.
//
// There is no TeX engine here. Commands are located with regular expressions
// and their arguments are read by a brace-counting scanner; argument text is
// tokenized and rendered to HTML through an explicit table of rules.
package latex

import (
	"errors"
	"regexp"
	"strings"

	"github.com/fwojciec/texmeta"
)

// Scanner errors.
var (
	ErrUnbalanced = errors.New("unbalanced braces")
	ErrNoArgument = errors.New("missing argument")
)

// excerptLen bounds the source text quoted in a CommandError.
const excerptLen = 60

// Command is a command invocation located in a source.
type Command struct {
	// Name is the command name without the leading backslash.
	Name string

	// Start and End are the byte offsets of the whole invocation.
	Start int
	End   int

	// Optional is the content of a leading [...] argument, nil if absent.
	Optional *string

	// Argument is the content of the mandatory {...} argument.
	Argument string
}

// FindCommand returns the first invocation of the command name in src,
// including its optional and mandatory arguments. It returns nil and no
// error when the command does not appear. An invocation whose argument is
// missing or has unbalanced braces returns a *texmeta.CommandError.
func FindCommand(src, name string) (*Command, error) {
	start, end, ok := locate(src, name)
	if !ok {
		return nil, nil
	}

	cmd := &Command{Name: name, Start: start}
	pos := skipSpace(src, end)

	if pos < len(src) && src[pos] == '[' {
		opt, next, err := ScanOptional(src, pos)
		if err != nil {
			return nil, commandError(name, src, start, err)
		}
		cmd.Optional = &opt
		pos = skipSpace(src, next)
	}

	arg, next, err := ScanGroup(src, pos)
	if err != nil {
		return nil, commandError(name, src, start, err)
	}
	cmd.Argument = arg
	cmd.End = next
	return cmd, nil
}

// HasCommand reports whether the command name is invoked anywhere in src.
func HasCommand(src, name string) bool {
	_, _, ok := locate(src, name)
	return ok
}

// locate finds the first \name that is neither escaped nor the prefix of a
// longer control word.
func locate(src, name string) (int, int, bool) {
	re := regexp.MustCompile(`\\` + regexp.QuoteMeta(name))
	for _, m := range re.FindAllStringIndex(src, -1) {
		if m[1] < len(src) && isLetter(src[m[1]]) {
			continue
		}
		if escaped(src, m[0]) {
			continue
		}
		return m[0], m[1], true
	}
	return 0, 0, false
}

// escaped reports whether the backslash at pos is itself escaped by an odd
// run of preceding backslashes.
func escaped(src string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && src[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// ScanGroup reads the brace-delimited group that opens at src[open]. It
// returns the group content and the offset just past the closing brace.
// Escaped braces and backslashes do not affect the depth count.
func ScanGroup(src string, open int) (string, int, error) {
	if open >= len(src) || src[open] != '{' {
		return "", open, ErrNoArgument
	}

	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open+1 : i], i + 1, nil
			}
		}
	}
	return "", open, ErrUnbalanced
}

// ScanOptional reads the bracket-delimited optional argument that opens at
// src[open]. Brackets nested inside braces do not close it.
func ScanOptional(src string, open int) (string, int, error) {
	if open >= len(src) || src[open] != '[' {
		return "", open, ErrNoArgument
	}

	depth := 0
	for i := open + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return "", open, ErrUnbalanced
			}
		case ']':
			if depth == 0 {
				return src[open+1 : i], i + 1, nil
			}
		}
	}
	return "", open, ErrUnbalanced
}

// SplitTopLevel splits src at every \\ line break and \and separator that
// is not nested inside a brace group.
func SplitTopLevel(src string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
		case '\\':
			if depth == 0 && i+1 < len(src) && src[i+1] == '\\' {
				parts = append(parts, src[last:i])
				i = skipBreakOptions(src, i+2) - 1
				last = i + 1
				continue
			}
			if depth == 0 && strings.HasPrefix(src[i:], `\and`) &&
				(i+4 >= len(src) || !isLetter(src[i+4])) {
				parts = append(parts, src[last:i])
				i += 3
				last = i + 1
				continue
			}
			i++
		}
	}
	return append(parts, src[last:])
}

// skipBreakOptions skips the star and [length] that may follow \\.
func skipBreakOptions(src string, pos int) int {
	if pos < len(src) && src[pos] == '*' {
		pos++
	}
	if pos < len(src) && src[pos] == '[' {
		if _, next, err := ScanOptional(src, pos); err == nil {
			return next
		}
	}
	return pos
}

func commandError(name, src string, start int, err error) error {
	excerpt := src[start:]
	if len(excerpt) > excerptLen {
		excerpt = excerpt[:excerptLen]
	}
	return &texmeta.CommandError{Command: name, Text: excerpt, Reason: err.Error()}
}

func skipSpace(src string, pos int) int {
	for pos < len(src) && isSpace(src[pos]) {
		pos++
	}
	return pos
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
