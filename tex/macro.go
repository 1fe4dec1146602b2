package tex

import (
	"regexp"
	"strings"

	"github.com/fwojciec/texmeta"
	"github.com/fwojciec/texmeta/latex"
)

// defineRe matches the commands that introduce a macro definition.
var defineRe = regexp.MustCompile(`\\(?:(?:re)?newcommand|providecommand|def)\*?`)

// controlWordRe matches a backslash followed by a whole control word.
var controlWordRe = regexp.MustCompile(`\\([A-Za-z]+)`)

// excerptLen bounds the source text quoted in a CommandError.
const excerptLen = 60

// definition is a macro definition read from a source.
type definition struct {
	command string
	name    string
	body    string
	params  bool
	end     int
}

// ParseMacros collects the argument-free macro definitions made with
// \newcommand, \renewcommand, \providecommand and \def, and returns them
// with the text stripped of every definition. Definitions that take
// parameters are removed but not recorded.
//
// A definition with a missing name or an unbalanced body returns a
// *texmeta.CommandError.
func ParseMacros(text string) (texmeta.MacroTable, string, error) {
	macros := texmeta.MacroTable{}

	var b strings.Builder
	last := 0
	for _, m := range defineRe.FindAllStringIndex(text, -1) {
		if m[0] < last || escaped(text, m[0]) {
			continue
		}
		if m[1] < len(text) && isLetter(text[m[1]]) {
			continue
		}

		def, err := readDefinition(text, m[0], m[1])
		if err != nil {
			return nil, "", err
		}
		if !def.params {
			if _, ok := macros[def.name]; !ok || def.command != "providecommand" {
				macros[def.name] = def.body
			}
		}

		b.WriteString(text[last:m[0]])
		last = def.end
	}
	b.WriteString(text[last:])
	return macros, b.String(), nil
}

// readDefinition reads the definition whose command spans text[start:pos].
func readDefinition(text string, start, pos int) (*definition, error) {
	def := &definition{command: strings.TrimSuffix(text[start+1:pos], "*")}
	fail := func(reason string) error {
		excerpt := text[start:]
		if len(excerpt) > excerptLen {
			excerpt = excerpt[:excerptLen]
		}
		return &texmeta.CommandError{Command: def.command, Text: excerpt, Reason: reason}
	}

	pos = skipSpace(text, pos)
	switch {
	case pos < len(text) && text[pos] == '{' && def.command != "def":
		group, next, err := latex.ScanGroup(text, pos)
		if err != nil {
			return nil, fail(err.Error())
		}
		name, ok := controlName(strings.TrimSpace(group))
		if !ok {
			return nil, fail("missing macro name")
		}
		def.name = name
		pos = next
	case pos < len(text) && text[pos] == '\\':
		name, n := readControl(text[pos:])
		if name == "" {
			return nil, fail("missing macro name")
		}
		def.name = name
		pos += n
	default:
		return nil, fail("missing macro name")
	}

	if def.command == "def" {
		open := strings.IndexByte(text[pos:], '{')
		if open < 0 {
			return nil, fail(latex.ErrNoArgument.Error())
		}
		def.params = strings.Contains(text[pos:pos+open], "#")
		pos += open
	} else {
		pos = skipSpace(text, pos)
		if pos < len(text) && text[pos] == '[' {
			n, next, err := latex.ScanOptional(text, pos)
			if err != nil {
				return nil, fail(err.Error())
			}
			def.params = strings.TrimSpace(n) != "0"
			pos = skipSpace(text, next)
		}
		if pos < len(text) && text[pos] == '[' {
			_, next, err := latex.ScanOptional(text, pos)
			if err != nil {
				return nil, fail(err.Error())
			}
			pos = skipSpace(text, next)
		}
	}

	body, end, err := latex.ScanGroup(text, pos)
	if err != nil {
		return nil, fail(err.Error())
	}
	def.body = body
	def.end = end
	return def, nil
}

// controlName returns the name of s when s is exactly one control sequence.
func controlName(s string) (string, bool) {
	if !strings.HasPrefix(s, `\`) {
		return "", false
	}
	name, n := readControl(s)
	return name, n == len(s) && name != ""
}

// readControl reads the control word or symbol at the start of s and
// returns its name and length.
func readControl(s string) (string, int) {
	i := 1
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 1 && i < len(s) {
		i++
	}
	return s[1:i], i
}

// ReplaceMacros substitutes every invocation of a macro in the table with
// its replacement text. Only whole control words match, so \product never
// replaces the start of \productowner. A control space written right after
// an invocation becomes a plain space.
//
// Replacement repeats until the text stops changing, so macros may refer to
// other macros. Returns ECYCLE when expansion does not settle within one
// pass per macro.
func ReplaceMacros(text string, macros texmeta.MacroTable) (string, error) {
	for pass := 0; pass <= len(macros); pass++ {
		out, name := replaceOnce(text, macros)
		if name == "" {
			return out, nil
		}
		text = out
	}

	_, name := replaceOnce(text, macros)
	return "", texmeta.Errorf(texmeta.ECYCLE, `macro expansion does not terminate: \%s`, name)
}

// replaceOnce performs one substitution pass. It returns the new text and
// the first macro it replaced, or "" when nothing changed.
func replaceOnce(text string, macros texmeta.MacroTable) (string, string) {
	var b strings.Builder
	var first string
	last := 0
	for _, m := range controlWordRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		value, ok := macros[name]
		if !ok || escaped(text, m[0]) {
			continue
		}
		if first == "" {
			first = name
		}

		b.WriteString(text[last:m[0]])
		b.WriteString(value)
		last = m[1]
		if strings.HasPrefix(text[last:], `\ `) {
			b.WriteString(" ")
			last += 2
		}
	}
	if first == "" {
		return text, ""
	}
	b.WriteString(text[last:])
	return b.String(), first
}
