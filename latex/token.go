package latex

import (
	"strings"
	"unicode/utf8"
)

// TokenKind identifies the type of a Token.
type TokenKind int

// Token kinds produced by Tokenize.
const (
	TokenText TokenKind = iota
	TokenCommand
	TokenBeginGroup
	TokenEndGroup
	TokenSpace
	TokenParagraph
)

// Token is a lexical unit of LaTeX source.
type Token struct {
	Kind TokenKind

	// Value holds the text for TokenText, the command name without its
	// backslash for TokenCommand, and " " or "\n" for TokenSpace.
	Value string
}

// Tokenize splits LaTeX source into tokens. Whitespace after a control word
// is swallowed the way TeX does it, up to and including one newline; a
// blank line becomes a TokenParagraph.
func Tokenize(src string) []Token {
	var toks []Token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\\':
			if i+1 >= len(src) {
				toks = append(toks, Token{Kind: TokenText, Value: `\`})
				i++
				continue
			}
			j := i + 1
			if isLetter(src[j]) {
				for j < len(src) && isLetter(src[j]) {
					j++
				}
				toks = append(toks, Token{Kind: TokenCommand, Value: src[i+1 : j]})
				i = skipControlSpace(src, j)
				continue
			}
			_, size := utf8.DecodeRuneInString(src[j:])
			toks = append(toks, Token{Kind: TokenCommand, Value: src[j : j+size]})
			i = j + size
		case c == '{':
			toks = append(toks, Token{Kind: TokenBeginGroup})
			i++
		case c == '}':
			toks = append(toks, Token{Kind: TokenEndGroup})
			i++
		case isSpace(c):
			j := i
			for j < len(src) && isSpace(src[j]) {
				j++
			}
			ws := src[i:j]
			switch n := strings.Count(ws, "\n"); {
			case n >= 2:
				toks = append(toks, Token{Kind: TokenParagraph})
			case n == 1:
				toks = append(toks, Token{Kind: TokenSpace, Value: "\n"})
			default:
				toks = append(toks, Token{Kind: TokenSpace, Value: " "})
			}
			i = j
		default:
			j := i
			for j < len(src) && !isSpecial(src[j]) {
				j++
			}
			toks = append(toks, Token{Kind: TokenText, Value: src[i:j]})
			i = j
		}
	}
	return toks
}

// skipControlSpace returns the offset after the spaces that follow a control
// word. A newline is consumed only when it does not start a blank line.
func skipControlSpace(src string, pos int) int {
	for pos < len(src) && (src[pos] == ' ' || src[pos] == '\t') {
		pos++
	}
	if pos >= len(src) || src[pos] != '\n' {
		return pos
	}
	next := pos + 1
	for next < len(src) && (src[next] == ' ' || src[next] == '\t' || src[next] == '\r') {
		next++
	}
	if next < len(src) && src[next] == '\n' {
		return pos
	}
	return next
}

// Source reconstructs LaTeX text from tokens. Whitespace swallowed after
// control words is not restored.
func Source(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		switch t.Kind {
		case TokenText:
			b.WriteString(t.Value)
		case TokenCommand:
			b.WriteString(`\`)
			b.WriteString(t.Value)
			// Keep a following letter from merging into the control word.
			if isLetter(t.Value[0]) && i+1 < len(toks) && toks[i+1].Kind == TokenText &&
				toks[i+1].Value != "" && isLetter(toks[i+1].Value[0]) {
				b.WriteString(" ")
			}
		case TokenBeginGroup:
			b.WriteString("{")
		case TokenEndGroup:
			b.WriteString("}")
		case TokenSpace:
			b.WriteString(t.Value)
		case TokenParagraph:
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func isSpecial(c byte) bool {
	return c == '\\' || c == '{' || c == '}' || isSpace(c)
}
