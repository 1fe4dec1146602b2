package latex

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Format selects the output flavour of a Renderer.
type Format int

// Output formats. Both produce HTML fragments; FormatPlain omits links and
// drops unknown commands so that the fragment converts cleanly to prose.
const (
	FormatHTML Format = iota
	FormatPlain
)

// textEscaper escapes HTML specials and applies TeX ligatures for quotes
// and dashes. Longer sequences come first so they win at the same offset.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"---", "—",
	"--", "–",
	"``", "“",
	"''", "”",
	"`", "‘",
	"'", "’",
	"~", "\u00a0",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// Renderer converts LaTeX text to HTML fragments using a rule table.
type Renderer struct {
	Rules map[string]Rule

	// RefURL returns the link target for a document handle, or "" to render
	// the reference as plain text.
	RefURL func(handle string) string
}

// NewRenderer returns a Renderer using rules, or DefaultRules when nil.
func NewRenderer(rules map[string]Rule) *Renderer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Renderer{Rules: rules}
}

// RenderParagraphs renders src as one fragment per paragraph. Blank lines
// outside brace groups separate paragraphs; empty paragraphs are omitted.
func (r *Renderer) RenderParagraphs(src string, format Format) []string {
	var paras []string
	for _, toks := range splitParagraphs(Tokenize(src)) {
		st := &state{r: r, format: format, toks: toks}
		if p := cleanSpace(st.render()); p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// RenderInline renders src as a single fragment without paragraph markup.
func (r *Renderer) RenderInline(src string, format Format) string {
	return strings.Join(r.RenderParagraphs(src, format), "\n")
}

type state struct {
	r      *Renderer
	format Format
	toks   []Token
	pos    int
}

func (s *state) render() string {
	var b strings.Builder
	for s.pos < len(s.toks) {
		t := s.toks[s.pos]
		s.pos++
		switch t.Kind {
		case TokenText:
			b.WriteString(textEscaper.Replace(t.Value))
		case TokenSpace:
			b.WriteString(t.Value)
		case TokenParagraph:
			b.WriteString("\n")
		case TokenCommand:
			s.command(&b, t.Value)
		}
	}
	return b.String()
}

// sub renders a token slice with the same renderer and format.
func (s *state) sub(toks []Token) string {
	st := &state{r: s.r, format: s.format, toks: toks}
	return st.render()
}

func (s *state) pick(rule Rule) string {
	if s.format == FormatHTML {
		return rule.HTML
	}
	return rule.Plain
}

func (s *state) command(b *strings.Builder, name string) {
	rule, ok := s.r.Rules[name]
	if !ok {
		if s.format == FormatHTML {
			b.WriteString(attrEscaper.Replace(`\` + name))
			// The tokenizer swallowed the space ending a control word.
			if isLetter(name[0]) && s.pos < len(s.toks) {
				switch s.toks[s.pos].Kind {
				case TokenText, TokenBeginGroup:
					b.WriteByte(' ')
				}
			}
		}
		return
	}

	switch rule.Kind {
	case RuleSymbol:
		b.WriteString(s.pick(rule))
	case RuleAccent:
		b.WriteString(composeAccent(s.sub(s.nextArg()), s.pick(rule)))
	case RuleWrap:
		inner := s.sub(s.nextArg())
		if tag := s.pick(rule); tag != "" {
			b.WriteString("<" + tag + ">" + inner + "</" + tag + ">")
			return
		}
		b.WriteString(inner)
	case RuleBreak:
		s.skipBreakOptions()
		b.WriteString(s.pick(rule))
	case RuleURL:
		url := strings.TrimSpace(Source(s.nextArg()))
		s.link(b, url, attrEscaper.Replace(url))
	case RuleHref:
		url := strings.TrimSpace(Source(s.nextArg()))
		s.link(b, url, s.sub(s.nextArg()))
	case RuleDocRef:
		handle, label := rule.Handle, name
		if handle == "" {
			handle = strings.TrimSpace(Source(s.nextArg()))
			label = attrEscaper.Replace(handle)
		}
		var url string
		if s.r.RefURL != nil {
			url = s.r.RefURL(handle)
		}
		if s.format == FormatHTML && url != "" {
			b.WriteString("<span>")
			s.link(b, url, label)
			b.WriteString("</span>")
			return
		}
		s.link(b, url, label)
	case RuleDrop:
		for i := 0; i < rule.Args; i++ {
			s.nextArg()
		}
	}
}

// link writes an anchor in HTML output and only the label otherwise.
func (s *state) link(b *strings.Builder, url, label string) {
	if s.format != FormatHTML || url == "" {
		b.WriteString(label)
		return
	}
	b.WriteString(`<a href="` + attrEscaper.Replace(url) + `">` + label + "</a>")
}

// nextArg consumes the next argument: a whole brace group, a single
// command, or the first character of a text run.
func (s *state) nextArg() []Token {
	for s.pos < len(s.toks) && s.toks[s.pos].Kind == TokenSpace {
		s.pos++
	}
	if s.pos >= len(s.toks) {
		return nil
	}

	t := s.toks[s.pos]
	switch t.Kind {
	case TokenBeginGroup:
		depth := 0
		for i := s.pos; i < len(s.toks); i++ {
			switch s.toks[i].Kind {
			case TokenBeginGroup:
				depth++
			case TokenEndGroup:
				depth--
				if depth == 0 {
					arg := s.toks[s.pos+1 : i]
					s.pos = i + 1
					return arg
				}
			}
		}
		arg := s.toks[s.pos+1:]
		s.pos = len(s.toks)
		return arg
	case TokenText:
		_, size := utf8.DecodeRuneInString(t.Value)
		if size < len(t.Value) {
			s.toks[s.pos].Value = t.Value[size:]
			return []Token{{Kind: TokenText, Value: t.Value[:size]}}
		}
		s.pos++
		return []Token{t}
	case TokenCommand:
		s.pos++
		return []Token{t}
	}
	return nil
}

// skipBreakOptions drops a * or [length] written right after a break.
func (s *state) skipBreakOptions() {
	if s.pos >= len(s.toks) || s.toks[s.pos].Kind != TokenText {
		return
	}
	v := strings.TrimPrefix(s.toks[s.pos].Value, "*")
	if strings.HasPrefix(v, "[") {
		if end := strings.IndexByte(v, ']'); end >= 0 {
			v = v[end+1:]
		}
	}
	if v == "" {
		s.pos++
		return
	}
	s.toks[s.pos].Value = v
}

// composeAccent applies a combining mark to the first character of base
// and returns the precomposed form where Unicode has one.
func composeAccent(base, mark string) string {
	if base == "" {
		return mark
	}
	r, size := utf8.DecodeRuneInString(base)
	switch r {
	case 'ı':
		r = 'i'
	case 'ȷ':
		r = 'j'
	}
	return norm.NFC.String(string(r)+mark) + base[size:]
}

// splitParagraphs splits tokens at paragraph breaks outside brace groups.
// Breaks nested inside a group become line breaks.
func splitParagraphs(toks []Token) [][]Token {
	var paras [][]Token
	var cur []Token
	depth := 0
	for _, t := range toks {
		switch t.Kind {
		case TokenBeginGroup:
			depth++
		case TokenEndGroup:
			if depth > 0 {
				depth--
			}
		case TokenParagraph:
			if depth == 0 {
				paras = append(paras, cur)
				cur = nil
				continue
			}
			t = Token{Kind: TokenSpace, Value: "\n"}
		}
		cur = append(cur, t)
	}
	return append(paras, cur)
}

// cleanSpace collapses runs of spaces, trims every line and drops empty
// lines. Non-breaking spaces are kept.
func cleanSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		var b strings.Builder
		prevSpace := false
		for _, r := range line {
			if r == ' ' || r == '\t' || r == '\r' {
				prevSpace = true
				continue
			}
			if prevSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			prevSpace = false
			b.WriteRune(r)
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return strings.Join(out, "\n")
}
