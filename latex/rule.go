package latex

// RuleKind identifies how a command converts.
type RuleKind int

// Rule kinds.
const (
	// RuleSymbol replaces the command with literal HTML.
	RuleSymbol RuleKind = iota

	// RuleAccent applies a combining mark to the first character of the
	// next argument and composes the result.
	RuleAccent

	// RuleWrap wraps the next argument in an element. An empty element
	// name keeps the argument without markup.
	RuleWrap

	// RuleBreak is a line break; a trailing * or [length] is skipped.
	RuleBreak

	// RuleURL links the next argument to itself.
	RuleURL

	// RuleHref links the second argument to the first.
	RuleHref

	// RuleDocRef links to a catalog document. The handle is Rule.Handle
	// when set and the next argument otherwise.
	RuleDocRef

	// RuleDrop removes the command together with Args arguments.
	RuleDrop
)

// Rule describes how a command converts in each output format.
type Rule struct {
	Kind RuleKind

	// HTML is the replacement for RuleSymbol and RuleBreak, the element
	// name for RuleWrap and the combining mark for RuleAccent.
	HTML string

	// Plain is the same as HTML for plain output.
	Plain string

	// Args is the number of arguments consumed by RuleDrop.
	Args int

	// Handle is the document linked by an argument-free RuleDocRef.
	Handle string
}

func symbol(s string) Rule { return Rule{Kind: RuleSymbol, HTML: s, Plain: s} }

func accent(mark string) Rule { return Rule{Kind: RuleAccent, HTML: mark, Plain: mark} }

func drop(args int) Rule { return Rule{Kind: RuleDrop, Args: args} }

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() map[string]Rule {
	return map[string]Rule{
		// Escaped specials.
		"&":  symbol("&amp;"),
		"%":  symbol("%"),
		"$":  symbol("$"),
		"#":  symbol("#"),
		"_":  symbol("_"),
		"{":  symbol("{"),
		"}":  symbol("}"),
		" ":  symbol(" "),
		"\n": symbol(" "),
		",":  symbol("\u2009"),
		";":  symbol(" "),
		":":  symbol(" "),
		"/":  drop(0),
		"@":  drop(0),
		"-":  drop(0),

		// Named symbols.
		"ldots":             symbol("…"),
		"dots":              symbol("…"),
		"textendash":        symbol("–"),
		"textemdash":        symbol("—"),
		"textbackslash":     symbol(`\`),
		"textasciitilde":    symbol("~"),
		"textbar":           symbol("|"),
		"textless":          symbol("&lt;"),
		"textgreater":       symbol("&gt;"),
		"textquoteleft":     symbol("‘"),
		"textquoteright":    symbol("’"),
		"textquotedblleft":  symbol("“"),
		"textquotedblright": symbol("”"),
		"textdegree":        symbol("°"),
		"textregistered":    symbol("®"),
		"texttrademark":     symbol("™"),
		"copyright":         symbol("©"),
		"S":                 symbol("§"),
		"P":                 symbol("¶"),
		"dag":               symbol("†"),
		"ddag":              symbol("‡"),
		"pounds":            symbol("£"),
		"euro":              symbol("€"),
		"LaTeX":             symbol("LaTeX"),
		"TeX":               symbol("TeX"),
		"ss":                symbol("ß"),
		"o":                 symbol("ø"),
		"O":                 symbol("Ø"),
		"aa":                symbol("å"),
		"AA":                symbol("Å"),
		"ae":                symbol("æ"),
		"AE":                symbol("Æ"),
		"oe":                symbol("œ"),
		"OE":                symbol("Œ"),
		"l":                 symbol("ł"),
		"L":                 symbol("Ł"),
		"i":                 symbol("ı"),
		"j":                 symbol("ȷ"),
		"quad":              symbol("\u2003"),
		"qquad":             symbol("\u2003\u2003"),
		"enspace":           symbol("\u2002"),
		"thinspace":         symbol("\u2009"),
		"nobreakspace":      symbol("\u00a0"),

		// Accents, as combining marks.
		"'": accent("\u0301"),
		"`": accent("\u0300"),
		"^": accent("\u0302"),
		"~": accent("\u0303"),
		`"`: accent("\u0308"),
		"=": accent("\u0304"),
		".": accent("\u0307"),
		"u": accent("\u0306"),
		"v": accent("\u030c"),
		"H": accent("\u030b"),
		"c": accent("\u0327"),
		"k": accent("\u0328"),
		"r": accent("\u030a"),
		"d": accent("\u0323"),
		"b": accent("\u0331"),

		// Formatting.
		"emph":            {Kind: RuleWrap, HTML: "em", Plain: "em"},
		"textit":          {Kind: RuleWrap, HTML: "em", Plain: "em"},
		"textsl":          {Kind: RuleWrap, HTML: "em", Plain: "em"},
		"textbf":          {Kind: RuleWrap, HTML: "strong", Plain: "strong"},
		"texttt":          {Kind: RuleWrap, HTML: "code"},
		"textsuperscript": {Kind: RuleWrap, HTML: "sup"},
		"textsubscript":   {Kind: RuleWrap, HTML: "sub"},
		"textsc":          {Kind: RuleWrap},
		"textrm":          {Kind: RuleWrap},
		"textsf":          {Kind: RuleWrap},
		"textup":          {Kind: RuleWrap},
		"textnormal":      {Kind: RuleWrap},
		"mbox":            {Kind: RuleWrap},
		"text":            {Kind: RuleWrap},

		// Breaks and links.
		`\`:         {Kind: RuleBreak, HTML: "<br />", Plain: "<br />"},
		"newline":   {Kind: RuleBreak, HTML: "<br />", Plain: "<br />"},
		"linebreak": {Kind: RuleBreak, HTML: "<br />", Plain: "<br />"},
		"url":       {Kind: RuleURL},
		"href":      {Kind: RuleHref},

		// Commands without visible output.
		"label":      drop(1),
		"footnote":   drop(1),
		"thanks":     drop(1),
		"index":      drop(1),
		"xspace":     drop(0),
		"protect":    drop(0),
		"relax":      drop(0),
		"noindent":   drop(0),
		"centering":  drop(0),
		"smallskip":  drop(0),
		"medskip":    drop(0),
		"bigskip":    drop(0),
		"par":        drop(0),
		"itshape":    drop(0),
		"bfseries":   drop(0),
		"normalfont": drop(0),
	}
}
