package flowchart

import (
	"regexp"
	"strings"
)

// chainTok is one element of a node-chain-with-links statement: either a
// node segment's raw text or a link segment's raw text, each anchored to
// the byte column it started at within the statement's raw line.
type chainTok struct {
	isLink bool
	text   string
	col    int // 0-based byte offset into the line
}

var (
	inlineLabelRe = regexp.MustCompile(`^--[ \t]+([^\n]+?)[ \t]+(-\.->|==>|-->|---)`)
	arrowRe       = regexp.MustCompile(`^(-\.->|==>|-->|---|~~~|->)(\|[^|\n]*\|)?`)
)

// matchLinkAt reports the byte length of a link token starting at s[i:], if
// any, trying the inline-label form before the plain arrow catalog so a
// longer, more specific match always wins.
func matchLinkAt(s string, i int) (int, bool) {
	rest := s[i:]
	if m := inlineLabelRe.FindStringIndex(rest); m != nil && m[0] == 0 {
		return m[1], true
	}
	if m := arrowRe.FindStringIndex(rest); m != nil && m[0] == 0 {
		return m[1], true
	}
	return 0, false
}

// scanChain walks a raw statement line, tracking bracket depth and quote
// state, and emits alternating node/link tokens. Two adjacent node tokens
// with no link between them (e.g. "A B") surface as consecutive isLink
// == false entries, which the caller turns into FL-LINK-MISSING.
func scanChain(line string) []chainTok {
	var toks []chainTok
	depth := 0
	inQuote := false
	var buf strings.Builder
	bufStart := 0

	flush := func() {
		if buf.Len() > 0 {
			toks = append(toks, chainTok{text: buf.String(), col: bufStart})
			buf.Reset()
		}
	}

	i := 0
	for i < len(line) {
		c := line[i]
		if inQuote {
			buf.WriteByte(c)
			if c == '"' {
				inQuote = false
			}
			i++
			continue
		}
		if depth == 0 {
			if n, ok := matchLinkAt(line, i); ok {
				flush()
				toks = append(toks, chainTok{isLink: true, text: line[i : i+n], col: i})
				i += n
				continue
			}
			if c == ' ' || c == '\t' {
				flush()
				i++
				continue
			}
		}
		if c == '"' {
			inQuote = true
		}
		switch c {
		case '[', '(', '{':
			depth++
		case ']', ')', '}':
			if depth > 0 {
				depth--
			}
		}
		if buf.Len() == 0 {
			bufStart = i
		}
		buf.WriteByte(c)
		i++
	}
	flush()
	return toks
}

// parseLink decodes a matched link token into its arrow kind, whether it
// was the invalid bare "->", and any inline label text.
func parseLink(raw string) (kind ArrowKind, invalid bool, label string) {
	if m := inlineLabelRe.FindStringSubmatch(raw); m != nil {
		return arrowKindFor(m[2]), false, strings.TrimSpace(m[1])
	}
	m := arrowRe.FindStringSubmatch(raw)
	if m == nil {
		return ArrowSolid, true, ""
	}
	kind = arrowKindFor(m[1])
	invalid = m[1] == "->"
	if len(m) > 2 && m[2] != "" {
		label = strings.Trim(m[2], "|")
	}
	return
}

func arrowKindFor(op string) ArrowKind {
	switch op {
	case "-.->":
		return ArrowDotted
	case "==>":
		return ArrowThick
	case "---":
		return ArrowOpen
	case "~~~":
		return ArrowInvisible
	default: // "-->" and the invalid bare "->" both render as a solid arrow
		return ArrowSolid
	}
}
