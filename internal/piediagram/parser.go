package piediagram

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// Structure (the header keywords and statement boundaries) comes off the
// lexkit token stream; slice and title bodies are pulled contextually with
// RestOfLine, lexkit's catch-all for free text.
var (
	headerRe    = regexp.MustCompile(`^pie\b(.*)$`)
	trailingNum = regexp.MustCompile(`(-?\d+(?:\.\d+)?)[ \t]*$`)
)

// Parse builds a Diagram from pie diagram source text, recording a
// diagnostic for every grammar violation it finds.
func Parse(text *source.Text) (*Diagram, *diag.Bag) {
	bag := diag.NewBag(0)
	d := &Diagram{}
	lx := newLexer(text)

	tok := lx.Next()
	for tok.Is(KNewline) {
		tok = lx.Next()
	}
	if !tok.Is(KPie) {
		// The router only dispatches pie-headed text here; checkHeader
		// reports the GEN-HEADER-INVALID case before Parse runs.
		return d, bag
	}
	tok = lx.Next()
	if tok.Is(KShowData) {
		d.ShowData = true
		tok = lx.Next()
	}
	if !tok.Is(KNewline) && !tok.Is(KEOF) {
		lx.RestOfLine()
		tok = lx.Next()
	}

	for !tok.Is(KEOF) {
		switch {
		case tok.Is(KNewline):
			// statement boundary
		case tok.Is(KTitle):
			rest, _ := lx.RestOfLine()
			d.HasTitle = true
			d.Title = strings.TrimSpace(rest)
		default:
			// Not a keyword at the start of the statement: rewind to the
			// token's first byte and read the whole slice line as raw text.
			lx.Reposition(text.Offset(tok.Start.Line, tok.Start.Column))
			rest, rtok := lx.RestOfLine()
			if s := parseSliceLine(rtok.Start.Line, rest, rtok.Start.Column-1, bag); s != nil {
				d.Slices = append(d.Slices, *s)
			}
		}
		tok = lx.Next()
	}
	return d, bag
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "%%")
}

// parseSliceLine parses a single `"label" : value` statement, emitting
// the quoting/colon diagnostics with column-accurate positions.
// body has already had indentWidth bytes of leading whitespace stripped.
func parseSliceLine(lineNo int, body string, indentWidth int, bag *diag.Bag) *Slice {
	if body == "" {
		return nil
	}
	startCol := indentWidth + 1
	if body[0] != '"' {
		return parseBareSlice(lineNo, startCol, body, bag)
	}
	return parseQuotedSlice(lineNo, startCol, body, bag)
}

func parseBareSlice(lineNo, startCol int, body string, bag *diag.Bag) *Slice {
	label, rest, hasColon := splitLabelRest(body)
	label = strings.TrimRight(label, " \t")

	bag.Add(diag.NewError(diag.PiLabelRequiresQuotes, source.Pos(lineNo, startCol).WithLength(len(label)),
		"pie slice label must be a quoted string").
		WithHint("wrap the label in double quotes").
		WithFix("Quote the label", diag.TextEdit{
			Span:    source.NewSpan(source.Pos(lineNo, startCol), source.Pos(lineNo, startCol+len(label))),
			NewText: `"` + label + `"`,
		}))

	if !hasColon {
		return missingColonSlice(lineNo, startCol, body, label, bag)
	}

	valueCol := startCol + len(body) - len(rest)
	value, ok := parseValue(lineNo, valueCol, rest, bag)
	if !ok {
		return &Slice{Label: label, Span: lineSpan(lineNo, startCol, body)}
	}
	return &Slice{Label: label, Value: value, Span: lineSpan(lineNo, startCol, body)}
}

func parseQuotedSlice(lineNo, startCol int, body string, bag *diag.Bag) *Slice {
	closeIdx := strings.LastIndex(body[1:], `"`)
	if closeIdx < 0 {
		// Unbalanced quotes: nothing closes the label on this line.
		endCol := startCol + len(body)
		bag.Add(diag.NewError(diag.PiQuoteUnclosed, source.Pos(lineNo, endCol),
			"unterminated quoted label").
			WithHint("add a closing double quote").
			WithHeuristicFix("Close the quote", diag.TextEdit{
				Span:    source.NewSpan(source.Pos(lineNo, endCol), source.Pos(lineNo, endCol)),
				NewText: `"`,
			}))
		return &Slice{Label: strings.TrimSpace(body[1:]), Span: lineSpan(lineNo, startCol, body)}
	}
	closeIdx++ // index within body of the closing quote
	inner := body[1:closeIdx]
	rest := body[closeIdx+1:]

	// The last quote on the line is treated as the closer; any earlier bare
	// quote inside the label is either an escaped quote or an inner
	// unescaped one, both reported against the label content rather than
	// silently accepted as the close.
	label := inner
	if escIdx := strings.Index(inner, `\"`); escIdx >= 0 {
		col := startCol + 1 + escIdx
		bag.Add(diag.NewError(diag.PiLabelEscapedQuote, source.Pos(lineNo, col).WithLength(2),
			`escaped quote in pie label; use &quot; instead`).
			WithHint(`replace \" with &quot;`).
			WithFix("Replace with &quot;", replaceAllEdits(lineNo, startCol+1, inner, `\"`, "&quot;")...))
		label = strings.ReplaceAll(label, `\"`, "&quot;")
	} else if innerIdx := strings.Index(inner, `"`); innerIdx >= 0 {
		col := startCol + 1 + innerIdx
		bag.Add(diag.NewError(diag.PiLabelDoubleInDouble, source.Pos(lineNo, col).WithLength(1),
			"unescaped double quote inside a double-quoted label").
			WithHint(`escape it as \" or &quot;`))
	}
	label = strings.TrimSpace(label)

	restStartCol := startCol + closeIdx + 1
	_, afterColon, hasColon := splitLabelRest(rest)
	if !hasColon {
		return missingColonSlice(lineNo, restStartCol, rest, label, bag)
	}
	valueCol := restStartCol + (len(rest) - len(afterColon))
	value, ok := parseValue(lineNo, valueCol, afterColon, bag)
	if !ok {
		return &Slice{Label: label, Span: lineSpan(lineNo, startCol, body)}
	}
	return &Slice{Label: label, Value: value, Span: lineSpan(lineNo, startCol, body)}
}

// missingColonSlice handles a label with no ':' separator, recovering a
// trailing numeric value when one is present so a fix can be offered.
func missingColonSlice(lineNo, startCol int, afterLabel, label string, bag *diag.Bag) *Slice {
	if m := trailingNum.FindStringSubmatchIndex(afterLabel); m != nil {
		numText := afterLabel[m[2]:m[3]]
		gapCol := startCol + m[0]
		bag.Add(diag.NewError(diag.PiMissingColon, source.Pos(lineNo, gapCol),
			"missing ':' between pie label and value").
			WithHint("insert ' : ' between the label and the number").
			WithFix("Insert ':'", diag.TextEdit{
				Span:    source.NewSpan(source.Pos(lineNo, gapCol), source.Pos(lineNo, gapCol)),
				NewText: " : ",
			}))
		if v, err := strconv.ParseFloat(numText, 64); err == nil {
			return &Slice{Label: label, Value: v}
		}
		return &Slice{Label: label}
	}
	bag.Add(diag.NewError(diag.PiMissingColon,
		source.Pos(lineNo, startCol+len(strings.TrimRight(afterLabel, " \t"))),
		"missing ':' and value for pie slice"))
	return &Slice{Label: label}
}

func parseValue(lineNo, col int, text string, bag *diag.Bag) (float64, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		bag.Add(diag.NewError(diag.PiBadValue, source.Pos(lineNo, col), "missing pie slice value"))
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		bag.Add(diag.NewError(diag.PiBadValue, source.Pos(lineNo, col).WithLength(len(trimmed)),
			"pie slice value must be numeric"))
		return 0, false
	}
	return v, true
}

// splitLabelRest splits body on its first ':' into (before, after, found).
func splitLabelRest(body string) (before, after string, found bool) {
	idx := strings.IndexByte(body, ':')
	if idx < 0 {
		return body, "", false
	}
	return body[:idx], body[idx+1:], true
}

func lineSpan(lineNo, startCol int, body string) source.Span {
	return source.NewSpan(source.Pos(lineNo, startCol), source.Pos(lineNo, startCol+len(body)))
}

func replaceAllEdits(lineNo, baseCol int, s, old, new string) []diag.TextEdit {
	var edits []diag.TextEdit
	start := 0
	for {
		idx := strings.Index(s[start:], old)
		if idx < 0 {
			break
		}
		abs := start + idx
		col := baseCol + abs
		edits = append(edits, diag.TextEdit{
			Span:    source.NewSpan(source.Pos(lineNo, col), source.Pos(lineNo, col+len(old))),
			NewText: new,
		})
		start = abs + len(old)
	}
	return edits
}
