// Package source resolves raw diagram text into 1-based line/column
// positions and supports byte-offset <-> line/column conversion for the
// lexers, parsers, and the auto-fix edit engine.
package source

import "strings"

// Position is a 1-based line/column location, optionally carrying the
// length (in code points) of the span it anchors.
type Position struct {
	Line   int
	Column int
	Length int
}

// Pos constructs a Position with no length set.
func Pos(line, column int) Position {
	return Position{Line: line, Column: column}
}

// WithLength returns a copy of p with Length set.
func (p Position) WithLength(n int) Position {
	p.Length = n
	return p
}

// Text wraps a diagram source string and memoizes byte offsets of line
// starts so repeated Offset/LineCol lookups are O(log n).
type Text struct {
	raw        string
	lineStarts []int // byte offset of the first byte of each line (0-based index into raw)
}

// NewText builds a Text over raw source content.
func NewText(raw string) *Text {
	t := &Text{raw: raw}
	t.lineStarts = append(t.lineStarts, 0)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\n' {
			t.lineStarts = append(t.lineStarts, i+1)
		}
	}
	return t
}

// Raw returns the original source text.
func (t *Text) Raw() string { return t.raw }

// LineCount returns the number of lines in the text: one more than the
// number of newlines, so text ending in a newline has an empty last line.
func (t *Text) LineCount() int { return len(t.lineStarts) }

// Line returns the 1-based line's content without its trailing newline.
func (t *Text) Line(line int) string {
	if line < 1 || line > len(t.lineStarts) {
		return ""
	}
	start := t.lineStarts[line-1]
	var end int
	if line == len(t.lineStarts) {
		end = len(t.raw)
	} else {
		end = t.lineStarts[line] - 1
	}
	if end < start {
		end = start
	}
	s := t.raw[start:end]
	return strings.TrimSuffix(s, "\r")
}

// LineCol converts a byte offset into the raw text into a 1-based
// Position (Length is left at zero).
func (t *Text) LineCol(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(t.raw) {
		offset = len(t.raw)
	}
	// binary search for the last lineStart <= offset
	lo, hi := 0, len(t.lineStarts)-1
	line := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if t.lineStarts[mid] <= offset {
			line = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	col := offset - t.lineStarts[line] + 1
	return Position{Line: line + 1, Column: col}
}

// Offset converts a 1-based line/column back into a byte offset into the
// raw text. Columns beyond the line's length clamp to the line's end.
func (t *Text) Offset(line, col int) int {
	if line < 1 {
		line = 1
	}
	if line > len(t.lineStarts) {
		return len(t.raw)
	}
	start := t.lineStarts[line-1]
	lineLen := len(t.Line(line))
	if col < 1 {
		col = 1
	}
	if col-1 > lineLen {
		col = lineLen + 1
	}
	return start + col - 1
}

// LineWidth returns the number of bytes on the given 1-based line,
// excluding its terminator.
func (t *Text) LineWidth(line int) int {
	return len(t.Line(line))
}
