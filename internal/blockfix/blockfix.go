// Package blockfix generates the insertion edit shared by every family
// whose grammar nests an opener/closer pair that can be left unclosed:
// sequence's "end" for alt/opt/loop/par/critical/break/rect/box, and
// class/state's "}" for member and composite blocks. Each family's
// diagnostic differs; the repair shape does not, so it lives here once
// instead of three times.
package blockfix

import (
	"strings"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// ClosingEdit builds the edit that inserts closerText, preserving the
// opener's indentation, at the earliest outdented position after the
// block's body (or at file end). openStartLine is the line the opener
// itself was on; openerIndent is that line's indentation.
func ClosingEdit(text *source.Text, openStartLine, openerIndent int, closerText string) diag.TextEdit {
	lineCount := text.LineCount()
	insertBefore := lineCount + 1

	for ln := openStartLine + 1; ln <= lineCount; ln++ {
		raw := text.Line(ln)
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			// The synthetic trailing blank line produced by a final newline
			// is file end in disguise: insert directly there rather than
			// appending past it, so no extra blank line is introduced.
			if ln == lineCount {
				insertBefore = ln
			}
			continue
		}
		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
		if indent <= openerIndent {
			insertBefore = ln
			break
		}
	}

	indentStr := strings.Repeat(" ", openerIndent)
	if insertBefore <= lineCount {
		pos := source.Pos(insertBefore, 1)
		return diag.TextEdit{Span: source.Point(pos), NewText: indentStr + closerText + "\n"}
	}

	lastLine := lineCount
	width := text.LineWidth(lastLine)
	pos := source.Pos(lastLine, width+1)
	return diag.TextEdit{Span: source.Point(pos), NewText: "\n" + indentStr + closerText}
}
