// Package report formats diagnostics for human consumption (a colorized
// code-frame report) and for machine consumption (JSON).
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// TextOptions configures ToText/WriteText.
type TextOptions struct {
	// Color enables ANSI colorization (github.com/fatih/color).
	Color bool
	// Context is how many lines of source to show before/after the
	// diagnostic's line. Zero defaults to 1: the previous, current, and
	// next source line.
	Context int
}

var structuralInsertionCodes = map[diag.Code]bool{
	diag.SeBlockMissingEnd:    true,
	diag.ClBlockMissingRBrace: true,
	diag.StBlockMissingRBrace: true,
}

// ToText renders diags as the human code-frame report and returns it as a
// string.
func ToText(file string, text *source.Text, diags []diag.Diagnostic, opts TextOptions) string {
	var b strings.Builder
	WriteText(&b, file, text, diags, opts)
	return b.String()
}

// WriteText is ToText streamed to w.
func WriteText(w io.Writer, file string, text *source.Text, diags []diag.Diagnostic, opts TextOptions) {
	prevNoColor := color.NoColor
	defer func() { color.NoColor = prevNoColor }()
	color.NoColor = !opts.Color

	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	lineNumColor := color.New(color.FgBlue)
	caretColor := color.New(color.FgRed, color.Bold)
	hintColor := color.New(color.FgCyan)
	tagColor := color.New(color.FgYellow)

	ctx := opts.Context
	if ctx <= 0 {
		ctx = 1
	}

	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}

		sevStr := d.Severity.String()
		sevColored := sevStr
		switch d.Severity {
		case diag.SevError:
			sevColored = errorColor.Sprint(sevStr)
		case diag.SevWarning:
			sevColored = warningColor.Sprint(sevStr)
		}

		fmt.Fprintf(w, "%s[%s]: %s\n", sevColored, codeColor.Sprint(string(d.Code)), d.Message)
		fmt.Fprintf(w, "  at %s:%d:%d\n", pathColor.Sprint(file), d.Position.Line, d.Position.Column)

		if structuralInsertionCodes[d.Code] && d.Fix != nil && len(d.Fix.Edits) > 0 {
			writeStructuralFrame(w, text, d, lineNumColor, tagColor, caretColor)
		} else {
			writeFrame(w, text, d.Position, ctx, lineNumColor, caretColor)
		}

		if d.Hint != "" {
			for _, line := range strings.Split(d.Hint, "\n") {
				fmt.Fprintf(w, "  %s %s\n", hintColor.Sprint("hint:"), line)
			}
		}
	}
}

func writeFrame(w io.Writer, text *source.Text, pos source.Position, ctx int, lineNumColor, caretColor *color.Color) {
	start := pos.Line - ctx
	if start < 1 {
		start = 1
	}
	end := pos.Line + ctx
	if end > text.LineCount() {
		end = text.LineCount()
	}

	width := len(fmt.Sprintf("%d", end))
	for line := start; line <= end; line++ {
		fmt.Fprintf(w, "  %s | %s\n", lineNumColor.Sprint(pad(line, width)), text.Line(line))
		if line == pos.Line {
			writeCaret(w, text.Line(line), pos, width, caretColor)
		}
	}
}

func writeCaret(w io.Writer, lineText string, pos source.Position, gutterWidth int, caretColor *color.Color) {
	visualCol := runewidth.StringWidth(safeSlice(lineText, pos.Column-1))
	length := pos.Length
	if length <= 0 {
		length = 1
	}
	var underline strings.Builder
	underline.WriteString(strings.Repeat(" ", gutterWidth+3))
	underline.WriteString(strings.Repeat(" ", visualCol))
	for i := 0; i < length; i++ {
		if i == length-1 {
			underline.WriteByte('^')
		} else {
			underline.WriteByte('~')
		}
	}
	fmt.Fprintln(w, caretColor.Sprint(underline.String()))
}

// writeStructuralFrame is the alternate frame for missing-terminator
// diagnostics: print the nearest opening line above
// with a tag, skip intervening lines, then point at the exact suggested
// insertion line with an arrow marker.
func writeStructuralFrame(w io.Writer, text *source.Text, d diag.Diagnostic, lineNumColor, tagColor, caretColor *color.Color) {
	edit := d.Fix.Edits[0]
	insertLine := edit.Span.Start.Line
	// Every non-blank line between an opener and its inserted closer is
	// indented deeper than the closer, so the opener is the nearest line above that is not.
	closer := strings.TrimLeft(edit.NewText, "\n")
	closerIndent := len(closer) - len(strings.TrimLeft(closer, " \t"))
	from := insertLine - 1
	if strings.HasPrefix(edit.NewText, "\n") {
		from = insertLine // the closer is appended after the last line
	}
	openLine := d.Position.Line
	for ln := from; ln >= 1; ln-- {
		if lt := text.Line(ln); strings.TrimSpace(lt) != "" && len(lt)-len(strings.TrimLeft(lt, " \t")) <= closerIndent {
			openLine = ln
			break
		}
	}
	width := len(fmt.Sprintf("%d", insertLine))

	fmt.Fprintf(w, "  %s | %s  %s\n", lineNumColor.Sprint(pad(openLine, width)), text.Line(openLine), tagColor.Sprint("<- open"))
	if insertLine-openLine > 1 {
		fmt.Fprintln(w, "  ...")
	}
	fmt.Fprintf(w, "  %s %s insert here\n", strings.Repeat(" ", width+1), caretColor.Sprint("->"))
}

func pad(n, width int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func safeSlice(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if n > len(s) {
		return s
	}
	return s[:n]
}
