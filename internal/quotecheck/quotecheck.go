// Package quotecheck implements the quote-hygiene sweeps shared by the
// flowchart, sequence, class, and state families: escaped quotes,
// double-quote-inside-single-quote, double-quote-inside-double-quote, and
// the file-wide unterminated-quote parity check. Each family supplies its
// own diagnostic codes and severity via Config; flowchart additionally
// supplies the label regions its shape delimiters establish, so quotes a
// parsed label already accounts for never feed the parity check. Pie runs
// its own label-granular checks inside its parser and does not use this
// package.
package quotecheck

import (
	"regexp"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// Config names the family-specific codes and behavior for one sweep.
type Config struct {
	// Noun is the family's word for the text a quote lives in ("flowchart
	// label", "sequence text"), spliced into messages.
	Noun string

	EscapedQuote diag.Code
	// EscapedAsWarning keeps the escaped-quote diagnostic at warning
	// severity (flowchart only; every other family reports it as an error).
	EscapedAsWarning bool

	DoubleInSingle diag.Code
	// DoubleInSingleFix attaches the &quot; rewrite to DoubleInSingle.
	// Only flowchart's dedicated code carries it; the families that reuse
	// their double-in-double code never auto-fix it.
	DoubleInSingleFix bool

	DoubleInDouble diag.Code

	Unclosed diag.Code
	// UnclosedFix attaches the append-closing-quote repair (heuristic
	// level) to Unclosed.
	UnclosedFix bool
}

// Region marks the byte range of one quoted label on a line, from the
// opening quote's offset to the closing quote's offset inclusive. Quotes
// inside a region are balanced by the label that contains them: an inner
// unescaped quote is reported as double-in-double, and none of the
// region's quotes count toward the unterminated-quote parity.
type Region struct {
	Line  int
	Start int
	End   int
}

var singleQuoted = regexp.MustCompile(`'([^'\n]*)'`)

type quoteAt struct {
	line int
	off  int
}

// Sweep runs every hygiene check over text and records its findings in bag.
func Sweep(text *source.Text, cfg Config, regions []Region, bag *diag.Bag) {
	byLine := make(map[int][]Region, len(regions))
	for _, r := range regions {
		byLine[r.Line] = append(byLine[r.Line], r)
	}

	var loneDoubles []quoteAt
	var loneSingles []quoteAt

	for line := 1; line <= text.LineCount(); line++ {
		lt := text.Line(line)
		scanEscaped(line, lt, cfg, bag)

		singleSpans := singleQuoted.FindAllStringIndex(lt, -1)
		scanDoubleInSingle(line, lt, singleSpans, cfg, bag)

		covered := byLine[line]
		for _, r := range covered {
			scanRegionInner(line, lt, r, cfg, bag)
		}

		free := freeDoubleQuotes(lt, covered, singleSpans)
		if len(free)%2 == 1 && len(free) >= 3 {
			// An odd quote count with an inner quote reads as one label whose
			// unescaped middle quote swallowed the intended closer.
			bag.Add(diag.NewError(cfg.DoubleInDouble, source.Pos(line, free[1]+1).WithLength(1),
				"unescaped double quote inside a double-quoted "+cfg.Noun).
				WithHint(`escape it as \" or &quot;`))
			continue
		}
		for _, off := range free {
			loneDoubles = append(loneDoubles, quoteAt{line, off})
		}
		for _, off := range freeSingleQuotes(lt, covered, free, singleSpans) {
			loneSingles = append(loneSingles, quoteAt{line, off})
		}
	}

	if len(loneDoubles)%2 == 1 {
		q := loneDoubles[len(loneDoubles)-1]
		d := diag.NewError(cfg.Unclosed, source.Pos(q.line, q.off+1),
			"unterminated quoted string").
			WithHint("add the missing closing double quote")
		if cfg.UnclosedFix {
			eol := source.Pos(q.line, text.LineWidth(q.line)+1)
			d = d.WithHeuristicFix("Close the quote", diag.TextEdit{Span: source.Point(eol), NewText: `"`})
		}
		bag.Add(d)
	}
	if len(loneSingles)%2 == 1 {
		q := loneSingles[len(loneSingles)-1]
		bag.Add(diag.NewError(cfg.Unclosed, source.Pos(q.line, q.off+1),
			"unterminated single-quoted string").
			WithHint("add the missing closing single quote"))
	}
}

func scanEscaped(line int, lt string, cfg Config, bag *diag.Bag) {
	for i := 0; i+1 < len(lt); i++ {
		if lt[i] != '\\' || lt[i+1] != '"' {
			continue
		}
		col := i + 1
		msg := "escaped quote in " + cfg.Noun + "; use &quot; instead"
		var d diag.Diagnostic
		if cfg.EscapedAsWarning {
			d = diag.NewWarning(cfg.EscapedQuote, source.Pos(line, col).WithLength(2), msg)
		} else {
			d = diag.NewError(cfg.EscapedQuote, source.Pos(line, col).WithLength(2), msg)
		}
		bag.Add(d.WithHint(`replace \" with &quot;`).
			WithFix("Replace with &quot;", diag.TextEdit{
				Span:    source.NewSpan(source.Pos(line, col), source.Pos(line, col+2)),
				NewText: "&quot;",
			}))
	}
}

func scanDoubleInSingle(line int, lt string, singleSpans [][]int, cfg Config, bag *diag.Bag) {
	for _, span := range singleSpans {
		inner := lt[span[0]+1 : span[1]-1]
		for i := 0; i < len(inner); i++ {
			if inner[i] != '"' || (i > 0 && inner[i-1] == '\\') {
				continue
			}
			col := span[0] + 1 + i + 1
			d := diag.NewError(cfg.DoubleInSingle, source.Pos(line, col).WithLength(1),
				"unescaped double quote inside a single-quoted "+cfg.Noun).
				WithHint("escape it as &quot;")
			if cfg.DoubleInSingleFix {
				d = d.WithFix("Replace with &quot;", diag.TextEdit{
					Span:    source.NewSpan(source.Pos(line, col), source.Pos(line, col+1)),
					NewText: "&quot;",
				})
			}
			bag.Add(d)
			return
		}
	}
}

// scanRegionInner reports unescaped quotes strictly inside a quoted label
// region (between its opening and closing quote).
func scanRegionInner(line int, lt string, r Region, cfg Config, bag *diag.Bag) {
	if r.Start < 0 || r.End >= len(lt) || r.End <= r.Start {
		return
	}
	for i := r.Start + 1; i < r.End; i++ {
		if lt[i] != '"' || (i > 0 && lt[i-1] == '\\') {
			continue
		}
		bag.Add(diag.NewError(cfg.DoubleInDouble, source.Pos(line, i+1).WithLength(1),
			"unescaped double quote inside a double-quoted "+cfg.Noun).
			WithHint(`escape it as \" or &quot;`))
		return
	}
}

// freeDoubleQuotes returns the offsets of unescaped double quotes on lt
// that belong to no label region and sit inside no single-quoted string.
func freeDoubleQuotes(lt string, covered []Region, singleSpans [][]int) []int {
	var free []int
	for i := 0; i < len(lt); i++ {
		if lt[i] != '"' || (i > 0 && lt[i-1] == '\\') {
			continue
		}
		if inRegion(covered, i) || inSpans(singleSpans, i) {
			continue
		}
		free = append(free, i)
	}
	return free
}

// freeSingleQuotes returns the offsets of unescaped single quotes on lt
// outside label regions, outside paired single-quoted strings (their two
// delimiters cancel), and outside paired free double quotes (an apostrophe
// inside "it's" is label text, not a string opener).
func freeSingleQuotes(lt string, covered []Region, freeDoubles []int, singleSpans [][]int) []int {
	var lone []int
	for i := 0; i < len(lt); i++ {
		if lt[i] != '\'' || (i > 0 && lt[i-1] == '\\') {
			continue
		}
		if inRegion(covered, i) || inPairedDoubles(freeDoubles, i) || inSpans(singleSpans, i) {
			continue
		}
		lone = append(lone, i)
	}
	return lone
}

func inRegion(regions []Region, off int) bool {
	for _, r := range regions {
		if off >= r.Start && off <= r.End {
			return true
		}
	}
	return false
}

func inSpans(spans [][]int, off int) bool {
	for _, s := range spans {
		if off >= s[0] && off < s[1] {
			return true
		}
	}
	return false
}

// inPairedDoubles reports whether off falls between the 2k-th and
// (2k+1)-th free double quote on the line, i.e. inside a balanced
// double-quoted string.
func inPairedDoubles(freeDoubles []int, off int) bool {
	for i := 0; i+1 < len(freeDoubles); i += 2 {
		if off > freeDoubles[i] && off < freeDoubles[i+1] {
			return true
		}
	}
	return false
}
