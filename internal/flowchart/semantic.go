package flowchart

import (
	"strings"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/quotecheck"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// checkHeader guards against Parse being handed text the router did not
// already classify as flowchart.
func checkHeader(text *source.Text, bag *diag.Bag) bool {
	for line := 1; line <= text.LineCount(); line++ {
		if isBlankOrComment(text.Line(line)) {
			continue
		}
		if headerRe.MatchString(strings.TrimSpace(text.Line(line))) {
			return true
		}
		bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1),
			"expected a flowchart or graph header"))
		return false
	}
	bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1), "empty flowchart"))
	return false
}

var hygieneConfig = quotecheck.Config{
	Noun:              "flowchart label",
	EscapedQuote:      diag.FlLabelEscapedQuote,
	EscapedAsWarning:  true,
	DoubleInSingle:    diag.FlLabelDoubleInSingle,
	DoubleInSingleFix: true,
	DoubleInDouble:    diag.FlLabelDoubleInDouble,
	Unclosed:          diag.FlQuoteUnclosed,
}

// quoteHygiene runs the shared sweeps with flowchart's label regions: the
// quotes a parsed shape label accounts for never feed the parity check, so
// `A["a"] --> B["b"]` stays clean and an inner quote inside one label is
// reported against that label alone.
func quoteHygiene(text *source.Text, bag *diag.Bag) {
	quotecheck.Sweep(text, hygieneConfig, labelRegions(text), bag)
}

// labelRegions finds every quoted label inside a balanced shape delimiter
// pair, mapped to the byte offsets of the label's opening and closing
// quote on its line.
func labelRegions(text *source.Text) []quotecheck.Region {
	var regions []quotecheck.Region
	for line := 1; line <= text.LineCount(); line++ {
		lt := text.Line(line)
		if !strings.ContainsRune(lt, '"') {
			continue
		}
		for _, tk := range scanChain(lt) {
			if tk.isLink {
				continue
			}
			seg := tk.text
			idm := idRe.FindString(seg)
			rest := seg[len(idm):]
			if rest == "" {
				continue
			}
			d, ok := matchOpener(rest)
			if !ok || !strings.HasSuffix(rest, d.closer) || len(rest) < len(d.opener)+len(d.closer) {
				continue
			}
			inner := rest[len(d.opener) : len(rest)-len(d.closer)]
			trimmed := strings.TrimSpace(inner)
			if len(trimmed) < 2 || trimmed[0] != '"' || trimmed[len(trimmed)-1] != '"' {
				continue
			}
			lead := len(inner) - len(strings.TrimLeft(inner, " \t"))
			start := tk.col + len(idm) + len(d.opener) + lead
			regions = append(regions, quotecheck.Region{
				Line:  line,
				Start: start,
				End:   start + len(trimmed) - 1,
			})
		}
	}
	return regions
}
