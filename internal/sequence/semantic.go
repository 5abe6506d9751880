package sequence

import (
	"strings"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/quotecheck"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// checkHeader guards against Parse being handed text the router did not
// already classify as sequence.
func checkHeader(text *source.Text, bag *diag.Bag) bool {
	for line := 1; line <= text.LineCount(); line++ {
		if isBlankOrComment(text.Line(line)) {
			continue
		}
		if headerRe.MatchString(strings.TrimSpace(text.Line(line))) {
			return true
		}
		bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1),
			"expected a sequenceDiagram header"))
		return false
	}
	bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1), "empty sequence diagram"))
	return false
}

var hygieneConfig = quotecheck.Config{
	Noun:           "sequence text",
	EscapedQuote:   diag.SeLabelEscapedQuote,
	DoubleInSingle: diag.SeLabelDoubleInDouble,
	DoubleInDouble: diag.SeLabelDoubleInDouble,
	Unclosed:       diag.SeQuoteUnclosed,
	UnclosedFix:    true,
}

func quoteHygiene(text *source.Text, bag *diag.Bag) {
	quotecheck.Sweep(text, hygieneConfig, nil, bag)
}
