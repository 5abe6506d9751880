package statediagram

import (
	"strings"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/quotecheck"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// checkHeader guards against Parse being handed text the router did not
// already classify as state.
func checkHeader(text *source.Text, bag *diag.Bag) bool {
	for line := 1; line <= text.LineCount(); line++ {
		if isBlankOrComment(text.Line(line)) {
			continue
		}
		if headerRe.MatchString(strings.TrimSpace(text.Line(line))) {
			return true
		}
		bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1),
			"expected a stateDiagram header"))
		return false
	}
	bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1), "empty state diagram"))
	return false
}

// Hygiene is pinned to error severity for this family, same as class.
var hygieneConfig = quotecheck.Config{
	Noun:           "state diagram text",
	EscapedQuote:   diag.StLabelEscapedQuote,
	DoubleInSingle: diag.StLabelDoubleInDouble,
	DoubleInDouble: diag.StLabelDoubleInDouble,
	Unclosed:       diag.StQuoteUnclosed,
}

func quoteHygiene(text *source.Text, bag *diag.Bag) {
	quotecheck.Sweep(text, hygieneConfig, nil, bag)
}
