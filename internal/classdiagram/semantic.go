package classdiagram

import (
	"strings"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/quotecheck"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// checkHeader guards against Parse being handed text the router did not
// already classify as class.
func checkHeader(text *source.Text, bag *diag.Bag) bool {
	for line := 1; line <= text.LineCount(); line++ {
		if isBlankOrComment(text.Line(line)) {
			continue
		}
		if headerRe.MatchString(strings.TrimSpace(text.Line(line))) {
			return true
		}
		bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1),
			"expected a classDiagram header"))
		return false
	}
	bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1), "empty class diagram"))
	return false
}

// Hygiene is pinned to error severity across the board for this family;
// only flowchart reports escaped quotes as warnings. Cardinality strings
// like `A "1" -- "many" B` pair up cleanly and never trip the sweeps.
var hygieneConfig = quotecheck.Config{
	Noun:           "class diagram text",
	EscapedQuote:   diag.ClLabelEscapedQuote,
	DoubleInSingle: diag.ClLabelDoubleInDouble,
	DoubleInDouble: diag.ClLabelDoubleInDouble,
	Unclosed:       diag.ClQuoteUnclosed,
}

func quoteHygiene(text *source.Text, bag *diag.Bag) {
	quotecheck.Sweep(text, hygieneConfig, nil, bag)
}
