package piediagram

import (
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// checkHeader guards against Parse being handed text the router did not
// already classify as pie: unknown-diagram input yields a single
// GEN-HEADER-INVALID at (1,1).
func checkHeader(text *source.Text, bag *diag.Bag) bool {
	lineCount := text.LineCount()
	for line := 1; line <= lineCount; line++ {
		if isBlankOrComment(text.Line(line)) {
			continue
		}
		if headerRe.MatchString(trimLeftSpace(text.Line(line))) {
			return true
		}
		bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1),
			"expected a pie diagram header"))
		return false
	}
	bag.Add(diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1),
		"empty pie diagram"))
	return false
}

func trimLeftSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}
