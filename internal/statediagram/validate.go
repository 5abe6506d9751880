package statediagram

import (
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// Validate runs the full state-diagram pipeline (header guard, parse,
// hygiene sweeps) and returns diagnostics in the shared presentation order.
func Validate(text string) []diag.Diagnostic {
	t := source.NewText(text)
	bag := diag.NewBag(0)
	if !checkHeader(t, bag) {
		bag.Sort()
		return bag.Items()
	}
	_, parseBag := Parse(t)
	bag.AddAll(parseBag.Items())
	quoteHygiene(t, bag)
	bag.Dedup()
	bag.SuppressNearGeneric()
	bag.Sort()
	return bag.Items()
}
