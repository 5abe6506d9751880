// Package fix implements the auto-fix engine: a multipass
// validate-then-edit loop that runs to a fixed point (or a hard ceiling
// of five iterations), plus the text-edit application used by every
// per-code fix generator.
package fix

import (
	"sort"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

// Level selects how aggressive the auto-fix pass is.
type Level uint8

const (
	LevelSafe Level = iota
	LevelAll
)

// MaxPasses bounds the multipass loop.
const MaxPasses = 5

// Validator runs the full validation pipeline for a family and returns its
// diagnostics sorted by position (line, then column), then severity, then
// code; the order in which the pipeline stages found them is not kept.
type Validator func(text string) []diag.Diagnostic

// Run applies Validator/Apply repeatedly until a fixed point, a pass makes
// no change, or MaxPasses is reached. It returns the final text and the
// diagnostics remaining against it.
func Run(text string, level Level, validate Validator) (string, []diag.Diagnostic) {
	current := text
	var diags []diag.Diagnostic
	for pass := 0; pass < MaxPasses; pass++ {
		diags = validate(current)
		next, changed := ApplyOnce(current, diags, level)
		if !changed {
			return current, diags
		}
		current = next
	}
	diags = validate(current)
	return current, diags
}

// ApplyOnce generates edits for every diagnostic carrying a Fix at or
// below level, applies the non-conflicting subset, and reports whether the
// text changed.
func ApplyOnce(text string, diags []diag.Diagnostic, level Level) (string, bool) {
	var edits []diag.TextEdit
	for _, d := range diags {
		if d.Fix == nil {
			continue
		}
		if d.Fix.Level == diag.FixHeuristic && level != LevelAll {
			continue
		}
		edits = append(edits, d.Fix.Edits...)
	}
	if len(edits) == 0 {
		return text, false
	}
	out := Apply(text, edits)
	return out, out != text
}

// Apply applies edits to text. Edits are sorted by descending start
// position so earlier edits never see offsets shifted by later ones.
// Overlapping edits conflict; the earlier-generated one (by original
// slice order) wins and the conflicting edit is discarded.
func Apply(text string, edits []diag.TextEdit) string {
	if len(edits) == 0 {
		return text
	}

	// Conflicts resolve in generation order: the earlier-generated edit
	// wins and the overlapping later one is discarded.
	accepted := make([]diag.TextEdit, 0, len(edits))
	for _, e := range edits {
		conflict := false
		for _, a := range accepted {
			if e.Span.Overlaps(a.Span) {
				conflict = true
				break
			}
		}
		if !conflict {
			accepted = append(accepted, e)
		}
	}

	// Application happens back to front so earlier edits never see offsets
	// shifted by later ones.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[j].Span.Before(accepted[i].Span)
	})

	t := source.NewText(text)
	out := text
	for _, e := range accepted {
		start := t.Offset(e.Span.Start.Line, e.Span.Start.Column)
		end := t.Offset(e.Span.End.Line, e.Span.End.Column)
		out = out[:start] + e.NewText + out[end:]
	}
	return out
}
