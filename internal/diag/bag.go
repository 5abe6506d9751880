package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag holds a bounded collection of diagnostics produced across one
// validate/fix/render call. It is a plain accumulator: no component holds
// one across calls, so no state ever leaks between calls.
type Bag struct {
	items   []Diagnostic
	maximum uint16
}

// NewBag creates a Bag capped at maximum diagnostics. A non-positive
// maximum is treated as unbounded up to uint16's range.
func NewBag(maximum int) *Bag {
	if maximum <= 0 {
		maximum = 1 << 16 - 1
	}
	cap16, err := safecast.Conv[uint16](maximum)
	if err != nil {
		cap16 = 1<<16 - 1
	}
	return &Bag{items: make([]Diagnostic, 0, min(int(cap16), 64)), maximum: cap16}
}

// Add appends a diagnostic, returning false if the bag is already full.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.maximum) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll appends every diagnostic in ds, stopping early once the bag fills.
func (b *Bag) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		if !b.Add(d) {
			return
		}
	}
}

// Items returns the diagnostics collected so far. Callers must not mutate
// the returned slice; it aliases the Bag's backing array.
func (b *Bag) Items() []Diagnostic { return b.items }

// Len reports how many diagnostics are in the bag.
func (b *Bag) Len() int { return len(b.items) }

// HasErrors reports whether any diagnostic carries error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any diagnostic carries warning severity.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity == SevWarning {
			return true
		}
	}
	return false
}

// Counts returns the number of error- and warning-severity diagnostics.
func (b *Bag) Counts() (errors, warnings int) {
	for _, d := range b.items {
		if d.Severity == SevError {
			errors++
		} else {
			warnings++
		}
	}
	return
}

// Sort orders diagnostics by position (line, then column), then by
// descending severity, then by code, giving a stable and deterministic
// presentation order independent of discovery order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Position.Line != dj.Position.Line {
			return di.Position.Line < dj.Position.Line
		}
		if di.Position.Column != dj.Position.Column {
			return di.Position.Column < dj.Position.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup removes diagnostics that share both Code and Position, keeping the
// first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s@%d:%d", d.Code, d.Position.Line, d.Position.Column)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}

// Filter removes diagnostics for which keep returns false.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		if keep(d) {
			out = append(out, d)
		}
	}
	b.items = out
}

// PromoteWarnings rewrites every warning-severity diagnostic to error
// severity in place. Used to implement the --strict / {strict:true} option.
func (b *Bag) PromoteWarnings() {
	for i := range b.items {
		if b.items[i].Severity == SevWarning {
			b.items[i].Severity = SevError
		}
	}
}

// SuppressNearGeneric drops generic, code-less diagnostics that sit within
// +/-2 columns of a family-coded diagnostic on the same line: a specific
// diagnosis always wins over a vague parser-derived one at essentially
// the same spot.
func (b *Bag) SuppressNearGeneric() {
	coded := make(map[int][]int) // line -> columns of coded diagnostics
	for _, d := range b.items {
		if d.Code != "" {
			coded[d.Position.Line] = append(coded[d.Position.Line], d.Position.Column)
		}
	}
	b.Filter(func(d Diagnostic) bool {
		if d.Code != "" {
			return true
		}
		for _, col := range coded[d.Position.Line] {
			if abs(col-d.Position.Column) <= 2 {
				return false
			}
		}
		return true
	})
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
