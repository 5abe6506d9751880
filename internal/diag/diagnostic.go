package diag

import "github.com/probelabs/mermaid-lint/internal/source"

// TextEdit describes a textual change over a half-open source.Span.
//   - Insertion: Span.Start == Span.End, NewText != "".
//   - Deletion:  Span.Start <  Span.End, NewText == "".
//   - Replace:   Span.Start <  Span.End, NewText != "".
//
// Edits are pure values. The fix engine composes them by applying to the
// text from the last position to the first, so earlier edits never see an
// offset shifted by a later one.
type TextEdit struct {
	Span    source.Span
	NewText string
}

// FixLevel marks how aggressive a fix is. Safe fixes apply at both
// auto-fix levels; Heuristic fixes only apply at level "all".
type FixLevel uint8

const (
	FixSafe FixLevel = iota
	FixHeuristic
)

// Fix bundles one or more edits that repair a single diagnostic.
type Fix struct {
	Title string
	Level FixLevel
	Edits []TextEdit
}

// Diagnostic is a single error or warning, pinpointed by position, with a
// stable machine-readable code and an optional human hint. Diagnostics are
// value objects and are never mutated after construction.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Position source.Position
	Message  string
	Hint     string
	Fix      *Fix
}

// New builds a Diagnostic with no fix or hint attached.
func New(sev Severity, code Code, pos source.Position, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Position: pos, Message: msg}
}

// NewError builds an error-severity Diagnostic.
func NewError(code Code, pos source.Position, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

// NewWarning builds a warning-severity Diagnostic.
func NewWarning(code Code, pos source.Position, msg string) Diagnostic {
	return New(SevWarning, code, pos, msg)
}

// WithHint attaches a human hint and returns the updated value.
func (d Diagnostic) WithHint(hint string) Diagnostic {
	d.Hint = hint
	return d
}

// WithFix attaches a safe-level repair fix and returns the updated value.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fix = &Fix{Title: title, Level: FixSafe, Edits: edits}
	return d
}

// WithHeuristicFix attaches an all-level-only repair fix.
func (d Diagnostic) WithHeuristicFix(title string, edits ...TextEdit) Diagnostic {
	d.Fix = &Fix{Title: title, Level: FixHeuristic, Edits: edits}
	return d
}
