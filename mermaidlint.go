// Package mermaidlint is the library's public API surface: Validate, Fix,
// Render, DetectType, ExtractBlocks, OffsetDiagnostics, ToText, ToJSON.
// It wires together the router, the five per-family
// pipelines, the auto-fix engine, the renderers, the frontmatter reader,
// the Markdown fence extractor, and the diagnostic formatters — every
// other package in this module exists to be called from here.
package mermaidlint

import (
	"fmt"
	"strconv"

	"github.com/probelabs/mermaid-lint/internal/classdiagram"
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/fix"
	"github.com/probelabs/mermaid-lint/internal/flowchart"
	"github.com/probelabs/mermaid-lint/internal/frontmatter"
	"github.com/probelabs/mermaid-lint/internal/mdfence"
	"github.com/probelabs/mermaid-lint/internal/piediagram"
	"github.com/probelabs/mermaid-lint/internal/render"
	"github.com/probelabs/mermaid-lint/internal/report"
	"github.com/probelabs/mermaid-lint/internal/router"
	"github.com/probelabs/mermaid-lint/internal/sequence"
	"github.com/probelabs/mermaid-lint/internal/source"
	"github.com/probelabs/mermaid-lint/internal/statediagram"
)

// Kind re-exports router.Kind so callers never need to import the internal
// package directly.
type Kind = router.Kind

const (
	KindFlowchart Kind = router.Flowchart
	KindPie       Kind = router.Pie
	KindSequence  Kind = router.Sequence
	KindClass     Kind = router.Class
	KindState     Kind = router.State
	KindUnknown   Kind = router.Unknown
)

// Block re-exports mdfence.Block so callers never need to import the
// internal package directly.
type Block = mdfence.Block

// ValidateOptions configures Validate.
type ValidateOptions struct {
	// Strict promotes every warning to error severity before the caller
	// computes an exit code.
	Strict bool
}

// ValidateResult is validate(text, {strict?}) -> {type, diagnostics}.
type ValidateResult struct {
	Type        Kind
	Diagnostics []diag.Diagnostic
}

// FixOptions configures Fix.
type FixOptions struct {
	Level  fix.Level
	Strict bool
}

// FixResult is fix(text, {level?, strict?}) -> {fixed, diagnostics}.
type FixResult struct {
	Fixed       string
	Diagnostics []diag.Diagnostic
}

// RenderOptions configures Render. Width/Height are advisory hints a
// renderer may honor; the exact layout numerics are tunable internals, so
// this module does not force every per-family renderer to thread an
// override through its whole draw path.
type RenderOptions struct {
	Width        float64
	Height       float64
	LayoutEngine string
	Renderer     string
}

// RenderResult is render(text, {...}) -> {vector, model, diagnostics}.
type RenderResult struct {
	Type        Kind
	Vector      string
	Model       any
	Diagnostics []diag.Diagnostic
}

// DetectType reports the diagram family of text. Detection runs on the
// body after an optional frontmatter block has been stripped, never on the
// raw "---" fences, so a frontmatter-prefixed diagram still classifies.
func DetectType(text string) Kind {
	cfg := frontmatter.Parse(text)
	return router.Detect(cfg.Body)
}

// ExtractBlocks returns the mermaid-tagged fenced code blocks found in a
// Markdown document, in document order.
func ExtractBlocks(text string) []Block {
	return mdfence.Extract(text)
}

// OffsetDiagnostics shifts every diagnostic's line by lineOffset; columns,
// codes, and messages are preserved untouched.
func OffsetDiagnostics(diags []diag.Diagnostic, lineOffset int) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(diags))
	for i, d := range diags {
		d.Position.Line += lineOffset
		out[i] = d
	}
	return out
}

// ToJSON converts diagnostics into the machine-readable report shape.
func ToJSON(file string, diags []diag.Diagnostic) report.JSONReport {
	return report.ToJSON(file, diags)
}

// ToText renders the human code-frame report. text must be the same source the diagnostics were produced
// against so line numbers line up with the printed frame.
func ToText(file, text string, diags []diag.Diagnostic, opts report.TextOptions) string {
	return report.ToText(file, source.NewText(text), diags, opts)
}

func validatorFor(kind Kind) fix.Validator {
	switch kind {
	case router.Flowchart:
		return flowchart.Validate
	case router.Pie:
		return piediagram.Validate
	case router.Sequence:
		return sequence.Validate
	case router.Class:
		return classdiagram.Validate
	case router.State:
		return statediagram.Validate
	default:
		return nil
	}
}

// validateBody runs the family pipeline for kind against body, translating
// a downstream panic into a single diag.GenInternal diagnostic at (1,1) so
// no panic ever escapes this package's public operations.
func validateBody(kind Kind, body string) (diags []diag.Diagnostic) {
	validate := validatorFor(kind)
	if validate == nil {
		return []diag.Diagnostic{
			diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1), "no recognized diagram header found"),
		}
	}
	defer func() {
		if r := recover(); r != nil {
			diags = []diag.Diagnostic{
				diag.NewError(diag.GenInternal, source.Pos(1, 1), fmt.Sprintf("internal error in %s validation: %v", kind, r)),
			}
		}
	}()
	return validate(body)
}

// Validate detects the diagram family and runs its full analysis
// pipeline. Diagnostics are reported against
// text's own line numbers even when a frontmatter preamble was stripped
// before the family pipeline ran.
func Validate(text string, opts ValidateOptions) ValidateResult {
	cfg := frontmatter.Parse(text)
	kind := router.Detect(cfg.Body)
	diags := validateBody(kind, cfg.Body)
	if cfg.Present {
		diags = OffsetDiagnostics(diags, cfg.BodyStartLine-1)
	}

	bag := diag.NewBag(0)
	bag.AddAll(diags)
	if opts.Strict {
		bag.PromoteWarnings()
	}
	bag.Sort()
	return ValidateResult{Type: kind, Diagnostics: bag.Items()}
}

// Fix runs the multipass auto-fix loop to a fixed point and returns the
// repaired text along with the diagnostics that remain against it.
func Fix(text string, opts FixOptions) FixResult {
	cfg := frontmatter.Parse(text)
	kind := router.Detect(cfg.Body)
	validate := validatorFor(kind)
	if validate == nil {
		return FixResult{
			Fixed: text,
			Diagnostics: []diag.Diagnostic{
				diag.NewError(diag.GenHeaderInvalid, source.Pos(1, 1), "no recognized diagram header found"),
			},
		}
	}

	fixedBody, diags := fix.Run(cfg.Body, opts.Level, validate)

	fixed := fixedBody
	offset := 0
	if cfg.Present {
		fixed = cfg.Raw + "\n" + fixedBody
		offset = cfg.BodyStartLine - 1
	}
	diags = OffsetDiagnostics(diags, offset)

	bag := diag.NewBag(0)
	bag.AddAll(diags)
	if opts.Strict {
		bag.PromoteWarnings()
	}
	bag.Sort()
	return FixResult{Fixed: fixed, Diagnostics: bag.Items()}
}

// Render parses, lays out, and draws the diagram to SVG. A layout/draw
// failure is terminal for the render call only: it still returns the
// validation diagnostics plus one extra diag.GenInternal entry, alongside
// a small error-message vector image instead of a panic.
func Render(text string, opts RenderOptions) RenderResult {
	cfg := frontmatter.Parse(text)
	kind := router.Detect(cfg.Body)

	diags := validateBody(kind, cfg.Body)
	if cfg.Present {
		diags = OffsetDiagnostics(diags, cfg.BodyStartLine-1)
	}

	svg, model, err := renderBody(kind, cfg.Body, pieThemeFrom(cfg.ThemeVariables))
	if err != nil {
		bag := diag.NewBag(0)
		bag.AddAll(diags)
		bag.Add(diag.NewError(diag.GenInternal, source.Pos(1, 1), fmt.Sprintf("render failed: %v", err)))
		bag.Sort()
		return RenderResult{Type: kind, Vector: errorVector(err), Diagnostics: bag.Items()}
	}

	bag := diag.NewBag(0)
	bag.AddAll(diags)
	bag.Sort()
	return RenderResult{Type: kind, Vector: svg, Model: model, Diagnostics: bag.Items()}
}

// renderBody dispatches to the per-family renderer, recovering a panic
// into a plain error so nothing escapes the public call.
func renderBody(kind Kind, body string, theme render.PieTheme) (svg string, model any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	t := source.NewText(body)
	switch kind {
	case router.Flowchart:
		d, _ := flowchart.Parse(t)
		model = d
		svg = render.Flowchart(d)
	case router.Pie:
		d, _ := piediagram.Parse(t)
		model = d
		svg = render.ApplyPieTheme(render.Pie(d), theme)
	case router.Sequence:
		d, _ := sequence.Parse(t)
		model = d
		svg = render.Sequence(d)
	case router.Class:
		d, _ := classdiagram.Parse(t)
		model = d
		svg = render.Class(d)
	case router.State:
		d, _ := statediagram.Parse(t)
		model = d
		svg = render.State(d)
	default:
		err = fmt.Errorf("unsupported diagram type")
	}
	return
}

func pieThemeFrom(vars map[string]string) render.PieTheme {
	var theme render.PieTheme
	for i := 0; i < 24; i++ {
		if v, ok := vars["pie"+strconv.Itoa(i+1)]; ok {
			theme.Slices[i] = v
		}
	}
	theme.StrokeColor = vars["pieStrokeColor"]
	theme.OuterStrokeWidth = vars["pieOuterStrokeWidth"]
	theme.SectionTextColor = vars["pieSectionTextColor"]
	theme.SectionTextSize = vars["pieSectionTextSize"]
	theme.TitleTextColor = vars["pieTitleTextColor"]
	theme.TitleTextSize = vars["pieTitleTextSize"]
	return theme
}

// errorVector is the placeholder image Render returns instead of
// propagating a layout/draw failure.
func errorVector(err error) string {
	doc := render.NewDoc()
	doc.Open(360, 80)
	doc.Elem("rect", render.A("x", "0"), render.A("y", "0"), render.A("width", "360"), render.A("height", "80"),
		render.A("fill", "#fff5f5"), render.A("stroke", "#c0392b"))
	doc.Text("render error", render.A("x", "12"), render.A("y", "28"),
		render.A("font-size", "14"), render.A("fill", "#c0392b"))
	doc.Text(err.Error(), render.A("x", "12"), render.A("y", "50"),
		render.A("font-size", "11"), render.A("fill", "#7a1f1f"))
	doc.Close()
	return doc.String()
}
