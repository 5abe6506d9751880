package piediagram_test

import (
	"testing"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/piediagram"
	"github.com/probelabs/mermaid-lint/internal/source"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		showData bool
	}{
		{"bare", "pie\n\"Dogs\" : 10\n", false},
		{"showData", "pie showData\n\"Dogs\" : 10\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, bag := piediagram.Parse(source.NewText(tt.input))
			if d.ShowData != tt.showData {
				t.Fatalf("ShowData = %v, want %v", d.ShowData, tt.showData)
			}
			if bag.HasErrors() {
				t.Fatalf("unexpected errors: %+v", bag.Items())
			}
		})
	}
}

func TestParseTitle(t *testing.T) {
	d, bag := piediagram.Parse(source.NewText("pie\ntitle Pets adopted\n\"Dogs\" : 10\n"))
	if !d.HasTitle || d.Title != "Pets adopted" {
		t.Fatalf("title = %q, HasTitle=%v", d.Title, d.HasTitle)
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestParseSlices(t *testing.T) {
	d, bag := piediagram.Parse(source.NewText("pie\n\"Dogs\" : 10\n\"Cats\" : 20.5\n"))
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if len(d.Slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(d.Slices))
	}
	if d.Slices[0].Label != "Dogs" || d.Slices[0].Value != 10 {
		t.Fatalf("slice 0 = %+v", d.Slices[0])
	}
	if d.Slices[1].Label != "Cats" || d.Slices[1].Value != 20.5 {
		t.Fatalf("slice 1 = %+v", d.Slices[1])
	}
}

func TestParseBareLabelRequiresQuotes(t *testing.T) {
	d, bag := piediagram.Parse(source.NewText("pie\nDogs : 10\n"))
	if len(d.Slices) != 1 || d.Slices[0].Label != "Dogs" {
		t.Fatalf("slices = %+v", d.Slices)
	}
	mustHaveCode(t, bag, diag.PiLabelRequiresQuotes)
	fx := mustHaveFix(t, bag, diag.PiLabelRequiresQuotes)
	if fx.Edits[0].NewText != `"Dogs"` {
		t.Fatalf("fix edit = %+v", fx.Edits[0])
	}
}

func TestParseMissingColon(t *testing.T) {
	d, bag := piediagram.Parse(source.NewText("pie\n\"Dogs\" 10\n"))
	if len(d.Slices) != 1 || d.Slices[0].Value != 10 {
		t.Fatalf("slices = %+v", d.Slices)
	}
	mustHaveCode(t, bag, diag.PiMissingColon)
}

func TestParseEscapedQuote(t *testing.T) {
	_, bag := piediagram.Parse(source.NewText(`pie
"Say \"hi\"" : 10
`))
	mustHaveCode(t, bag, diag.PiLabelEscapedQuote)
}

func TestParseUnescapedInnerQuote(t *testing.T) {
	_, bag := piediagram.Parse(source.NewText(`pie
"Say "hi"" : 10
`))
	mustHaveCode(t, bag, diag.PiLabelDoubleInDouble)
	for _, d := range bag.Items() {
		if d.Code == diag.PiLabelDoubleInDouble && d.Fix != nil {
			t.Fatalf("PI-LABEL-DOUBLE-IN-DOUBLE must never carry a fix")
		}
	}
}

func TestParseUnclosedQuote(t *testing.T) {
	_, bag := piediagram.Parse(source.NewText("pie\n\"Dogs : 10\n"))
	fx := mustHaveFix(t, bag, diag.PiQuoteUnclosed)
	if fx.Level != diag.FixHeuristic {
		t.Fatalf("PI-QUOTE-UNCLOSED fix level = %v, want heuristic", fx.Level)
	}
}

func TestValidateUnknownHeader(t *testing.T) {
	diags := piediagram.Validate("flowchart TD\nA --> B\n")
	if len(diags) != 1 || diags[0].Code != diag.GenHeaderInvalid {
		t.Fatalf("diags = %+v", diags)
	}
	if diags[0].Position.Line != 1 || diags[0].Position.Column != 1 {
		t.Fatalf("position = %+v", diags[0].Position)
	}
}

func mustHaveCode(t *testing.T, bag *diag.Bag, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("missing diagnostic %s, got: %+v", code, bag.Items())
	return diag.Diagnostic{}
}

func mustHaveFix(t *testing.T, bag *diag.Bag, code diag.Code) *diag.Fix {
	t.Helper()
	d := mustHaveCode(t, bag, code)
	if d.Fix == nil {
		t.Fatalf("diagnostic %s has no fix", code)
	}
	return d.Fix
}

func TestValidateDiagnosticOrder(t *testing.T) {
	diags := piediagram.Validate("pie\nDogs : 10\n\"Cats\" 5\n")
	want := []diag.Code{diag.PiLabelRequiresQuotes, diag.PiMissingColon}
	if len(diags) != len(want) {
		t.Fatalf("diags = %+v, want codes %v", diags, want)
	}
	for i, c := range want {
		if diags[i].Code != c {
			t.Fatalf("diags[%d].Code = %s, want %s (full: %+v)", i, diags[i].Code, c, diags)
		}
	}
}
