package mermaidlint_test

import (
	"strings"
	"testing"

	mermaidlint "github.com/probelabs/mermaid-lint"
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/fix"
	"github.com/probelabs/mermaid-lint/internal/report"
)

func TestValidateFlowchartArrowInvalid(t *testing.T) {
	res := mermaidlint.Validate("flowchart TD\nA -> B\n", mermaidlint.ValidateOptions{})
	if res.Type != mermaidlint.KindFlowchart {
		t.Fatalf("Type = %v, want flowchart", res.Type)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.FlArrowInvalid {
		t.Fatalf("Diagnostics = %+v", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Position.Line != 2 || d.Position.Column != 3 || d.Position.Length != 2 {
		t.Fatalf("Position = %+v, want 2:3 len 2", d.Position)
	}
}

func TestValidatePieMissingQuotes(t *testing.T) {
	res := mermaidlint.Validate("pie\nDogs : 10\n", mermaidlint.ValidateOptions{})
	if res.Type != mermaidlint.KindPie {
		t.Fatalf("Type = %v, want pie", res.Type)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.PiLabelRequiresQuotes {
		t.Fatalf("Diagnostics = %+v", res.Diagnostics)
	}
}

func TestValidateUnknownHeader(t *testing.T) {
	res := mermaidlint.Validate("not a diagram\njust text\n", mermaidlint.ValidateOptions{})
	if res.Type != mermaidlint.KindUnknown {
		t.Fatalf("Type = %v, want unknown", res.Type)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.GenHeaderInvalid {
		t.Fatalf("Diagnostics = %+v", res.Diagnostics)
	}
	if res.Diagnostics[0].Position.Line != 1 || res.Diagnostics[0].Position.Column != 1 {
		t.Fatalf("Position = %+v, want (1,1)", res.Diagnostics[0].Position)
	}
}

func TestValidateStrictPromotesWarnings(t *testing.T) {
	text := "flowchart TD\n    A[\"x\\\"y\"] --> B[z]\n"
	plain := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
	strict := mermaidlint.Validate(text, mermaidlint.ValidateOptions{Strict: true})
	if len(plain.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic from escaped-quote hygiene")
	}
	for _, d := range plain.Diagnostics {
		if d.Code == diag.FlLabelEscapedQuote && d.Severity != diag.SevWarning {
			t.Fatalf("expected FL-LABEL-ESCAPED-QUOTE to be a warning by default")
		}
	}
	for _, d := range strict.Diagnostics {
		if d.Severity == diag.SevWarning {
			t.Fatalf("strict mode left a warning unpromoted: %+v", d)
		}
	}
}

func TestFixFlowchartArrow(t *testing.T) {
	res := mermaidlint.Fix("flowchart TD\nA -> B\n", mermaidlint.FixOptions{Level: fix.LevelSafe})
	want := "flowchart TD\nA --> B\n"
	if res.Fixed != want {
		t.Fatalf("Fixed = %q, want %q", res.Fixed, want)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %+v, want none after fix", res.Diagnostics)
	}
}

func TestFixPieMissingQuotes(t *testing.T) {
	res := mermaidlint.Fix("pie\nDogs : 10\n", mermaidlint.FixOptions{Level: fix.LevelSafe})
	want := "pie\n\"Dogs\" : 10\n"
	if res.Fixed != want {
		t.Fatalf("Fixed = %q, want %q", res.Fixed, want)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %+v, want none after fix", res.Diagnostics)
	}
}

func TestValidateFlowchartEmptyNodes(t *testing.T) {
	text := "flowchart TD\n    A[\"\\\"] --> B[\" \"]\n    B --> C[]\n"
	res := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
	empties := 0
	for _, d := range res.Diagnostics {
		if d.Severity != diag.SevError {
			continue
		}
		if d.Code != diag.FlNodeEmpty {
			t.Fatalf("unexpected error %s at %+v", d.Code, d.Position)
		}
		empties++
	}
	if empties != 3 {
		t.Fatalf("got %d FL-NODE-EMPTY errors, want 3: %+v", empties, res.Diagnostics)
	}
}

func TestFixFlowchartEmptyNodes(t *testing.T) {
	text := "flowchart TD\n    A[\"\\\"] --> B[\" \"]\n    B --> C[]\n"
	res := mermaidlint.Fix(text, mermaidlint.FixOptions{Level: fix.LevelSafe})
	want := "flowchart TD\n    A --> B\n    B --> C\n"
	if res.Fixed != want {
		t.Fatalf("Fixed = %q, want %q", res.Fixed, want)
	}
	for _, d := range res.Diagnostics {
		if d.Severity == diag.SevError {
			t.Fatalf("error remains after fix: %+v", d)
		}
	}
}

func TestFixSequenceMissingEnd(t *testing.T) {
	text := "sequenceDiagram\npar Do work\n  A->B: hi\n"
	plain := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
	found := false
	for _, d := range plain.Diagnostics {
		if d.Code == diag.SeBlockMissingEnd {
			found = true
			if d.Position.Line != 4 {
				t.Fatalf("SE-BLOCK-MISSING-END at line %d, want 4 (the line after the block body)", d.Position.Line)
			}
		}
	}
	if !found {
		t.Fatalf("missing SE-BLOCK-MISSING-END: %+v", plain.Diagnostics)
	}

	res := mermaidlint.Fix(text, mermaidlint.FixOptions{Level: fix.LevelSafe})
	want := "sequenceDiagram\npar Do work\n  A->B: hi\nend\n"
	if res.Fixed != want {
		t.Fatalf("Fixed = %q, want %q", res.Fixed, want)
	}
	for _, d := range res.Diagnostics {
		if d.Severity == diag.SevError {
			t.Fatalf("error remains after fix: %+v", d)
		}
	}
}

func TestFixSequenceElseInCritical(t *testing.T) {
	text := "sequenceDiagram\ncritical Do\n  else Not allowed\nend\n"
	plain := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
	found := false
	for _, d := range plain.Diagnostics {
		if d.Code == diag.SeElseInCritical {
			found = true
			if d.Position.Line != 3 {
				t.Fatalf("SE-ELSE-IN-CRITICAL at line %d, want 3", d.Position.Line)
			}
		}
	}
	if !found {
		t.Fatalf("missing SE-ELSE-IN-CRITICAL: %+v", plain.Diagnostics)
	}

	res := mermaidlint.Fix(text, mermaidlint.FixOptions{Level: fix.LevelSafe})
	want := "sequenceDiagram\ncritical Do\n  option Not allowed\nend\n"
	if res.Fixed != want {
		t.Fatalf("Fixed = %q, want %q", res.Fixed, want)
	}
	if len(res.Diagnostics) != 0 {
		t.Fatalf("Diagnostics = %+v, want none after fix", res.Diagnostics)
	}
}

func TestFixIsIdempotent(t *testing.T) {
	input := "flowchart TD\nA -> B\n    C[] --> D\n"
	first := mermaidlint.Fix(input, mermaidlint.FixOptions{Level: fix.LevelSafe})
	second := mermaidlint.Fix(first.Fixed, mermaidlint.FixOptions{Level: fix.LevelSafe})
	if first.Fixed != second.Fixed {
		t.Fatalf("fix not idempotent: %q vs %q", first.Fixed, second.Fixed)
	}
}

func TestRenderFlowchartProducesVector(t *testing.T) {
	res := mermaidlint.Render("flowchart TD\nA --> B\n", mermaidlint.RenderOptions{})
	if res.Vector == "" || !strings.Contains(res.Vector, "<svg") {
		t.Fatalf("Vector = %q, want an <svg> document", res.Vector)
	}
	if res.Model == nil {
		t.Fatalf("Model = nil, want a flowchart model")
	}
}

func TestRenderPieAppliesTheme(t *testing.T) {
	text := "---\nthemeVariables:\n  pie1: \"#123456\"\n---\npie\n\"Dogs\" : 10\n\"Cats\" : 5\n"
	res := mermaidlint.Render(text, mermaidlint.RenderOptions{})
	if !strings.Contains(res.Vector, "#123456") {
		t.Fatalf("Vector does not reflect themed slice color:\n%s", res.Vector)
	}
	if strings.Contains(res.Vector, "{{") {
		t.Fatalf("Vector still has unresolved theme tokens:\n%s", res.Vector)
	}
}

func TestDetectTypeSkipsFrontmatter(t *testing.T) {
	text := "---\ntitle: x\n---\nflowchart TD\nA --> B\n"
	if k := mermaidlint.DetectType(text); k != mermaidlint.KindFlowchart {
		t.Fatalf("DetectType = %v, want flowchart", k)
	}
}

func TestExtractBlocksAndOffsetDiagnostics(t *testing.T) {
	doc := "# Doc\n\n```mermaid\npie\nDogs : 10\n```\n"
	blocks := mermaidlint.ExtractBlocks(doc)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	res := mermaidlint.Validate(b.Content, mermaidlint.ValidateOptions{})
	offset := mermaidlint.OffsetDiagnostics(res.Diagnostics, b.StartLine-1)
	if len(offset) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(offset))
	}
	// The bare label sits on the second line of the block.
	if want := b.StartLine + 1; offset[0].Position.Line != want {
		t.Fatalf("offset line = %d, want %d", offset[0].Position.Line, want)
	}
	if offset[0].Code != res.Diagnostics[0].Code || offset[0].Position.Column != res.Diagnostics[0].Position.Column {
		t.Fatalf("offset changed code/column: %+v vs %+v", offset[0], res.Diagnostics[0])
	}
}

func TestExtractBlocksTwoBlocksOffsets(t *testing.T) {
	doc := "# Doc\n\n```mermaid\nflowchart TD\nA --> B\n```\n\nsome prose\n\n```mermaid\npie\nDogs : 10\n```\n"
	blocks := mermaidlint.ExtractBlocks(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}

	var all []diag.Diagnostic
	for _, b := range blocks {
		res := mermaidlint.Validate(b.Content, mermaidlint.ValidateOptions{})
		all = append(all, mermaidlint.OffsetDiagnostics(res.Diagnostics, b.StartLine-1)...)
	}
	if len(all) != 1 || all[0].Code != diag.PiLabelRequiresQuotes {
		t.Fatalf("diagnostics = %+v, want only the pie label error", all)
	}
	// The bare label sits on the second line of the second block.
	if want := blocks[1].StartLine + 1; all[0].Position.Line != want {
		t.Fatalf("line = %d, want %d", all[0].Position.Line, want)
	}
}

func TestValidateOrderIsStable(t *testing.T) {
	text := "flowchart\nA -> B\n    C[] --> D\nE F\n"
	first := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
	second := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
	if len(first.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics for a multi-error input")
	}
	if len(first.Diagnostics) != len(second.Diagnostics) {
		t.Fatalf("diagnostic count diverged across runs: %d vs %d", len(first.Diagnostics), len(second.Diagnostics))
	}
	for i := range first.Diagnostics {
		a, b := first.Diagnostics[i], second.Diagnostics[i]
		if a.Code != b.Code || a.Position != b.Position || a.Message != b.Message {
			t.Fatalf("diagnostic %d diverged across runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestValidatePositionsInRange(t *testing.T) {
	inputs := []string{
		"flowchart TD\nA -> B\n",
		"pie\nDogs : 10\n",
		"sequenceDiagram\npar Do work\n  A->B: hi\n",
		"classDiagram\nA -> B\n",
		"stateDiagram-v2\nstate S {\n  A --> B\n",
	}
	for _, text := range inputs {
		res := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
		lines := strings.Count(text, "\n") + 1
		for _, d := range res.Diagnostics {
			if d.Position.Line < 1 || d.Position.Line > lines {
				t.Fatalf("line %d out of range for %q", d.Position.Line, text)
			}
			if d.Position.Column < 1 {
				t.Fatalf("column %d out of range for %q", d.Position.Column, text)
			}
		}
	}
}

func TestFixSafeNeverIncreasesErrors(t *testing.T) {
	inputs := []string{
		"flowchart TD\nA -> B\n",
		"pie\nDogs : 10\n\"Cats\" 5\n",
		"sequenceDiagram\ncritical Do\n  else Not allowed\nend\n",
		"classDiagram\nclass Foo {\n  +bar()\n",
	}
	for _, text := range inputs {
		before := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
		after := mermaidlint.Fix(text, mermaidlint.FixOptions{Level: fix.LevelSafe})
		countErrors := func(ds []diag.Diagnostic) int {
			n := 0
			for _, d := range ds {
				if d.Severity == diag.SevError {
					n++
				}
			}
			return n
		}
		if countErrors(after.Diagnostics) > countErrors(before.Diagnostics) {
			t.Fatalf("fix(safe) increased errors for %q: %+v -> %+v", text, before.Diagnostics, after.Diagnostics)
		}
	}
}

func TestToJSONAndToText(t *testing.T) {
	text := "flowchart TD\nA -> B\n"
	res := mermaidlint.Validate(text, mermaidlint.ValidateOptions{})
	j := mermaidlint.ToJSON("diagram.mmd", res.Diagnostics)
	if j.Valid {
		t.Fatalf("Valid = true, want false")
	}
	if j.ErrorCount != 1 {
		t.Fatalf("ErrorCount = %d, want 1", j.ErrorCount)
	}
	out := mermaidlint.ToText("diagram.mmd", text, res.Diagnostics, report.TextOptions{})
	if !strings.Contains(out, "FL-ARROW-INVALID") {
		t.Fatalf("ToText output missing code:\n%s", out)
	}
}
