package flowchart_test

import (
	"testing"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/flowchart"
	"github.com/probelabs/mermaid-lint/internal/source"
)

func TestParseHeaderDirection(t *testing.T) {
	d, bag := flowchart.Parse(source.NewText("flowchart LR\nA --> B\n"))
	if d.Direction != "LR" {
		t.Fatalf("direction = %q", d.Direction)
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestParseMissingDirection(t *testing.T) {
	d, bag := flowchart.Parse(source.NewText("flowchart\nA --> B\n"))
	mustHaveCode(t, bag, diag.FlDirMissing)
	if d.Direction != "TD" {
		t.Fatalf("direction = %q, want default TD", d.Direction)
	}
}

func TestParseInvalidDirection(t *testing.T) {
	_, bag := flowchart.Parse(source.NewText("flowchart ZZ\nA --> B\n"))
	mustHaveCode(t, bag, diag.FlDirInvalid)
}

func TestParseChainAndShapes(t *testing.T) {
	d, bag := flowchart.Parse(source.NewText("flowchart TD\nA[Start] --> B((Round))\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(d.Nodes) != 2 || d.Nodes[0].Label != "Start" || d.Nodes[1].Shape != flowchart.ShapeCircle {
		t.Fatalf("nodes = %+v", d.Nodes)
	}
	if len(d.Edges) != 1 || d.Edges[0].Source != "A" || d.Edges[0].Target != "B" {
		t.Fatalf("edges = %+v", d.Edges)
	}
}

func TestParseInvalidArrow(t *testing.T) {
	d, bag := flowchart.Parse(source.NewText("flowchart TD\nA -> B\n"))
	mustHaveFix(t, bag, diag.FlArrowInvalid)
	if len(d.Edges) != 1 {
		t.Fatalf("edges = %+v", d.Edges)
	}
}

func TestParseLinkMissing(t *testing.T) {
	_, bag := flowchart.Parse(source.NewText("flowchart TD\nA B\n"))
	mustHaveFix(t, bag, diag.FlLinkMissing)
}

func TestParseEmptyNode(t *testing.T) {
	_, bag := flowchart.Parse(source.NewText("flowchart TD\nA[]\n"))
	mustHaveCode(t, bag, diag.FlNodeEmpty)
}

// A quoted label holding only a lone escaped quote, a quoted label holding
// only whitespace, and a bare empty shape must all raise FL-NODE-EMPTY,
// since none of the three carries any visible label content.
func TestParseEmptyNodeQuotedVariants(t *testing.T) {
	_, bag := flowchart.Parse(source.NewText(`flowchart TD
    A["\"] --> B[" "]
    B --> C[]
`))
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.FlNodeEmpty {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("FL-NODE-EMPTY count = %d, want 3; diagnostics: %+v", count, bag.Items())
	}
}

func TestParseUnclosedBracket(t *testing.T) {
	_, bag := flowchart.Parse(source.NewText("flowchart TD\nA[Oops\n"))
	fx := mustHaveFix(t, bag, diag.FlNodeUnclosed)
	if fx.Level != diag.FixHeuristic {
		t.Fatalf("FL-NODE-UNCLOSED-BRACKET fix level = %v, want heuristic", fx.Level)
	}
}

func TestParseBracketMismatch(t *testing.T) {
	_, bag := flowchart.Parse(source.NewText("flowchart TD\nA[Oops)\n"))
	fx := mustHaveFix(t, bag, diag.FlNodeBracketMismatch)
	if fx.Edits[0].NewText != "]" {
		t.Fatalf("fix edit = %+v", fx.Edits[0])
	}
}

func TestParseSubgraphMissingEnd(t *testing.T) {
	_, bag := flowchart.Parse(source.NewText("flowchart TD\nsubgraph one\nA --> B\n"))
	mustHaveCode(t, bag, diag.FlSubgraphMissingEnd)
}

func TestParseSubgraphDirection(t *testing.T) {
	d, bag := flowchart.Parse(source.NewText("flowchart TD\nsubgraph one\ndirection LR\nA --> B\nend\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(d.Subgraphs) != 1 || d.Subgraphs[0].Direction != "LR" {
		t.Fatalf("subgraphs = %+v", d.Subgraphs)
	}
}

func TestValidateUnknownHeader(t *testing.T) {
	diags := flowchart.Validate("pie\n\"a\" : 1\n")
	if len(diags) != 1 || diags[0].Code != diag.GenHeaderInvalid {
		t.Fatalf("diags = %+v", diags)
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
	diags := flowchart.Validate("flowchart\nA -> B\nC[] --> D\n")
	want := []diag.Code{diag.FlDirMissing, diag.FlArrowInvalid, diag.FlNodeEmpty}
	if len(diags) != len(want) {
		t.Fatalf("diags = %+v, want codes %v", diags, want)
	}
	for i, c := range want {
		if diags[i].Code != c {
			t.Fatalf("diags[%d].Code = %s, want %s (full: %+v)", i, diags[i].Code, c, diags)
		}
	}
}
