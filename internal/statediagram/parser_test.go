package statediagram_test

import (
	"testing"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
	"github.com/probelabs/mermaid-lint/internal/statediagram"
)

func TestParseStartEndTransitions(t *testing.T) {
	d, bag := statediagram.Parse(source.NewText("stateDiagram-v2\n[*] --> Idle\nIdle --> [*]\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(d.Transitions) != 2 {
		t.Fatalf("transitions = %+v", d.Transitions)
	}
	if d.Transitions[0].Source != "__start__" || d.Transitions[1].Target != "__end__" {
		t.Fatalf("pseudo-state ids = %+v", d.Transitions)
	}
	if i := d.NodeIndex("__start__"); i < 0 || d.Nodes[i].Kind != statediagram.KindStart {
		t.Fatalf("start node = %+v", d.Nodes)
	}
}

func TestParseComposite(t *testing.T) {
	d, bag := statediagram.Parse(source.NewText(
		"stateDiagram-v2\nstate Active {\n  [*] --> Running\n  Running --> Paused\n}\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	ci := d.CompositeIndex("Active")
	if ci < 0 {
		t.Fatalf("Active composite not found: %+v", d.Composites)
	}
	if d.Nodes[d.NodeIndex("Running")].Parent != "Active" {
		t.Fatalf("Running parent = %+v", d.Nodes)
	}
	if i := d.NodeIndex("Active#start"); i < 0 {
		t.Fatalf("scoped start id not created: %+v", d.Nodes)
	}
}

func TestParseLanes(t *testing.T) {
	d, bag := statediagram.Parse(source.NewText(
		"stateDiagram-v2\nstate Active {\n  A1\n  --\n  A2\n}\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(d.Lanes) != 1 || d.Lanes[0].LaneID != "Active#lane1" {
		t.Fatalf("lanes = %+v", d.Lanes)
	}
	if len(d.Lanes[0].Members) != 1 || d.Lanes[0].Members[0] != "A2" {
		t.Fatalf("lane members = %+v", d.Lanes[0])
	}
}

func TestParsePseudoMarks(t *testing.T) {
	d, bag := statediagram.Parse(source.NewText("stateDiagram-v2\nstate choice1 <<choice>>\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if i := d.NodeIndex("choice1"); i < 0 || d.Nodes[i].Kind != statediagram.KindChoice {
		t.Fatalf("choice1 kind = %+v", d.Nodes)
	}
}

func TestParsePseudoMarkBare(t *testing.T) {
	d, bag := statediagram.Parse(source.NewText("stateDiagram-v2\nchoice1 <<choice>>\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if i := d.NodeIndex("choice1"); i < 0 || d.Nodes[i].Kind != statediagram.KindChoice {
		t.Fatalf("choice1 kind = %+v", d.Nodes)
	}
}

func TestParseHistoryMarkers(t *testing.T) {
	d, bag := statediagram.Parse(source.NewText("stateDiagram-v2\nS --> H\nH --> T\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if i := d.NodeIndex("__history__"); i < 0 || d.Nodes[i].Kind != statediagram.KindHistory {
		t.Fatalf("history node = %+v", d.Nodes)
	}
}

func TestParseDescription(t *testing.T) {
	d, bag := statediagram.Parse(source.NewText("stateDiagram-v2\nIdle : waiting for input\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if i := d.NodeIndex("Idle"); i < 0 || d.Nodes[i].Label != "waiting for input" {
		t.Fatalf("Idle label = %+v", d.Nodes)
	}
}

func TestParseBlockMissingRBrace(t *testing.T) {
	_, bag := statediagram.Parse(source.NewText("stateDiagram-v2\nstate Active {\n  [*] --> Running\n"))
	fx := mustHaveFix(t, bag, diag.StBlockMissingRBrace)
	if fx.Edits[0].NewText != "}\n" {
		t.Fatalf("fix edit = %+v", fx.Edits[0])
	}
}

func TestValidateUnknownHeader(t *testing.T) {
	diags := statediagram.Validate("flowchart TD\nA --> B\n")
	if len(diags) != 1 || diags[0].Code != diag.GenHeaderInvalid {
		t.Fatalf("diags = %+v", diags)
	}
}

func mustHaveFix(t *testing.T, bag *diag.Bag, code diag.Code) *diag.Fix {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			if d.Fix == nil {
				t.Fatalf("diagnostic %s has no fix", code)
			}
			return d.Fix
		}
	}
	t.Fatalf("missing diagnostic %s, got: %+v", code, bag.Items())
	return nil
}

func TestValidateDiagnosticOrder(t *testing.T) {
	diags := statediagram.Validate("stateDiagram-v2\nstate S {\n  A --> B\n")
	want := []diag.Code{diag.StBlockMissingRBrace}
	if len(diags) != len(want) {
		t.Fatalf("diags = %+v, want codes %v", diags, want)
	}
	for i, c := range want {
		if diags[i].Code != c {
			t.Fatalf("diags[%d].Code = %s, want %s (full: %+v)", i, diags[i].Code, c, diags)
		}
	}
}
