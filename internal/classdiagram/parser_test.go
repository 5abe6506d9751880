package classdiagram_test

import (
	"testing"

	"github.com/probelabs/mermaid-lint/internal/classdiagram"
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

func TestParseClassAndRelation(t *testing.T) {
	d, bag := classdiagram.Parse(source.NewText("classDiagram\nAnimal <|-- Dog\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(d.Classes) != 2 {
		t.Fatalf("classes = %+v", d.Classes)
	}
	if len(d.Relations) != 1 || d.Relations[0].Kind != classdiagram.RelExtends {
		t.Fatalf("relations = %+v", d.Relations)
	}
}

func TestParseMemberBlock(t *testing.T) {
	d, bag := classdiagram.Parse(source.NewText("classDiagram\nclass Animal {\n  +String name\n  +makeSound()\n}\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	idx := d.ClassIndex("Animal")
	if idx < 0 {
		t.Fatalf("Animal class not found: %+v", d.Classes)
	}
	cls := d.Classes[idx]
	if len(cls.Attributes) != 1 || len(cls.Methods) != 1 {
		t.Fatalf("members = %+v", cls)
	}
}

func TestParseInlineStereotypeAndAlias(t *testing.T) {
	d, bag := classdiagram.Parse(source.NewText("classDiagram\nclass Shape <<interface>> as S\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	idx := d.ClassIndex("Shape")
	if idx < 0 || d.Classes[idx].Stereotype != "interface" || d.Classes[idx].Display != "S" {
		t.Fatalf("classes = %+v", d.Classes)
	}
}

func TestParseInvalidArrow(t *testing.T) {
	_, bag := classdiagram.Parse(source.NewText("classDiagram\nA -> B\n"))
	mustHaveCode(t, bag, diag.ClRelInvalid)
}

func TestParseRelationMissingTarget(t *testing.T) {
	_, bag := classdiagram.Parse(source.NewText("classDiagram\nA --\n"))
	mustHaveCode(t, bag, diag.ClRelMalformed)
}

func TestParseBlockMissingRBrace(t *testing.T) {
	_, bag := classdiagram.Parse(source.NewText("classDiagram\nclass Animal {\n  +String name\n"))
	fx := mustHaveFix(t, bag, diag.ClBlockMissingRBrace)
	if fx.Edits[0].NewText != "}\n" {
		t.Fatalf("fix edit = %+v", fx.Edits[0])
	}
}

func TestValidateUnknownHeader(t *testing.T) {
	diags := classdiagram.Validate("pie\n\"a\" : 1\n")
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
	diags := classdiagram.Validate("classDiagram\nA -> B\nclass Foo {\n  x\n")
	want := []diag.Code{diag.ClRelInvalid, diag.ClBlockMissingRBrace}
	if len(diags) != len(want) {
		t.Fatalf("diags = %+v, want codes %v", diags, want)
	}
	for i, c := range want {
		if diags[i].Code != c {
			t.Fatalf("diags[%d].Code = %s, want %s (full: %+v)", i, diags[i].Code, c, diags)
		}
	}
}
