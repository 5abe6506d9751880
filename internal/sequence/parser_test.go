package sequence_test

import (
	"testing"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/sequence"
	"github.com/probelabs/mermaid-lint/internal/source"
)

func TestParseMessageAndParticipants(t *testing.T) {
	d, bag := sequence.Parse(source.NewText("sequenceDiagram\nAlice->>Bob: hi\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(d.Participants) != 2 {
		t.Fatalf("participants = %+v", d.Participants)
	}
	if len(d.Events) != 1 || d.Events[0].Message.Text != "hi" {
		t.Fatalf("events = %+v", d.Events)
	}
}

func TestParseBlockMissingEnd(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\npar Do work\n  A->>B: hi\n"))
	fx := mustHaveFix(t, bag, diag.SeBlockMissingEnd)
	if fx.Edits[0].NewText != "end\n" {
		t.Fatalf("fix edit = %+v", fx.Edits[0])
	}
}

func TestParseElseInCritical(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\ncritical Do\n  else Not allowed\nend\n"))
	fx := mustHaveFix(t, bag, diag.SeElseInCritical)
	if fx.Edits[0].NewText != "option" {
		t.Fatalf("fix edit = %+v", fx.Edits[0])
	}
}

func TestParseElseOutsideAlt(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nA->>B: hi\nelse nope\n"))
	mustHaveCode(t, bag, diag.SeElseOutsideAlt)
}

func TestParseAndOutsidePar(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nA->>B: hi\nand nope\n"))
	mustHaveCode(t, bag, diag.SeAndOutsidePar)
}

func TestParseMessageColonMissing(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nA->>B hi there\n"))
	mustHaveFix(t, bag, diag.SeMsgColonMissing)
}

func TestParseNoteMalformed(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nnote left of A hi\n"))
	mustHaveCode(t, bag, diag.SeNoteMalformed)
}

func TestParseActivationBalance(t *testing.T) {
	d, bag := sequence.Parse(source.NewText("sequenceDiagram\nactivate A\nA->>B: hi\ndeactivate A\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if len(d.Events) != 3 {
		t.Fatalf("events = %+v", d.Events)
	}
}

func TestParseDeactivateNoActive(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\ndeactivate A\n"))
	mustHaveCode(t, bag, diag.SeDeactivateNoActive)
}

func TestParseActivationAlreadyActive(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nactivate A\nactivate A\n"))
	mustHaveCode(t, bag, diag.SeActivationAlreadyActive)
}

func TestParseActivationUnbalancedAtEnd(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nactivate A\n"))
	mustHaveCode(t, bag, diag.SeActivationUnbalanced)
}

func TestParseCreateNoCreatingMessage(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\ncreate participant A\nB->>C: hi\n"))
	mustHaveCode(t, bag, diag.SeCreateNoCreatingMsg)
}

func TestParseCreateWithCreatingMessage(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\ncreate participant A\nB->>A: hi\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestParseAutonumberMalformed(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nautonumber abc\nA->>B: hi\n"))
	mustHaveCode(t, bag, diag.SeAutonumberMalformed)
}

func TestParseAutonumberExtraneous(t *testing.T) {
	_, bag := sequence.Parse(source.NewText("sequenceDiagram\nautonumber 10 1 extra\nA->>B: hi\n"))
	mustHaveFix(t, bag, diag.SeAutonumberExtraneous)
}

func TestParseAutonumberOff(t *testing.T) {
	d, bag := sequence.Parse(source.NewText("sequenceDiagram\nautonumber off\n"))
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if d.Autonumber.On {
		t.Fatalf("autonumber = %+v, want off", d.Autonumber)
	}
}

func TestValidateUnknownHeader(t *testing.T) {
	diags := sequence.Validate("pie\n\"a\" : 1\n")
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
	diags := sequence.Validate("sequenceDiagram\nA->>B hi\nelse nope\n")
	want := []diag.Code{diag.SeMsgColonMissing, diag.SeElseOutsideAlt}
	if len(diags) != len(want) {
		t.Fatalf("diags = %+v, want codes %v", diags, want)
	}
	for i, c := range want {
		if diags[i].Code != c {
			t.Fatalf("diags[%d].Code = %s, want %s (full: %+v)", i, diags[i].Code, c, diags)
		}
	}
}
