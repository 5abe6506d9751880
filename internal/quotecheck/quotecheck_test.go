package quotecheck_test

import (
	"testing"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/quotecheck"
	"github.com/probelabs/mermaid-lint/internal/source"
)

var testConfig = quotecheck.Config{
	Noun:           "test text",
	EscapedQuote:   diag.SeLabelEscapedQuote,
	DoubleInSingle: diag.SeLabelDoubleInDouble,
	DoubleInDouble: diag.SeLabelDoubleInDouble,
	Unclosed:       diag.SeQuoteUnclosed,
	UnclosedFix:    true,
}

func sweep(t *testing.T, text string, regions []quotecheck.Region) []diag.Diagnostic {
	t.Helper()
	bag := diag.NewBag(0)
	quotecheck.Sweep(source.NewText(text), testConfig, regions, bag)
	return bag.Items()
}

func TestBalancedPairsAreClean(t *testing.T) {
	for _, text := range []string{
		`A "1" -- "many" B` + "\n",
		`A->>B: say "hi" and "bye"` + "\n",
		"no quotes at all\n",
	} {
		if ds := sweep(t, text, nil); len(ds) != 0 {
			t.Fatalf("%q: unexpected diagnostics %+v", text, ds)
		}
	}
}

func TestEscapedQuoteReported(t *testing.T) {
	ds := sweep(t, `A->>B: say \"hi\"`+"\n", nil)
	count := 0
	for _, d := range ds {
		if d.Code == diag.SeLabelEscapedQuote {
			count++
			if d.Fix == nil || d.Fix.Edits[0].NewText != "&quot;" {
				t.Fatalf("escaped-quote fix = %+v", d.Fix)
			}
		}
	}
	if count != 2 {
		t.Fatalf("got %d escaped-quote diagnostics, want 2: %+v", count, ds)
	}
}

func TestOddInnerQuoteIsDoubleInDouble(t *testing.T) {
	ds := sweep(t, `A->>B: "a "b"`+"\n", nil)
	if len(ds) != 1 || ds[0].Code != diag.SeLabelDoubleInDouble {
		t.Fatalf("diagnostics = %+v", ds)
	}
	if ds[0].Fix != nil {
		t.Fatalf("double-in-double must never carry a fix")
	}
	// No unterminated-quote double report for the same label.
	for _, d := range ds {
		if d.Code == diag.SeQuoteUnclosed {
			t.Fatalf("unexpected unclosed-quote alongside double-in-double")
		}
	}
}

func TestLoneQuoteIsUnclosed(t *testing.T) {
	ds := sweep(t, "A->>B: \"oops\n", nil)
	if len(ds) != 1 || ds[0].Code != diag.SeQuoteUnclosed {
		t.Fatalf("diagnostics = %+v", ds)
	}
	if ds[0].Fix == nil || ds[0].Fix.Level != diag.FixHeuristic {
		t.Fatalf("unclosed fix = %+v, want heuristic append", ds[0].Fix)
	}
}

func TestLoneSingleQuoteIsUnclosed(t *testing.T) {
	ds := sweep(t, "A->>B: 'oops\n", nil)
	if len(ds) != 1 || ds[0].Code != diag.SeQuoteUnclosed {
		t.Fatalf("diagnostics = %+v", ds)
	}
}

func TestApostropheInsideQuotedTextIgnored(t *testing.T) {
	if ds := sweep(t, `A->>B: "it's fine"`+"\n", nil); len(ds) != 0 {
		t.Fatalf("unexpected diagnostics %+v", ds)
	}
}

func TestDoubleInsideSingleQuoted(t *testing.T) {
	ds := sweep(t, `A->>B: 'say "hi"'`+"\n", nil)
	found := false
	for _, d := range ds {
		if d.Code == diag.SeLabelDoubleInDouble {
			found = true
			if d.Fix != nil {
				t.Fatalf("non-flowchart double-in-single must not carry a fix")
			}
		}
		if d.Code == diag.SeQuoteUnclosed {
			t.Fatalf("quotes inside a single-quoted string must not feed parity: %+v", ds)
		}
	}
	if !found {
		t.Fatalf("missing double-inside-single diagnostic: %+v", ds)
	}
}

func TestRegionAccountsLabelQuotes(t *testing.T) {
	// Offsets of the opening/closing quote of `["\"]`'s label on line 1.
	text := `A["\"] --> B[" "]` + "\n"
	regions := []quotecheck.Region{
		{Line: 1, Start: 2, End: 4},
		{Line: 1, Start: 13, End: 15},
	}
	ds := sweep(t, text, regions)
	for _, d := range ds {
		if d.Code == diag.SeQuoteUnclosed || d.Code == diag.SeLabelDoubleInDouble {
			t.Fatalf("region quotes leaked into %s: %+v", d.Code, ds)
		}
	}
}

func TestRegionInnerQuoteIsDoubleInDouble(t *testing.T) {
	text := `A["x"y"]` + "\n"
	ds := sweep(t, text, []quotecheck.Region{{Line: 1, Start: 2, End: 6}})
	found := false
	for _, d := range ds {
		if d.Code == diag.SeLabelDoubleInDouble {
			found = true
			if d.Position.Column != 5 {
				t.Fatalf("inner quote column = %d, want 5", d.Position.Column)
			}
		}
		if d.Code == diag.SeQuoteUnclosed {
			t.Fatalf("region quotes must not feed parity: %+v", ds)
		}
	}
	if !found {
		t.Fatalf("missing double-in-double for inner quote: %+v", ds)
	}
}
