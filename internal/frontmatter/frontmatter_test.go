package frontmatter_test

import (
	"testing"

	"github.com/probelabs/mermaid-lint/internal/frontmatter"
)

func TestParseNoFrontmatter(t *testing.T) {
	cfg := frontmatter.Parse("pie\n\"Dogs\" : 10\n")
	if cfg.Present {
		t.Fatalf("Present = true for input with no frontmatter")
	}
	if cfg.Body != "pie\n\"Dogs\" : 10\n" {
		t.Fatalf("Body = %q, want input unchanged", cfg.Body)
	}
	if cfg.BodyStartLine != 1 {
		t.Fatalf("BodyStartLine = %d, want 1", cfg.BodyStartLine)
	}
}

func TestParseBlockAndOffset(t *testing.T) {
	text := "---\ntitle: ignored\n---\npie\n\"Dogs\" : 10\n"
	cfg := frontmatter.Parse(text)
	if !cfg.Present {
		t.Fatalf("Present = false, want true")
	}
	if cfg.Body != "pie\n\"Dogs\" : 10\n" {
		t.Fatalf("Body = %q", cfg.Body)
	}
	if cfg.BodyStartLine != 4 {
		t.Fatalf("BodyStartLine = %d, want 4", cfg.BodyStartLine)
	}
}

func TestParsePieTextPosition(t *testing.T) {
	text := "---\nconfig:\n  pie:\n    textPosition: 0.5\n---\npie\n\"Dogs\" : 10\n"
	cfg := frontmatter.Parse(text)
	if !cfg.HasPieTextPosition || cfg.PieTextPosition != 0.5 {
		t.Fatalf("PieTextPosition = %v (has=%v), want 0.5", cfg.PieTextPosition, cfg.HasPieTextPosition)
	}
}

func TestParseThemeVariablesRecognizedOnly(t *testing.T) {
	text := "---\nthemeVariables:\n  pie1: \"#ff0000\"\n  pieStrokeColor: \"#000\"\n  unknownKey: \"x\"\n---\npie\n\"Dogs\" : 10\n"
	cfg := frontmatter.Parse(text)
	if cfg.ThemeVariables["pie1"] != "#ff0000" {
		t.Fatalf("pie1 = %q", cfg.ThemeVariables["pie1"])
	}
	if cfg.ThemeVariables["pieStrokeColor"] != "#000" {
		t.Fatalf("pieStrokeColor = %q", cfg.ThemeVariables["pieStrokeColor"])
	}
	if _, ok := cfg.ThemeVariables["unknownKey"]; ok {
		t.Fatalf("unrecognized key leaked into ThemeVariables")
	}
}

func TestParseUnterminatedBlockTreatedAsAbsent(t *testing.T) {
	text := "---\ntitle: oops\npie\n\"Dogs\" : 10\n"
	cfg := frontmatter.Parse(text)
	if cfg.Present {
		t.Fatalf("Present = true for an unterminated block")
	}
	if cfg.Body != text {
		t.Fatalf("Body = %q, want input unchanged", cfg.Body)
	}
}
