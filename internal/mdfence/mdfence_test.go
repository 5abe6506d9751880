package mdfence_test

import (
	"strings"
	"testing"

	"github.com/probelabs/mermaid-lint/internal/mdfence"
	"github.com/probelabs/mermaid-lint/internal/source"
)

func TestExtractSingleBlock(t *testing.T) {
	doc := "# Title\n\nSome text.\n\n```mermaid\nflowchart TD\n    A --> B\n```\n\nMore text.\n"
	blocks := mdfence.Extract(doc)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Info != "mermaid" {
		t.Fatalf("Info = %q", b.Info)
	}
	want := "flowchart TD\n    A --> B"
	if b.Content != want {
		t.Fatalf("Content = %q, want %q", b.Content, want)
	}
	if b.Fence != "```" {
		t.Fatalf("Fence = %q", b.Fence)
	}

	tx := source.NewText(doc)
	if tx.Line(b.StartLine) != "flowchart TD" {
		t.Fatalf("StartLine %d = %q", b.StartLine, tx.Line(b.StartLine))
	}
	if tx.Line(b.EndLine) != "```" {
		t.Fatalf("EndLine %d = %q", b.EndLine, tx.Line(b.EndLine))
	}
}

func TestExtractIgnoresOtherLanguages(t *testing.T) {
	doc := "```go\nfmt.Println(1)\n```\n"
	if blocks := mdfence.Extract(doc); len(blocks) != 0 {
		t.Fatalf("got %d blocks, want 0", len(blocks))
	}
}

func TestExtractMultipleBlocksRoundTrip(t *testing.T) {
	doc := "```mermaid\npie\n\"Dogs\" : 1\n```\n\ntext\n\n```mmd\nflowchart TD\n  A-->B\n```\n"
	blocks := mdfence.Extract(doc)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	tx := source.NewText(doc)
	for _, b := range blocks {
		wantLines := strings.Split(b.Content, "\n")
		for i, want := range wantLines {
			got := tx.Line(b.StartLine + i)
			if got != want {
				t.Fatalf("line %d = %q, want %q", b.StartLine+i, got, want)
			}
		}
	}
}

func TestExtractTildeFence(t *testing.T) {
	doc := "~~~mermaid\nstateDiagram-v2\n[*] --> A\n~~~\n"
	blocks := mdfence.Extract(doc)
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if blocks[0].Fence != "~~~" {
		t.Fatalf("Fence = %q", blocks[0].Fence)
	}
}
