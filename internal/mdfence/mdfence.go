// Package mdfence extracts fenced code blocks from a host Markdown
// document whose info string names this notation, walking a real
// CommonMark AST instead of hand-rolled regex scanning so the
// backtick/tilde fence-length and nesting rules match an actual parser's
// behavior rather than an approximation of it.
package mdfence

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/probelabs/mermaid-lint/internal/source"
)

var recognizedInfo = map[string]bool{
	"mermaid":   true,
	"mmd":       true,
	"mermaidjs": true,
}

// Block is one extracted fenced code block.
type Block struct {
	Content   string
	StartLine int
	EndLine   int
	Info      string
	Fence     string
}

// Extract scans raw for fenced blocks (three-or-more backticks or tildes)
// whose info word matches one of {mermaid, mmd, mermaidjs}, in document
// order.
func Extract(raw string) []Block {
	src := []byte(raw)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	t := source.NewText(raw)

	var blocks []Block
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		info := ""
		if fcb.Info != nil {
			info = string(fcb.Info.Text(src))
		}
		if !recognizedInfo[firstWord(info)] {
			return ast.WalkContinue, nil
		}

		lines := fcb.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		startLine := t.LineCol(lines.At(0).Start).Line
		lastContentLine := t.LineCol(lines.At(lines.Len() - 1).Start).Line

		var content strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			content.Write(seg.Value(src))
		}

		fence := fenceRun(t.Line(startLine - 1))
		endLine := lastContentLine
		if closingLine := strings.TrimSpace(t.Line(lastContentLine + 1)); isClosingFence(closingLine, fence) {
			endLine = lastContentLine + 1
		}

		blocks = append(blocks, Block{
			Content:   strings.TrimSuffix(content.String(), "\n"),
			StartLine: startLine,
			EndLine:   endLine,
			Info:      info,
			Fence:     fence,
		})
		return ast.WalkContinue, nil
	})

	return blocks
}

func firstWord(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// fenceRun extracts the leading run of backtick or tilde characters from a
// fence-opener line (the line immediately above a block's first content
// line).
func fenceRun(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return "```"
	}
	ch := line[0]
	if ch != '`' && ch != '~' {
		return "```"
	}
	i := 0
	for i < len(line) && line[i] == ch {
		i++
	}
	return line[:i]
}

// isClosingFence reports whether line is a valid closer for an opener of
// the given fence marker: the same character, at least as long.
func isClosingFence(line, opener string) bool {
	if opener == "" || line == "" {
		return false
	}
	ch := opener[0]
	if line[0] != ch {
		return false
	}
	i := 0
	for i < len(line) && line[i] == ch {
		i++
	}
	return i == len(line) && i >= len(opener)
}
