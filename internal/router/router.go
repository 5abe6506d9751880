// Package router detects which diagram family a source document describes
// from its first non-comment, non-blank line.
package router

import "strings"

// Kind enumerates the recognized diagram families.
type Kind int

const (
	Unknown Kind = iota
	Flowchart
	Pie
	Sequence
	Class
	State
)

func (k Kind) String() string {
	switch k {
	case Flowchart:
		return "flowchart"
	case Pie:
		return "pie"
	case Sequence:
		return "sequence"
	case Class:
		return "class"
	case State:
		return "state"
	default:
		return "unknown"
	}
}

// Detect is a pure function: it scans lines, skipping blank lines and
// comment lines (trimmed form starting with "%%"), and classifies the
// diagram by the first remaining line's leading keyword.
func Detect(text string) Kind {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "%%") {
			continue
		}
		return classify(trimmed)
	}
	return Unknown
}

func classify(line string) Kind {
	word, _ := firstWord(line)
	switch word {
	case "flowchart", "graph":
		return Flowchart
	case "pie":
		return Pie
	case "sequenceDiagram":
		return Sequence
	case "classDiagram":
		return Class
	case "stateDiagram", "stateDiagram-v2":
		return State
	}
	return Unknown
}

func firstWord(line string) (word, rest string) {
	i := 0
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }
