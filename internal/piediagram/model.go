package piediagram

import "github.com/probelabs/mermaid-lint/internal/source"

// Slice is one `"label" : value` statement.
type Slice struct {
	Label string
	Value float64
	Span  source.Span
}

// Diagram is the parsed model of a pie document.
type Diagram struct {
	ShowData bool
	Title    string
	HasTitle bool
	Slices   []Slice
}
