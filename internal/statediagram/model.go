package statediagram

import "github.com/probelabs/mermaid-lint/internal/source"

// NodeKind enumerates a state node's pseudo-state or ordinary kind.
type NodeKind int

const (
	KindSimple NodeKind = iota
	KindComposite
	KindStart
	KindEnd
	KindHistory
	KindHistoryDeep
	KindChoice
	KindFork
	KindJoin
)

// Node is one declared, referenced, or pseudo state.
type Node struct {
	ID     string
	Label  string
	Kind   NodeKind
	Parent string
	Span   source.Span
}

// Transition is one `Source --> Target` arrow, optionally labeled.
type Transition struct {
	Source, Target string
	Label           string
}

// Composite groups a set of node ids under one `state Name { ... }` block.
type Composite struct {
	ID      string
	Label   string
	Members []string
	Parent  string
}

// Lane is a sub-partition of a composite separated by a bare `--` line
// its id encodes its parent as "parent#laneN".
type Lane struct {
	Parent  string
	LaneID  string
	Members []string
}

// Diagram is the parsed state model.
type Diagram struct {
	Direction   string
	Nodes       []Node
	Transitions []Transition
	Composites  []Composite
	Lanes       []Lane
}

// NodeIndex returns the position of id within d.Nodes, or -1.
func (d *Diagram) NodeIndex(id string) int {
	for i, n := range d.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// CompositeIndex returns the position of id within d.Composites, or -1.
func (d *Diagram) CompositeIndex(id string) int {
	for i, c := range d.Composites {
		if c.ID == id {
			return i
		}
	}
	return -1
}
