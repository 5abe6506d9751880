package flowchart

import "github.com/probelabs/mermaid-lint/internal/source"

// Shape enumerates the recognized node-shape delimiter pairs.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeRound
	ShapeStadium
	ShapeCylinder
	ShapeCircle
	ShapeDiamond
	ShapeHexagon
	ShapeParallelogram
	ShapeTrapezoid
	ShapeTrapezoidAlt
	ShapeSubroutine
	ShapeDouble
)

// ArrowKind enumerates the flowchart model's edge line styles.
type ArrowKind int

const (
	ArrowSolid ArrowKind = iota
	ArrowOpen
	ArrowDotted
	ArrowThick
	ArrowInvisible
)

// Marker enumerates edge endpoint decorations. Flowchart links in this
// notation never carry anything but an arrowhead or nothing, so only those
// two are produced; the richer marker set exists for the sequence model.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerArrow
)

// Node is one declared or implied flowchart vertex.
type Node struct {
	ID    string
	Label string
	Shape Shape
	Style string
	Span  source.Span
}

// Edge is one link between two node ids.
type Edge struct {
	Source, Target string
	Arrow          ArrowKind
	StartMarker    Marker
	EndMarker      Marker
	Label          string
	Style          string
}

// Subgraph groups a set of node ids, optionally nested under a parent.
type Subgraph struct {
	ID        string
	Label     string
	Direction string
	Members   []string
	Parent    string
}

// Diagram is the parsed flowchart model.
type Diagram struct {
	Direction string
	Nodes     []Node
	Edges     []Edge
	Subgraphs []Subgraph
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
