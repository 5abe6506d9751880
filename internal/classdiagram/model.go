package classdiagram

import "github.com/probelabs/mermaid-lint/internal/source"

// RelationKind enumerates the recognized class relation operators.
type RelationKind int

const (
	RelAssociation RelationKind = iota
	RelDependency
	RelRealization
	RelExtends
	RelAggregation
	RelComposition
)

// Member is one attribute or method line, kept as its raw declared text
// (visibility marker, type, name) since the model only needs to render and
// count members, not type-check them.
type Member struct {
	Text string
}

// Class is one declared or relation-implied class.
type Class struct {
	ID         string
	Display    string
	Stereotype string
	Attributes []Member
	Methods    []Member
	Span       source.Span
}

// Relation is one edge between two class ids.
type Relation struct {
	Source, Target         string
	Kind                    RelationKind
	Label                   string
	SourceCard, TargetCard string
}

// Diagram is the parsed class model.
type Diagram struct {
	Direction string
	Classes   []Class
	Relations []Relation
}

// ClassIndex returns the position of id within d.Classes, or -1.
func (d *Diagram) ClassIndex(id string) int {
	for i, c := range d.Classes {
		if c.ID == id {
			return i
		}
	}
	return -1
}
