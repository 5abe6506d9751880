package render

import (
	"strings"

	"github.com/probelabs/mermaid-lint/internal/classdiagram"
	"github.com/probelabs/mermaid-lint/internal/layout"
	"github.com/probelabs/mermaid-lint/internal/statediagram"
)

// Class renders a parsed class diagram to an SVG document by projecting
// it onto the flowchart layout back end.
func Class(d *classdiagram.Diagram) string {
	g := layout.Graph{Direction: "TB"}
	labelOf := make(map[string]string, len(d.Classes))
	for _, c := range d.Classes {
		label := classLabel(c)
		labelOf[c.ID] = label
		w, h := layout.NodeSize(label, layout.ShapeClassDefault)
		g.Nodes = append(g.Nodes, layout.Node{ID: c.ID, Width: w, Height: h})
	}
	markerOf := make(map[int]string, len(d.Relations))
	for i, rel := range d.Relations {
		g.Edges = append(g.Edges, layout.Edge{Source: rel.Source, Target: rel.Target, Label: rel.Label})
		markerOf[i] = relationMarker(rel.Kind)
	}

	res := layout.New().Layout(g, layout.Options{})
	doc := NewDoc()
	doc.Open(res.Width+40, res.Height+40)
	WriteDefs(doc)
	writeRelationMarkers(doc)

	doc.Group("edges", func() {
		for i, e := range res.Edges {
			marker := "none"
			dashed := false
			if i < len(d.Relations) {
				marker = markerOf[i]
				k := d.Relations[i].Kind
				dashed = k == classdiagram.RelDependency || k == classdiagram.RelRealization
			}
			attrs := []Attr{A("d", PathPoints(e.Points)), A("fill", "none"), A("stroke", "#333"), A("marker-end", marker)}
			if dashed {
				attrs = append(attrs, A("stroke-dasharray", "4 3"))
			}
			doc.Elem("path", attrs...)
		}
	})

	doc.Group("classes", func() {
		for _, np := range res.Nodes {
			doc.Elem("rect", A("x", ftoa(np.Rect.X)), A("y", ftoa(np.Rect.Y)),
				A("width", ftoa(np.Rect.Width)), A("height", ftoa(np.Rect.Height)),
				A("fill", "#eef"), A("stroke", "#333"))
			lines := strings.Split(labelOf[np.ID], "\n")
			drawCenteredLines(doc, np.Rect, lines)
		}
	})

	doc.Close()
	return doc.String()
}

func classLabel(c classdiagram.Class) string {
	name := c.Display
	if name == "" {
		name = c.ID
	}
	var b strings.Builder
	if c.Stereotype != "" {
		b.WriteString("<<" + c.Stereotype + ">>\n")
	}
	b.WriteString(name)
	for _, m := range c.Attributes {
		b.WriteString("\n" + m.Text)
	}
	for _, m := range c.Methods {
		b.WriteString("\n" + m.Text)
	}
	return b.String()
}

func relationMarker(k classdiagram.RelationKind) string {
	switch k {
	case classdiagram.RelExtends:
		return "url(#tri-hollow)"
	case classdiagram.RelComposition:
		return "url(#diamond-filled)"
	case classdiagram.RelAggregation:
		return "url(#diamond-hollow)"
	case classdiagram.RelRealization:
		return "url(#tri-hollow)"
	case classdiagram.RelDependency:
		return "url(#arrow-open)"
	default: // RelAssociation
		return "url(#arrow)"
	}
}

func writeRelationMarkers(d *Doc) {
	d.Group("rel-defs-wrapper", func() {
		d.Raw(`<defs>`)
		d.indent++
		d.Raw(`<marker id="tri-hollow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="white" stroke="#333"/></marker>`)
		d.Raw(`<marker id="diamond-filled" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 5 L 5 0 L 10 5 L 5 10 z" fill="#333"/></marker>`)
		d.Raw(`<marker id="diamond-hollow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 5 L 5 0 L 10 5 L 5 10 z" fill="white" stroke="#333"/></marker>`)
		d.Raw(`<marker id="arrow-open" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10" fill="none" stroke="#333"/></marker>`)
		d.indent--
		d.Raw(`</defs>`)
	})
}

// State renders a parsed state diagram to an SVG document, projecting
// pseudo-states to fixed shapes and composites to subgraph clusters.
func State(d *statediagram.Diagram) string {
	g := layout.Graph{Direction: directionOrDefault(d.Direction)}
	labelOf := make(map[string]string, len(d.Nodes))
	kindOf := make(map[string]statediagram.NodeKind, len(d.Nodes))
	for _, n := range d.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		labelOf[n.ID] = label
		kindOf[n.ID] = n.Kind
		w, h := stateNodeSize(n.Kind, label)
		g.Nodes = append(g.Nodes, layout.Node{ID: n.ID, Width: w, Height: h})
	}
	for _, t := range d.Transitions {
		g.Edges = append(g.Edges, layout.Edge{Source: t.Source, Target: t.Target, Label: t.Label})
	}
	for _, c := range d.Composites {
		g.Subgraphs = append(g.Subgraphs, layout.Subgraph{ID: c.ID, Label: c.Label, Members: c.Members, Parent: c.Parent})
	}

	res := layout.New().Layout(g, layout.Options{})
	doc := NewDoc()
	doc.Open(res.Width+40, res.Height+40)
	WriteDefs(doc)

	doc.Group("clusters", func() {
		for _, c := range res.Clusters {
			doc.Elem("rect", A("x", ftoa(c.Rect.X)), A("y", ftoa(c.Rect.Y-c.TitleBand)),
				A("width", ftoa(c.Rect.Width)), A("height", ftoa(c.Rect.Height+c.TitleBand)),
				A("fill", "#f5f5f5"), A("stroke", "#999"))
		}
	})

	laneOverlay(doc, d, res)

	doc.Group("edges", func() {
		for _, e := range res.Edges {
			doc.Elem("path", A("d", PathPoints(e.Points)), A("fill", "none"),
				A("stroke", "#333"), A("marker-end", "url(#arrow)"))
		}
	})

	doc.Group("nodes", func() {
		for _, np := range res.Nodes {
			drawStateShape(doc, np.Rect, kindOf[np.ID])
			if !isPseudoState(kindOf[np.ID]) {
				lines := layout.WrapLabel(labelOf[np.ID], np.Rect.Width, 3)
				drawCenteredLines(doc, np.Rect, lines)
			}
		}
	})

	doc.Close()
	return doc.String()
}

func isPseudoState(k statediagram.NodeKind) bool {
	switch k {
	case statediagram.KindStart, statediagram.KindEnd, statediagram.KindHistory,
		statediagram.KindHistoryDeep, statediagram.KindChoice, statediagram.KindFork, statediagram.KindJoin:
		return true
	}
	return false
}

func stateNodeSize(k statediagram.NodeKind, label string) (float64, float64) {
	switch k {
	case statediagram.KindStart, statediagram.KindEnd, statediagram.KindHistory, statediagram.KindHistoryDeep:
		return 20, 20
	case statediagram.KindChoice:
		return 30, 30
	case statediagram.KindFork, statediagram.KindJoin:
		return 60, 8
	default:
		return layout.NodeSize(label, layout.ShapeClassDefault)
	}
}

// drawStateShape draws the fixed pseudo-state shapes: small filled
// circle, diamond, thin bar, plus the inner circle of an end state.
func drawStateShape(d *Doc, r layout.Rect, k statediagram.NodeKind) {
	cx, cy := r.CenterX(), r.CenterY()
	switch k {
	case statediagram.KindStart:
		d.Elem("circle", A("cx", ftoa(cx)), A("cy", ftoa(cy)), A("r", ftoa(r.Width/2)), A("fill", "#333"))
	case statediagram.KindEnd:
		d.Elem("circle", A("cx", ftoa(cx)), A("cy", ftoa(cy)), A("r", ftoa(r.Width/2)), A("fill", "none"), A("stroke", "#333"))
		d.Elem("circle", A("cx", ftoa(cx)), A("cy", ftoa(cy)), A("r", ftoa(r.Width/2-4)), A("fill", "#333"))
	case statediagram.KindHistory, statediagram.KindHistoryDeep:
		d.Elem("circle", A("cx", ftoa(cx)), A("cy", ftoa(cy)), A("r", ftoa(r.Width/2)), A("fill", "none"), A("stroke", "#333"))
		label := "H"
		if k == statediagram.KindHistoryDeep {
			label = "H*"
		}
		d.Text(label, A("x", ftoa(cx)), A("y", ftoa(cy+4)), A("text-anchor", "middle"), A("font-size", "11"))
	case statediagram.KindChoice:
		pts := []layout.Point{{X: cx, Y: r.Y}, {X: r.Right(), Y: cy}, {X: cx, Y: r.Bottom()}, {X: r.X, Y: cy}}
		d.Elem("path", A("d", PathPoints(pts)+" Z"), A("fill", "#eef"), A("stroke", "#333"))
	case statediagram.KindFork, statediagram.KindJoin:
		d.Elem("rect", A("x", ftoa(r.X)), A("y", ftoa(r.Y)), A("width", ftoa(r.Width)),
			A("height", ftoa(r.Height)), A("fill", "#333"))
	case statediagram.KindComposite:
		d.Elem("rect", A("x", ftoa(r.X)), A("y", ftoa(r.Y)), A("width", ftoa(r.Width)),
			A("height", ftoa(r.Height)), A("rx", "6"), A("fill", "#f5f5f5"), A("stroke", "#999"))
	default:
		d.Elem("rect", A("x", ftoa(r.X)), A("y", ftoa(r.Y)), A("width", ftoa(r.Width)),
			A("height", ftoa(r.Height)), A("rx", "6"), A("fill", "#eef"), A("stroke", "#333"))
	}
}

// laneOverlay draws dividers between a composite's lanes: horizontal for
// top/bottom directions, vertical for left/right.
func laneOverlay(d *Doc, diagram *statediagram.Diagram, res layout.Result) {
	if len(diagram.Lanes) == 0 {
		return
	}
	horizontal := diagram.Direction == "LR" || diagram.Direction == "RL"
	d.Group("lanes", func() {
		for _, c := range res.Clusters {
			count := 0
			for _, l := range diagram.Lanes {
				if l.Parent == c.ID {
					count++
				}
			}
			if count == 0 {
				continue
			}
			segments := count + 1
			for i := 1; i <= count; i++ {
				if horizontal {
					x := c.Rect.X + c.Rect.Width*float64(i)/float64(segments)
					d.Elem("line", A("x1", ftoa(x)), A("y1", ftoa(c.Rect.Y)), A("x2", ftoa(x)),
						A("y2", ftoa(c.Rect.Bottom())), A("stroke", "#999"), A("stroke-dasharray", "4 2"))
				} else {
					y := c.Rect.Y + c.Rect.Height*float64(i)/float64(segments)
					d.Elem("line", A("x1", ftoa(c.Rect.X)), A("y1", ftoa(y)), A("x2", ftoa(c.Rect.Right())),
						A("y2", ftoa(y)), A("stroke", "#999"), A("stroke-dasharray", "4 2"))
				}
			}
		}
	})
}
