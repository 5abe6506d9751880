package render

import (
	"github.com/probelabs/mermaid-lint/internal/flowchart"
	"github.com/probelabs/mermaid-lint/internal/layout"
)

// shapeClassOf maps a flowchart node shape to the sizing bucket
// layout.NodeSize understands.
func shapeClassOf(s flowchart.Shape) layout.ShapeClass {
	switch s {
	case flowchart.ShapeDiamond:
		return layout.ShapeClassDiamond
	case flowchart.ShapeHexagon:
		return layout.ShapeClassHexagon
	case flowchart.ShapeStadium:
		return layout.ShapeClassStadium
	case flowchart.ShapeCylinder:
		return layout.ShapeClassCylinder
	default:
		return layout.ShapeClassDefault
	}
}

// Flowchart renders a parsed flowchart diagram to an SVG document.
func Flowchart(d *flowchart.Diagram) string {
	g := layout.Graph{Direction: directionOrDefault(d.Direction)}
	labelOf := make(map[string]string, len(d.Nodes))
	shapeOf := make(map[string]flowchart.Shape, len(d.Nodes))
	for _, n := range d.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		labelOf[n.ID] = label
		shapeOf[n.ID] = n.Shape
		w, h := layout.NodeSize(label, shapeClassOf(n.Shape))
		g.Nodes = append(g.Nodes, layout.Node{ID: n.ID, Width: w, Height: h})
	}
	for _, e := range d.Edges {
		g.Edges = append(g.Edges, layout.Edge{Source: e.Source, Target: e.Target, Label: e.Label})
	}
	for _, s := range d.Subgraphs {
		g.Subgraphs = append(g.Subgraphs, layout.Subgraph{ID: s.ID, Label: s.Label, Members: s.Members, Parent: s.Parent})
	}

	res := layout.New().Layout(g, layout.Options{})
	doc := NewDoc()
	doc.Open(res.Width+40, res.Height+40)
	WriteDefs(doc)

	doc.Group("clusters", func() {
		for _, c := range res.Clusters {
			var label string
			for _, s := range d.Subgraphs {
				if s.ID == c.ID {
					label = s.Label
				}
			}
			doc.Elem("rect",
				A("x", ftoa(c.Rect.X)), A("y", ftoa(c.Rect.Y-c.TitleBand)),
				A("width", ftoa(c.Rect.Width)), A("height", ftoa(c.Rect.Height+c.TitleBand)),
				A("fill", "#f5f5f5"), A("stroke", "#999"))
			if label != "" {
				doc.Text(label, A("x", ftoa(c.Rect.X+8)), A("y", ftoa(c.Rect.Y-c.TitleBand+14)),
					A("font-size", "12"), A("fill", "#555"))
			}
		}
	})

	doc.Group("edges", func() {
		for _, e := range res.Edges {
			doc.Elem("path", A("d", PathPoints(e.Points)), A("fill", "none"),
				A("stroke", "#333"), A("marker-end", "url(#arrow)"))
			if e.Label != "" {
				mid := e.Points[len(e.Points)/2]
				doc.Text(e.Label, A("x", ftoa(mid.X)), A("y", ftoa(mid.Y-4)),
					A("font-size", "12"), A("text-anchor", "middle"))
			}
		}
	})

	doc.Group("nodes", func() {
		for _, np := range res.Nodes {
			drawShape(doc, np.Rect, shapeOf[np.ID])
			lines := layout.WrapLabel(labelOf[np.ID], np.Rect.Width, 3)
			drawCenteredLines(doc, np.Rect, lines)
		}
	})

	doc.Close()
	return doc.String()
}

func directionOrDefault(dir string) string {
	if dir == "" {
		return "TB"
	}
	return dir
}

// drawShape draws one node's outline; most shapes are approximated with a rect or
// rounded rect since the renderer's contract is visual fidelity for the
// common cases, not pixel-exact parity with every delimiter pair.
func drawShape(d *Doc, r layout.Rect, shape flowchart.Shape) {
	switch shape {
	case flowchart.ShapeCircle:
		cx, cy := r.CenterX(), r.CenterY()
		radius := r.Width / 2
		if r.Height/2 < radius {
			radius = r.Height / 2
		}
		d.Elem("circle", A("cx", ftoa(cx)), A("cy", ftoa(cy)), A("r", ftoa(radius)),
			A("fill", "#eef"), A("stroke", "#333"))
	case flowchart.ShapeDiamond:
		cx, cy := r.CenterX(), r.CenterY()
		pts := []layout.Point{{X: cx, Y: r.Y}, {X: r.Right(), Y: cy}, {X: cx, Y: r.Bottom()}, {X: r.X, Y: cy}}
		d.Elem("path", A("d", PathPoints(pts)+" Z"), A("fill", "#eef"), A("stroke", "#333"))
	case flowchart.ShapeStadium, flowchart.ShapeRound:
		rx := r.Height / 2
		if shape == flowchart.ShapeRound {
			rx = 6
		}
		d.Elem("rect", A("x", ftoa(r.X)), A("y", ftoa(r.Y)), A("width", ftoa(r.Width)),
			A("height", ftoa(r.Height)), A("rx", ftoa(rx)), A("fill", "#eef"), A("stroke", "#333"))
	default:
		d.Elem("rect", A("x", ftoa(r.X)), A("y", ftoa(r.Y)), A("width", ftoa(r.Width)),
			A("height", ftoa(r.Height)), A("fill", "#eef"), A("stroke", "#333"))
	}
}

func drawCenteredLines(d *Doc, r layout.Rect, lines []string) {
	n := len(lines)
	lineHeight := layout.LineHeight
	startY := r.CenterY() - float64(n-1)*lineHeight/2
	for i, l := range lines {
		d.Text(l, A("x", ftoa(r.CenterX())), A("y", ftoa(startY+float64(i)*lineHeight)),
			A("text-anchor", "middle"), A("font-size", "13"))
	}
}
