package render

import (
	"strconv"

	"github.com/probelabs/mermaid-lint/internal/layout"
	"github.com/probelabs/mermaid-lint/internal/piediagram"
)

// Pie renders a parsed pie diagram to an SVG document. The
// returned string still carries `{{pieN}}`-style theme tokens; pass it
// through ApplyPieTheme (with PieDefaults for an unthemed diagram) to
// resolve them.
func Pie(d *piediagram.Diagram) string {
	values := make([]float64, 0, len(d.Slices))
	labels := make([]string, 0, len(d.Slices))
	for _, s := range d.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, s.Value)
		labels = append(labels, s.Label)
	}

	const width, height, padding = 450, 450, 20
	titleBand := 0.0
	if d.HasTitle {
		titleBand = 30
	}
	legend := len(values) > 0
	legendWidth := 0.0
	if legend {
		legendWidth = legendColumnWidth(labels, values, d.ShowData)
	}
	res := layout.LayoutPie(values, labels, width, height, padding, titleBand, legend, legendWidth)

	doc := NewDoc()
	doc.Open(res.Width, res.Height)
	if d.HasTitle {
		doc.Text(d.Title, A("x", ftoa(res.Width/2)), A("y", "20"),
			A("text-anchor", "middle"), A("font-size", pieToken("pieTitleTextSize")),
			A("fill", pieToken("pieTitleTextColor")))
	}

	doc.Group("slices", func() {
		for i, s := range res.Slices {
			doc.Elem("path", A("d", s.PathData), A("fill", pieSliceToken(i)),
				A("stroke", pieToken("pieStrokeColor")), A("stroke-width", pieToken("pieOuterStrokeWidth")))
		}
	})

	doc.Group("labels", func() {
		for _, s := range res.Slices {
			if s.LeaderLine {
				doc.Elem("line", A("x1", ftoa(s.LeaderStart.X)), A("y1", ftoa(s.LeaderStart.Y)),
					A("x2", ftoa(s.LeaderEnd.X)), A("y2", ftoa(s.LeaderEnd.Y)), A("stroke", "#333"))
			}
			doc.Text(percentLabel(s.Percent), A("x", ftoa(s.LabelPoint.X)), A("y", ftoa(s.LabelPoint.Y)),
				A("text-anchor", s.LabelAnchor), A("font-size", pieToken("pieSectionTextSize")),
				A("fill", pieToken("pieSectionTextColor")))
		}
	})

	if legend {
		doc.Group("legend", func() {
			x := res.LegendX
			for i, s := range res.Slices {
				y := res.Center.Y - float64(len(res.Slices))*10 + float64(i)*20
				doc.Elem("rect", A("x", ftoa(x)), A("y", ftoa(y)), A("width", "12"), A("height", "12"),
					A("fill", pieSliceToken(i)))
				entry := s.Label
				if d.ShowData {
					entry += " (" + strconv.FormatFloat(s.Value, 'f', -1, 64) + ")"
				}
				doc.Text(entry, A("x", ftoa(x+16)), A("y", ftoa(y+10)), A("font-size", "12"))
			}
		})
	}

	doc.Close()
	return doc.String()
}

func percentLabel(p float64) string {
	return strconv.Itoa(int(p+0.5)) + "%"
}

// legendColumnWidth sizes the right-side legend column: the widest entry
// text (label, plus its appended value when showData is on) at an
// estimated per-char width, plus swatch, gap, and margin.
func legendColumnWidth(labels []string, values []float64, showData bool) float64 {
	max := 0
	for i, l := range labels {
		n := len(l)
		if showData && i < len(values) {
			n += len(" ()") + len(strconv.FormatFloat(values[i], 'f', -1, 64))
		}
		if n > max {
			max = n
		}
	}
	return float64(max)*7 + 12 + 8 + 20
}
