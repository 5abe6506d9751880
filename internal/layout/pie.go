package layout

import (
	"math"
	"strconv"
)

// PieSlice is one laid-out wedge: its arc endpoints, path data, and label
// anchor.
type PieSlice struct {
	Label       string
	Value       float64
	Percent     float64
	StartAngle  float64
	EndAngle    float64
	PathData    string
	LabelPoint  Point
	LabelAnchor string // "start", "middle", "end"
	LeaderLine  bool
	LeaderStart Point
	LeaderEnd   Point
}

// PieResult is the complete pie geometry.
type PieResult struct {
	Center      Point
	Radius      float64
	Slices      []PieSlice
	LegendX     float64
	Width, Height float64
}

// smallSliceThreshold is the sweep angle below which a slice's label moves
// outside with a leader line.
const smallSliceThreshold = 0.35

// LayoutPie computes slice geometry for width×height output with the
// given padding, optional title band, and optional legend. Non-positive
// values must already be filtered out by the caller.
func LayoutPie(values []float64, labels []string, width, height, padding, titleBand float64, legend bool, legendWidth float64) PieResult {
	total := 0.0
	for _, v := range values {
		total += v
	}

	availW, availH := width-2*padding, height-2*padding-titleBand
	if legend {
		availW -= legendWidth
		if availW < 40 {
			width += legendWidth - (availW - 40)
			availW = 40
		}
	}
	r := availW
	if availH < r {
		r = availH
	}
	r /= 2
	cx := padding + availW/2
	cy := padding + titleBand + availH/2

	angle := -math.Pi / 2 // first slice starts at twelve o'clock
	slices := make([]PieSlice, 0, len(values))
	for i, v := range values {
		if total <= 0 {
			break
		}
		sweep := 2 * math.Pi * (v / total)
		end := angle + sweep
		slice := PieSlice{
			Label:      labelAt(labels, i),
			Value:      v,
			Percent:    100 * v / total,
			StartAngle: angle,
			EndAngle:   end,
			PathData:   slicePath(cx, cy, r, angle, end),
		}
		mid := (angle + end) / 2
		if sweep < smallSliceThreshold {
			slice.LeaderLine = true
			slice.LeaderStart = Point{X: cx + r*math.Cos(mid), Y: cy + r*math.Sin(mid)}
			slice.LeaderEnd = Point{X: cx + (r+20)*math.Cos(mid), Y: cy + (r+20)*math.Sin(mid)}
			slice.LabelPoint = slice.LeaderEnd
			slice.LabelAnchor = quadrantAnchor(mid)
		} else {
			slice.LabelPoint = Point{X: cx + 0.62*r*math.Cos(mid), Y: cy + 0.62*r*math.Sin(mid)}
			slice.LabelAnchor = "middle"
		}
		slices = append(slices, slice)
		angle = end
	}

	res := PieResult{Center: Point{X: cx, Y: cy}, Radius: r, Slices: slices, Width: width, Height: height}
	if legend {
		res.LegendX = width - legendWidth
	}
	return res
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

// quadrantAnchor picks text-anchor by which side of the circle the angle
// points toward.
func quadrantAnchor(angle float64) string {
	cos := math.Cos(angle)
	switch {
	case cos > 0.3:
		return "start"
	case cos < -0.3:
		return "end"
	default:
		return "middle"
	}
}

// slicePath builds the SVG path data for one wedge: moveto center, lineto
// arc-start, arc to arc-end (large-arc flag set past a half turn), close.
func slicePath(cx, cy, r, start, end float64) string {
	x0 := cx + r*math.Cos(start)
	y0 := cy + r*math.Sin(start)
	x1 := cx + r*math.Cos(end)
	y1 := cy + r*math.Sin(end)
	largeArc := 0
	if end-start > math.Pi {
		largeArc = 1
	}
	return fmtPath(cx, cy, x0, y0, r, largeArc, x1, y1)
}

func fmtPath(cx, cy, x0, y0, r float64, largeArc int, x1, y1 float64) string {
	return "M " + ftoa(cx) + " " + ftoa(cy) +
		" L " + ftoa(x0) + " " + ftoa(y0) +
		" A " + ftoa(r) + " " + ftoa(r) + " 0 " + strconv.Itoa(largeArc) + " 1 " + ftoa(x1) + " " + ftoa(y1) +
		" Z"
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
