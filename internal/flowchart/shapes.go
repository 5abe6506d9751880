package flowchart

import "strings"

// delim describes one shape's opening/closing delimiter pair, checked in
// the order given by openers (longest opener first, so "[[[" is tried
// before "[[" is tried before "[").
type delim struct {
	shape  Shape
	opener string
	closer string
}

var openers = []delim{
	{ShapeDouble, "[[[", "]]]"},
	{ShapeSubroutine, "[[", "]]"},
	{ShapeStadium, "([", "])"},
	{ShapeCylinder, "[(", ")]"},
	{ShapeCircle, "((", "))"},
	{ShapeHexagon, "{{", "}}"},
	{ShapeParallelogram, "[/", "/]"},
	{ShapeTrapezoid, "[\\", "/]"},
	{ShapeTrapezoidAlt, "[/", "\\]"},
	{ShapeDiamond, "{", "}"},
	{ShapeRectangle, "[", "]"},
	{ShapeRound, "(", ")"},
}

// allClosers lists every closer that can appear at the end of a node
// segment, used to recognize "opener present, wrong closer" mismatches.
var allClosers = []string{"]]]", "]]", "])", ")]", "))", "}}", "/]", "\\]", "}", "]", ")"}

// matchOpener finds the longest opener matching the start of s and reports
// whether s begins with a shape delimiter at all.
func matchOpener(s string) (delim, bool) {
	for _, d := range openers {
		if strings.HasPrefix(s, d.opener) {
			// Parallelogram and the alternate trapezoid share the "[/"
			// opener; disambiguate on the closer actually present.
			if d.shape == ShapeParallelogram || d.shape == ShapeTrapezoidAlt {
				if strings.HasSuffix(s, "\\]") {
					return openers[findShape(ShapeTrapezoidAlt)], true
				}
				return openers[findShape(ShapeParallelogram)], true
			}
			return d, true
		}
	}
	return delim{}, false
}

func findShape(sh Shape) int {
	for i, d := range openers {
		if d.shape == sh {
			return i
		}
	}
	return -1
}

// presentCloser reports the longest known closer present at the end of s,
// if any.
func presentCloser(s string) (string, bool) {
	for _, c := range allClosers {
		if strings.HasSuffix(s, c) {
			return c, true
		}
	}
	return "", false
}
