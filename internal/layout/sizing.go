package layout

import "strings"

// Sizing constants: width = clamp(label-length × per-char width + 2 ×
// padding, min, max); height = lines × line-height + padding;
// shape-specific multipliers adjust on top.
const (
	CharWidth  = 7.0
	Padding    = 16.0
	LineHeight = 18.0
	MinWidth   = 60.0
	MaxWidth   = 320.0
)

// ShapeClass is the sizing-relevant bucket a family's concrete shape enum
// maps onto; renderers translate their own Shape/NodeKind types into this
// before calling NodeSize.
type ShapeClass int

const (
	ShapeClassDefault ShapeClass = iota
	ShapeClassDiamond
	ShapeClassHexagon
	ShapeClassStadium
	ShapeClassCylinder
)

// NodeSize computes a node's width/height from its label text and shape
// class, applying the shape-specific multipliers.
func NodeSize(label string, class ShapeClass) (width, height float64) {
	lines := strings.Split(label, "\n")
	longest := 0
	for _, l := range lines {
		if len(l) > longest {
			longest = len(l)
		}
	}
	width = float64(longest)*CharWidth + 2*Padding
	if width < MinWidth {
		width = MinWidth
	}
	if width > MaxWidth {
		width = MaxWidth
	}
	height = float64(len(lines))*LineHeight + Padding

	switch class {
	case ShapeClassDiamond:
		side := width
		if height > side {
			side = height
		}
		side *= 1.2
		width, height = side, side
	case ShapeClassHexagon:
		width *= 1.3
		height *= 1.2
	case ShapeClassStadium:
		width *= 1.2
	case ShapeClassCylinder:
		height *= 1.5
	}
	return width, height
}

// WrapLabel splits text into at most maxLines lines that each fit within
// width given CharWidth, for the renderer's text-wrapping pass.
func WrapLabel(text string, width float64, maxLines int) []string {
	maxChars := int((width - 2*Padding) / CharWidth)
	if maxChars < 1 {
		maxChars = 1
	}
	words := strings.Fields(text)
	var lines []string
	var cur string
	for _, w := range words {
		cand := w
		if cur != "" {
			cand = cur + " " + w
		}
		if len(cand) > maxChars && cur != "" {
			lines = append(lines, cur)
			cur = w
		} else {
			cur = cand
		}
		if len(lines) == maxLines {
			break
		}
	}
	if cur != "" && len(lines) < maxLines {
		lines = append(lines, cur)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
