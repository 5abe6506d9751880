package render

import "strings"

// PieTheme holds the frontmatter-provided theme variables (`pie1..pie24`, `pieStrokeColor`, `pieOuterStrokeWidth`,
// `pieSectionTextColor/Size`, `pieTitleTextColor/Size`). Zero-value fields
// fall back to PieDefaults.
type PieTheme struct {
	Slices           [24]string
	StrokeColor      string
	OuterStrokeWidth string
	SectionTextColor string
	SectionTextSize  string
	TitleTextColor   string
	TitleTextSize    string
}

// PieDefaults is the built-in palette and styling used when no
// themeVariables are supplied.
var PieDefaults = PieTheme{
	Slices: [24]string{
		"#4C78A8", "#F58518", "#E45756", "#72B7B2", "#54A24B", "#EECA3B",
		"#B279A2", "#FF9DA6", "#9D755D", "#BAB0AC", "#1F77B4", "#FF7F0E",
		"#2CA02C", "#D62728", "#9467BD", "#8C564B", "#E377C2", "#7F7F7F",
		"#BCBD22", "#17BECF", "#AEC7E8", "#FFBB78", "#98DF8A", "#FF9896",
	},
	StrokeColor:      "#ffffff",
	OuterStrokeWidth: "2",
	SectionTextColor: "#000000",
	SectionTextSize:  "17",
	TitleTextColor:   "#000000",
	TitleTextSize:    "25",
}

// pieToken marks a spot in the generated SVG that ApplyPieTheme rewrites.
// Theming works by targeted substitution on the generated output rather
// than a rendering-time style context, so the renderer emits these tokens
// in place of literal colors and a final pass resolves them.
func pieToken(name string) string { return "{{" + name + "}}" }

func pieSliceToken(i int) string {
	return pieToken("pie" + itoa10(i+1))
}

func itoa10(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

// ApplyPieTheme resolves every {{pieN}}/{{pieXxx}} token left in svg by a
// Pie render, falling back to PieDefaults for anything theme leaves zero.
func ApplyPieTheme(svg string, theme PieTheme) string {
	resolved := theme
	for i, v := range resolved.Slices {
		if v == "" {
			resolved.Slices[i] = PieDefaults.Slices[i]
		}
	}
	if resolved.StrokeColor == "" {
		resolved.StrokeColor = PieDefaults.StrokeColor
	}
	if resolved.OuterStrokeWidth == "" {
		resolved.OuterStrokeWidth = PieDefaults.OuterStrokeWidth
	}
	if resolved.SectionTextColor == "" {
		resolved.SectionTextColor = PieDefaults.SectionTextColor
	}
	if resolved.SectionTextSize == "" {
		resolved.SectionTextSize = PieDefaults.SectionTextSize
	}
	if resolved.TitleTextColor == "" {
		resolved.TitleTextColor = PieDefaults.TitleTextColor
	}
	if resolved.TitleTextSize == "" {
		resolved.TitleTextSize = PieDefaults.TitleTextSize
	}

	pairs := []string{
		pieToken("pieStrokeColor"), resolved.StrokeColor,
		pieToken("pieOuterStrokeWidth"), resolved.OuterStrokeWidth,
		pieToken("pieSectionTextColor"), resolved.SectionTextColor,
		pieToken("pieSectionTextSize"), resolved.SectionTextSize,
		pieToken("pieTitleTextColor"), resolved.TitleTextColor,
		pieToken("pieTitleTextSize"), resolved.TitleTextSize,
	}
	for i, v := range resolved.Slices {
		pairs = append(pairs, pieSliceToken(i), v)
	}
	return strings.NewReplacer(pairs...).Replace(svg)
}
