// Package frontmatter reads the optional YAML preamble of a diagram
// document: recognized only when the first non-BOM line is exactly "---",
// ending at the next bare "---" line. Only a narrow, closed set of keys is
// projected out of the parsed YAML (config.pie.textPosition and a handful
// of themeVariables); everything else in the block is parsed but silently
// dropped.
package frontmatter

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the parsed frontmatter block plus the body remainder.
type Config struct {
	// Present reports whether a recognized "---"-delimited block was found.
	Present bool
	// Raw is the frontmatter block's source text, fences included.
	Raw string
	// Body is everything after the closing fence.
	Body string
	// BodyStartLine is Body's first line's 1-based line number in the
	// original text (1 when no frontmatter was present).
	BodyStartLine int

	// PieTextPosition is config.pie.textPosition, the one recognized
	// config.pie.* key.
	PieTextPosition    float64
	HasPieTextPosition bool

	// ThemeVariables holds only the closed recognized key set:
	// pie1..pie24, pieStrokeColor, pieOuterStrokeWidth,
	// pieSectionTextColor/Size, pieTitleTextColor/Size. Values are kept as
	// their literal YAML text form (numbers/bools/strings all stringify).
	ThemeVariables map[string]string
}

var recognizedThemeKeys = buildRecognizedThemeKeys()

func buildRecognizedThemeKeys() map[string]bool {
	keys := map[string]bool{
		"pieStrokeColor":      true,
		"pieOuterStrokeWidth": true,
		"pieSectionTextColor": true,
		"pieSectionTextSize":  true,
		"pieTitleTextColor":   true,
		"pieTitleTextSize":    true,
	}
	for i := 1; i <= 24; i++ {
		keys["pie"+strconv.Itoa(i)] = true
	}
	return keys
}

// Parse splits text into an optional frontmatter block and its body. A
// block is recognized only when the first line (after stripping a leading
// UTF-8 BOM) is exactly "---"; absent that, the whole input is returned as
// Body with Present false.
func Parse(text string) Config {
	stripped := strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(stripped, "\n")

	if len(lines) == 0 || strings.TrimSpace(strings.TrimRight(lines[0], "\r")) != "---" {
		return Config{Body: text, BodyStartLine: 1}
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(strings.TrimRight(lines[i], "\r")) == "---" {
			closing = i
			break
		}
	}
	if closing < 0 {
		return Config{Body: text, BodyStartLine: 1}
	}

	cfg := Config{
		Present:        true,
		Raw:            strings.Join(lines[:closing+1], "\n"),
		Body:           strings.Join(lines[closing+1:], "\n"),
		BodyStartLine:  closing + 2,
		ThemeVariables: map[string]string{},
	}

	yamlBody := strings.Join(lines[1:closing], "\n")
	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(yamlBody), &parsed); err != nil || parsed == nil {
		return cfg
	}

	if cfgNode, ok := parsed["config"].(map[string]any); ok {
		if pieNode, ok := cfgNode["pie"].(map[string]any); ok {
			if v, ok := toFloat(pieNode["textPosition"]); ok {
				cfg.PieTextPosition = v
				cfg.HasPieTextPosition = true
			}
		}
		if tv, ok := cfgNode["themeVariables"].(map[string]any); ok {
			addRecognizedTheme(cfg.ThemeVariables, tv)
		}
	}
	if tv, ok := parsed["themeVariables"].(map[string]any); ok {
		addRecognizedTheme(cfg.ThemeVariables, tv)
	}

	return cfg
}

func addRecognizedTheme(dst map[string]string, src map[string]any) {
	for k, v := range src {
		if !recognizedThemeKeys[k] {
			continue
		}
		dst[k] = stringify(v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	default:
		return ""
	}
}
