package classdiagram

import "regexp"

// As with flowchart, the only line shape regular enough for a rule table
// is the header; member declarations, relation lines, and block braces
// are free-form enough (nested braces, inline stereotypes, cardinalities)
// that the parser reads source lines directly instead of a token stream.
var (
	headerRe = regexp.MustCompile(`(?i)^classDiagram\b`)
	validDir = map[string]bool{"TB": true, "TD": true, "BT": true, "LR": true, "RL": true}
)
