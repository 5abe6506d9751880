package statediagram

import "regexp"

// Same rationale as classdiagram's lexer: the header is the only line
// regular enough for a rule table. Composite blocks, lane separators, and
// pseudo-state markers are read directly off source lines by the parser.
var (
	headerRe = regexp.MustCompile(`(?i)^stateDiagram(-v2)?\b`)
	validDir = map[string]bool{"TB": true, "TD": true, "BT": true, "LR": true, "RL": true}
)
