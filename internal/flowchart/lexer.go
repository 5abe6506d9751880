package flowchart

import "regexp"

// The only line whose shape a rule table could usefully describe is the
// header; node/link/subgraph statements are free-form
// enough (nested bracket pairs, inline labels, quoted text) that the
// parser reads them directly from source lines instead of a token stream.
var (
	headerRe = regexp.MustCompile(`(?i)^(flowchart|graph)\b[ \t]*(.*)$`)
	validDir = map[string]bool{"TB": true, "TD": true, "BT": true, "LR": true, "RL": true}
)
