package sequence

import "regexp"

// Sequence diagrams nest blocks (alt/opt/loop/par/critical/break/rect/box)
// and their statements are free-form past the keyword that opens them, so
// like flowchart and class the parser reads lines directly rather than
// walking a token stream. headerRe only recognizes the one line shape a
// rule table would otherwise need to describe: the diagram header itself.
var headerRe = regexp.MustCompile(`(?i)^sequenceDiagram\b`)

var arrowRe = regexp.MustCompile(`^(<<-->>|<<->>|-->>|->>|-->|->|--x|-x|--\)|-\))`)
