package statediagram

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/probelabs/mermaid-lint/internal/blockfix"
	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

var (
	directionRe   = regexp.MustCompile(`(?i)^direction\s+(\S+)\s*$`)
	stateDeclRe   = regexp.MustCompile(`^state\s+(?:"([^"]*)"\s+as\s+(\S+)|(\S+))\s*(\{)?\s*$`)
	transitionRe  = regexp.MustCompile(`^(\S+)\s*-->\s*(\S+)\s*(?::\s*(.*))?$`)
	descriptionRe = regexp.MustCompile(`^(\S+)\s*:\s*(.+)$`)
	pseudoMarkRe  = regexp.MustCompile(`^(\S+)\s+<<(choice|fork|join|history|historyDeep)>>\s*$`)
	stateMarkRe   = regexp.MustCompile(`^state\s+(\S+)\s+<<(choice|fork|join|history|historyDeep)>>\s*$`)
	noteRe        = regexp.MustCompile(`(?i)^note\s+(left of|right of|over)\s+([^:]+?)\s*(?::\s*(.*))?$`)
	bareIDRe      = regexp.MustCompile(`^(\S+)$`)
)

type stateFrame struct {
	id        string
	startLn   int
	indent    int
	laneIdx   int
	laneID    string // "" until the first "--" lane separator appears
}

type parserState struct {
	d     *Diagram
	bag   *diag.Bag
	text  *source.Text
	stack []stateFrame
}

// Parse builds a Diagram from state diagram source text.
func Parse(text *source.Text) (*Diagram, *diag.Bag) {
	bag := diag.NewBag(0)
	d := &Diagram{}
	p := &parserState{d: d, bag: bag, text: text}

	lineCount := text.LineCount()
	line := 1
	for line <= lineCount && isBlankOrComment(text.Line(line)) {
		line++
	}
	line++ // skip the stateDiagram header line itself

	for ; line <= lineCount; line++ {
		raw := text.Line(line)
		body := strings.TrimSpace(raw)
		if body == "" || strings.HasPrefix(body, "%%") {
			continue
		}
		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
		col := indent + 1
		p.statement(line, col, indent, body)
	}

	for i := len(p.stack) - 1; i >= 0; i-- {
		f := p.stack[i]
		edit := blockfix.ClosingEdit(text, f.startLn, f.indent, "}")
		bag.Add(diag.NewError(diag.StBlockMissingRBrace, source.Pos(edit.Span.Start.Line, 1),
			"state block for '"+f.id+"' is missing its closing '}'").
			WithHint("insert '}' at the opener's indentation").
			WithFix("Insert '}'", edit))
	}
	return d, bag
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "%%")
}

func (p *parserState) scope() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1].id
}

func (p *parserState) statement(line, col, indent int, body string) {
	switch {
	case body == "}":
		if len(p.stack) > 0 {
			p.stack = p.stack[:len(p.stack)-1]
		}
	case body == "--":
		if len(p.stack) > 0 {
			f := &p.stack[len(p.stack)-1]
			f.laneIdx++
			f.laneID = f.id + "#lane" + strconv.Itoa(f.laneIdx)
			p.d.Lanes = append(p.d.Lanes, Lane{Parent: f.id, LaneID: f.laneID})
		}
	case directionRe.MatchString(body):
		m := directionRe.FindStringSubmatch(body)
		if validDir[strings.ToUpper(m[1])] {
			p.d.Direction = strings.ToUpper(m[1])
		}
	case stateMarkRe.MatchString(body):
		m := stateMarkRe.FindStringSubmatch(body)
		p.applyPseudoMark(line, col, m[1], m[2])
	case stateDeclRe.MatchString(body):
		p.stateDecl(line, col, indent, stateDeclRe.FindStringSubmatch(body))
	case pseudoMarkRe.MatchString(body):
		m := pseudoMarkRe.FindStringSubmatch(body)
		p.applyPseudoMark(line, col, m[1], m[2])
	case noteRe.MatchString(body):
		// Notes are accepted syntax with no effect on the model.
	case transitionRe.MatchString(body):
		m := transitionRe.FindStringSubmatch(body)
		p.transition(line, col, m[1], m[2], m[3])
	case descriptionRe.MatchString(body):
		m := descriptionRe.FindStringSubmatch(body)
		p.describe(line, col, m[1], m[2])
	case bareIDRe.MatchString(body):
		id := bareIDRe.FindStringSubmatch(body)[1]
		p.ensureNode(id, KindSimple, p.scope())
		p.addMembership(p.scope(), id)
	default:
		p.bag.Add(diag.NewError(diag.StUnexpectedToken, source.Pos(line, col),
			"unrecognized state diagram statement"))
	}
}

func (p *parserState) stateDecl(line, col, indent int, m []string) {
	quotedLabel, aliasID, bareID, brace := m[1], m[2], m[3], m[4]
	id := bareID
	label := ""
	if aliasID != "" {
		id = aliasID
		label = quotedLabel
	}
	n := p.ensureNode(id, KindSimple, p.scope())
	if label != "" {
		n.Label = label
	}
	if brace == "{" {
		n.Kind = KindComposite
		p.d.Composites = append(p.d.Composites, Composite{ID: id, Label: label, Parent: p.scope()})
		p.addMembership(p.scope(), id)
		p.stack = append(p.stack, stateFrame{id: id, startLn: line, indent: indent})
	} else {
		p.addMembership(p.scope(), id)
	}
}

func (p *parserState) applyPseudoMark(line, col int, id, mark string) {
	var kind NodeKind
	switch mark {
	case "choice":
		kind = KindChoice
	case "fork":
		kind = KindFork
	case "join":
		kind = KindJoin
	case "history":
		kind = KindHistory
	case "historyDeep":
		kind = KindHistoryDeep
	}
	n := p.ensureNode(id, kind, p.scope())
	n.Kind = kind
	p.addMembership(p.scope(), id)
}

func (p *parserState) describe(line, col int, id, text string) {
	n := p.ensureNode(id, KindSimple, p.scope())
	n.Label = strings.TrimSpace(text)
	p.addMembership(p.scope(), id)
}

func (p *parserState) transition(line, col int, src, tgt, label string) {
	scope := p.scope()
	sID := p.resolveEndpoint(scope, src, true)
	tID := p.resolveEndpoint(scope, tgt, false)
	p.d.Transitions = append(p.d.Transitions, Transition{Source: sID, Target: tID, Label: strings.TrimSpace(label)})
	p.addMembership(scope, sID)
	p.addMembership(scope, tID)
}

// resolveEndpoint maps a transition endpoint token to a node id, handling
// the "[*]" start/end pseudo-state and "H"/"H*" history markers;
// isSource decides whether "[*]" means the scope's start or end.
func (p *parserState) resolveEndpoint(scope, tok string, isSource bool) string {
	switch tok {
	case "[*]":
		if isSource {
			id := startID(scope)
			p.ensureNode(id, KindStart, scope)
			return id
		}
		id := endID(scope)
		p.ensureNode(id, KindEnd, scope)
		return id
	case "H":
		id := historyID(scope)
		p.ensureNode(id, KindHistory, scope)
		return id
	case "H*":
		id := historyDeepID(scope)
		p.ensureNode(id, KindHistoryDeep, scope)
		return id
	default:
		p.ensureNode(tok, KindSimple, scope)
		return tok
	}
}

func startID(scope string) string {
	if scope == "" {
		return "__start__"
	}
	return scope + "#start"
}

func endID(scope string) string {
	if scope == "" {
		return "__end__"
	}
	return scope + "#end"
}

func historyID(scope string) string {
	if scope == "" {
		return "__history__"
	}
	return scope + "#history"
}

func historyDeepID(scope string) string {
	if scope == "" {
		return "__historyDeep__"
	}
	return scope + "#historyDeep"
}

// ensureNode returns the node named id, auto-creating it with kind/parent
// since transition endpoints may reference states never declared. An
// already-declared node keeps its existing kind and parent.
func (p *parserState) ensureNode(id string, kind NodeKind, parent string) *Node {
	if i := p.d.NodeIndex(id); i >= 0 {
		return &p.d.Nodes[i]
	}
	p.d.Nodes = append(p.d.Nodes, Node{ID: id, Kind: kind, Parent: parent})
	return &p.d.Nodes[len(p.d.Nodes)-1]
}

// addMembership records id as a member of the enclosing composite/lane, if
// any is currently open.
func (p *parserState) addMembership(scope, id string) {
	if scope == "" {
		return
	}
	if ci := p.d.CompositeIndex(scope); ci >= 0 {
		if !contains(p.d.Composites[ci].Members, id) {
			p.d.Composites[ci].Members = append(p.d.Composites[ci].Members, id)
		}
	}
	f := &p.stack[len(p.stack)-1]
	if f.laneID != "" {
		for i := range p.d.Lanes {
			if p.d.Lanes[i].LaneID == f.laneID {
				if !contains(p.d.Lanes[i].Members, id) {
					p.d.Lanes[i].Members = append(p.d.Lanes[i].Members, id)
				}
				break
			}
		}
	}
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

