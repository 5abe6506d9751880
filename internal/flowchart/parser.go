package flowchart

import (
	"regexp"
	"strings"

	"github.com/probelabs/mermaid-lint/internal/diag"
	"github.com/probelabs/mermaid-lint/internal/source"
)

var (
	idRe           = regexp.MustCompile(`^[A-Za-z0-9_]+`)
	subgraphDirRe  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)[ \t]+(TB|TD|BT|LR|RL)\b`)
	classLineRe    = regexp.MustCompile(`^class[ \t]+([A-Za-z0-9_, \t]+?)[ \t]+([A-Za-z0-9_]+)\s*$`)
	styleLineRe    = regexp.MustCompile(`^style[ \t]+([A-Za-z0-9_]+)[ \t]+(.*)$`)
	linkStyleIdxRe = regexp.MustCompile(`^linkStyle[ \t]+(\d+)[ \t]+(.*)$`)
)

type subgraphFrame struct {
	idx     int // index into Diagram.Subgraphs; a pointer would dangle across later appends
	startLn int
}

// Parse builds a Diagram from flowchart source text.
func Parse(text *source.Text) (*Diagram, *diag.Bag) {
	bag := diag.NewBag(0)
	d := &Diagram{}

	lineCount := text.LineCount()
	line := 1
	for line <= lineCount && isBlankOrComment(text.Line(line)) {
		line++
	}
	if line > lineCount {
		return d, bag
	}

	raw := text.Line(line)
	body := strings.TrimSpace(raw)
	if m := headerRe.FindStringSubmatch(body); m != nil {
		rest := strings.TrimSpace(m[2])
		parseDirection(line, len(raw)-len(strings.TrimLeft(raw, " \t"))+len(m[1])+1, rest, &d.Direction, bag, true)
	}
	line++

	var stack []subgraphFrame
	p := &parserState{d: d, bag: bag, stack: &stack}

	for line <= lineCount {
		raw = text.Line(line)
		body = strings.TrimSpace(raw)
		indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
		if body == "" || strings.HasPrefix(body, "%%") {
			line++
			continue
		}
		p.statement(line, indent, raw, body)
		line++
	}

	for _, f := range stack {
		bag.Add(diag.NewError(diag.FlSubgraphMissingEnd, source.Pos(max(f.startLn, lineCount), 1),
			"subgraph is missing its closing 'end'"))
	}
	return d, bag
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "%%")
}

type parserState struct {
	d     *Diagram
	bag   *diag.Bag
	stack *[]subgraphFrame
}

func (p *parserState) statement(line, indent int, raw, body string) {
	word, rest := firstWord(body)
	switch {
	case strings.EqualFold(word, "subgraph"):
		p.pushSubgraph(line, rest)
	case strings.EqualFold(word, "end") && len(*p.stack) > 0:
		p.popSubgraph()
	case strings.EqualFold(word, "direction"):
		target := p.currentDirTarget()
		col := indent + len("direction") + 2
		parseDirection(line, col, rest, target, p.bag, false)
	case strings.EqualFold(word, "style"):
		p.applyStyle(body)
	case strings.EqualFold(word, "classDef"):
		// Class style definitions are accepted but not modeled; nothing in
		// the flowchart model tracks named style classes beyond the literal
		// style string attached via a later "class" statement.
	case strings.EqualFold(word, "class"):
		p.applyClass(body)
	case strings.EqualFold(word, "linkStyle"):
		p.applyLinkStyle(body)
	case strings.EqualFold(word, "click"):
		// Click bindings target a host UI this module never renders to an
		// interactive surface; accepted and ignored.
	default:
		if len(*p.stack) > 0 {
			if m := subgraphDirRe.FindStringSubmatch(body); m != nil && !strings.EqualFold(m[1], "direction") {
				col := indent + 1
				p.bag.Add(diag.NewError(diag.FlDirKwInvalid, source.Pos(line, col).WithLength(len(m[1])),
					"expected 'direction' before a direction keyword").
					WithHint("use 'direction' to set a subgraph's layout direction").
					WithFix("Replace with 'direction'", diag.TextEdit{
						Span:    source.NewSpan(source.Pos(line, col), source.Pos(line, col+len(m[1]))),
						NewText: "direction",
					}))
				target := p.currentDirTarget()
				*target = m[2]
				return
			}
		}
		p.chainStatement(line, indent, raw)
	}
}

func (p *parserState) currentDirTarget() *string {
	st := *p.stack
	if len(st) == 0 {
		return &p.d.Direction
	}
	return &p.d.Subgraphs[st[len(st)-1].idx].Direction
}

func (p *parserState) pushSubgraph(line int, rest string) {
	rest = strings.TrimSpace(rest)
	sub := Subgraph{ID: rest, Label: rest}
	if len(*p.stack) > 0 {
		sub.Parent = p.d.Subgraphs[(*p.stack)[len(*p.stack)-1].idx].ID
	}
	p.d.Subgraphs = append(p.d.Subgraphs, sub)
	*p.stack = append(*p.stack, subgraphFrame{idx: len(p.d.Subgraphs) - 1, startLn: line})
}

func (p *parserState) popSubgraph() {
	st := *p.stack
	*p.stack = st[:len(st)-1]
}

func (p *parserState) applyStyle(body string) {
	m := styleLineRe.FindStringSubmatch(body)
	if m == nil {
		return
	}
	id, props := m[1], m[2]
	for i := range p.d.Nodes {
		if p.d.Nodes[i].ID == id {
			p.d.Nodes[i].Style = appendStyle(p.d.Nodes[i].Style, props)
			return
		}
	}
}

func (p *parserState) applyClass(body string) {
	m := classLineRe.FindStringSubmatch(body)
	if m == nil {
		return
	}
	className := m[2]
	for _, id := range strings.Split(m[1], ",") {
		id = strings.TrimSpace(id)
		for i := range p.d.Nodes {
			if p.d.Nodes[i].ID == id {
				p.d.Nodes[i].Style = appendStyle(p.d.Nodes[i].Style, "class:"+className)
			}
		}
	}
}

func (p *parserState) applyLinkStyle(body string) {
	m := linkStyleIdxRe.FindStringSubmatch(body)
	if m == nil {
		return
	}
	idx, props := 0, m[2]
	for _, c := range m[1] {
		idx = idx*10 + int(c-'0')
	}
	if idx >= 0 && idx < len(p.d.Edges) {
		p.d.Edges[idx].Style = appendStyle(p.d.Edges[idx].Style, props)
	}
}

func appendStyle(existing, add string) string {
	if existing == "" {
		return add
	}
	return existing + ";" + add
}

// chainStatement parses a node-declaration or node-chain-with-links line.
func (p *parserState) chainStatement(line, indent int, raw string) {
	toks := scanChain(raw)
	var lastNodeID string
	haveLast := false
	var pendingLink *chainTok

	for i := range toks {
		t := toks[i]
		if t.isLink {
			if pendingLink != nil {
				// two links with nothing between them; drop the first, keep
				// scanning from the second so recovery continues.
			}
			lk := t
			pendingLink = &lk
			continue
		}

		node, diags := parseNodeSegment(line, t.col+1, t.text)
		p.bag.AddAll(diags)
		p.registerNode(node)
		p.addMembership(node.ID)

		if haveLast {
			if pendingLink == nil {
				p.bag.Add(diag.NewError(diag.FlLinkMissing, source.Pos(line, t.col+1),
					"two node forms on one line must be joined by a link").
					WithHint("connect them with an arrow such as '-->'").
					WithHeuristicFix("Insert '-->'", diag.TextEdit{
						Span:    source.NewSpan(source.Pos(line, t.col+1), source.Pos(line, t.col+1)),
						NewText: "  --> ",
					}))
			} else {
				kind, invalid, label := parseLink(pendingLink.text)
				edge := Edge{Source: lastNodeID, Target: node.ID, Arrow: kind, EndMarker: MarkerArrow, Label: label}
				if kind == ArrowOpen || kind == ArrowInvisible {
					edge.EndMarker = MarkerNone
				}
				if invalid {
					col := pendingLink.col + 1
					p.bag.Add(diag.NewError(diag.FlArrowInvalid, source.Pos(line, col).WithLength(len(pendingLink.text)),
						"'->' is not a valid flowchart arrow").
						WithHint("use '-->' for a standard arrow link").
						WithFix("Replace with '-->'", diag.TextEdit{
							Span:    source.NewSpan(source.Pos(line, col), source.Pos(line, col+2)),
							NewText: "-->",
						}))
				}
				p.d.Edges = append(p.d.Edges, edge)
			}
		}
		lastNodeID = node.ID
		haveLast = true
		pendingLink = nil
	}
}

// addMembership records id under the innermost open subgraph, if any,
// skipping duplicates.
func (p *parserState) addMembership(id string) {
	st := *p.stack
	if len(st) == 0 {
		return
	}
	sub := &p.d.Subgraphs[st[len(st)-1].idx]
	for _, m := range sub.Members {
		if m == id {
			return
		}
	}
	sub.Members = append(sub.Members, id)
}

func (p *parserState) registerNode(n *Node) {
	for i := range p.d.Nodes {
		if p.d.Nodes[i].ID == n.ID {
			return
		}
	}
	p.d.Nodes = append(p.d.Nodes, *n)
}

// parseNodeSegment parses one node form: an identifier optionally followed
// by a shape-delimited label. col is the 1-based column seg starts at.
func parseNodeSegment(line, col int, seg string) (*Node, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	idm := idRe.FindString(seg)
	if idm == "" {
		return &Node{ID: seg, Label: seg, Shape: ShapeRectangle}, diags
	}
	rest := seg[len(idm):]
	if rest == "" {
		return &Node{ID: idm, Label: idm, Shape: ShapeRectangle}, diags
	}

	d, ok := matchOpener(rest)
	if !ok {
		return &Node{ID: idm, Label: idm, Shape: ShapeRectangle}, diags
	}
	afterOpen := rest[len(d.opener):]
	openCol := col + len(idm)

	if strings.HasSuffix(afterOpen, d.closer) {
		inner := afterOpen[:len(afterOpen)-len(d.closer)]
		label := unquote(strings.TrimSpace(inner))
		if isEmptyLabelContent(label) {
			diags = append(diags, diag.NewError(diag.FlNodeEmpty, source.Pos(line, openCol).WithLength(len(rest)),
				"node shape has no content").
				WithHint("remove the empty shape or add label text").
				WithFix("Remove the empty shape", diag.TextEdit{
					Span:    source.NewSpan(source.Pos(line, openCol), source.Pos(line, openCol+len(rest))),
					NewText: "",
				}))
			label = idm
		}
		return &Node{ID: idm, Label: label, Shape: d.shape}, diags
	}

	if closer, found := presentCloser(afterOpen); found {
		inner := afterOpen[:len(afterOpen)-len(closer)]
		mismatchCol := col + len(idm) + len(afterOpen) - len(closer)
		diags = append(diags, diag.NewError(diag.FlNodeBracketMismatch, source.Pos(line, mismatchCol).WithLength(len(closer)),
			"closing bracket does not match the opening shape delimiter").
			WithHint("use the matching closer for this shape").
			WithFix("Fix the closing bracket", diag.TextEdit{
				Span:    source.NewSpan(source.Pos(line, mismatchCol), source.Pos(line, mismatchCol+len(closer))),
				NewText: d.closer,
			}))
		return &Node{ID: idm, Label: unquote(strings.TrimSpace(inner)), Shape: d.shape}, diags
	}

	endCol := col + len(seg)
	diags = append(diags, diag.NewError(diag.FlNodeUnclosed, source.Pos(line, endCol),
		"node shape is missing its closing bracket").
		WithHint("add the matching closing bracket").
		WithHeuristicFix("Close the bracket", diag.TextEdit{
			Span:    source.NewSpan(source.Pos(line, endCol), source.Pos(line, endCol)),
			NewText: d.closer,
		}))
	return &Node{ID: idm, Label: unquote(strings.TrimSpace(afterOpen)), Shape: d.shape}, diags
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// isEmptyLabelContent reports whether an already-unquoted node label carries
// no visible content. A label that is entirely whitespace (e.g. `[" "]`) or
// that reduces to nothing once a stray quote-escape residue is stripped from
// its ends (e.g. `["\"]`, which unquotes to a lone backslash) has no
// content a reader would see, so it is FL-NODE-EMPTY the same as `[]`.
func isEmptyLabelContent(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	residue := strings.Trim(s, "\\\"")
	return strings.TrimSpace(residue) == ""
}

func firstWord(line string) (word, rest string) {
	i := 0
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	return line[:i], strings.TrimLeft(line[i:], " \t")
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' }

// parseDirection validates a direction word (the header's or a subgraph's)
// and records the missing/invalid diagnostics. header
// controls whether the missing case appends " TD" (header) versus leaving
// the target unset (subgraph "direction" with no argument is simply
// ignored, since a subgraph's direction is optional).
func parseDirection(line, col int, rest string, target *string, bag *diag.Bag, header bool) {
	word, _ := firstWord(rest)
	if word == "" {
		if header {
			bag.Add(diag.NewError(diag.FlDirMissing, source.Pos(line, col),
				"flowchart header is missing a direction").
				WithHint("add a direction such as TD, LR, or BT").
				WithFix("Append ' TD'", diag.TextEdit{
					Span:    source.NewSpan(source.Pos(line, col), source.Pos(line, col)),
					NewText: " TD",
				}))
			*target = "TD"
		}
		return
	}
	upper := strings.ToUpper(word)
	if !validDir[upper] {
		bag.Add(diag.NewError(diag.FlDirInvalid, source.Pos(line, col).WithLength(len(word)),
			"unrecognized flowchart direction '"+word+"'").
			WithHint("use one of TB, TD, BT, LR, RL"))
		return
	}
	*target = upper
}
